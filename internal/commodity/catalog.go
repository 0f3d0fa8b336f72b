package commodity

import (
	"fmt"
	"strings"

	"github.com/ekovaleva/procurement-assist/internal/types/commodity"
)

// Catalog is the static commodity group reference list, loaded once at startup.
type Catalog struct {
	groups []commodity.Group
	byID   map[string]commodity.Group
}

func NewCatalog() *Catalog {
	groups := commodity.Groups()
	byID := make(map[string]commodity.Group, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}
	return &Catalog{groups: groups, byID: byID}
}

func (c *Catalog) Groups() []commodity.Group {
	return c.groups
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Catalog) Get(id string) (commodity.Group, bool) {
	g, ok := c.byID[id]
	return g, ok
}

// PromptList renders the catalog in the "id: category > name" form the hosted
// models are prompted with.
func (c *Catalog) PromptList() string {
	var b strings.Builder
	for _, g := range c.groups {
		fmt.Fprintf(&b, "%s: %s > %s\n", g.ID, g.Category, g.Name)
	}
	return b.String()
}
