// Package form holds the view-model behind the request entry form. The
// original UI kept this state in page-level globals; here a Controller
// instance owns all of it explicitly, so the state is serializable and the
// suggestion plumbing is testable.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ekovaleva/procurement-assist/internal/suggest"
	"github.com/ekovaleva/procurement-assist/internal/types/request"

	"github.com/shopspring/decimal"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateError      State = "error"
)

// DefaultDebounce is the quiet period after the last qualifying edit before
// a classification call is dispatched.
const DefaultDebounce = 800 * time.Millisecond

var ErrSubmitInFlight = errors.New("submission already in progress")

// Classifier is the commodity group suggestion collaborator.
type Classifier interface {
	Suggest(ctx context.Context, in suggest.Input) (*suggest.Suggestion, error)
}

// Submitter persists a finished form as a procurement request.
type Submitter interface {
	Create(ctx context.Context, data request.Data) (*request.Request, error)
}

// Snapshot is the serializable view-model the form renders from.
type Snapshot struct {
	State            State               `json:"state"`
	RequestorName    string              `json:"requestor_name"`
	Title            string              `json:"title"`
	VendorName       string              `json:"vendor_name"`
	VatID            string              `json:"vat_id"`
	Department       string              `json:"department"`
	CommodityGroupID string              `json:"commodity_group_id"`
	OrderLines       []request.OrderLine `json:"order_lines"`
	TotalCost        decimal.Decimal     `json:"total_cost"`
	TotalOverridden  bool                `json:"total_overridden"`
	Suggestion       *suggest.Suggestion `json:"suggestion,omitempty"`
}

// Controller owns the in-memory form state. All methods are safe for the
// single-UI-goroutine plus suggestion-callback access pattern.
type Controller struct {
	mu sync.Mutex

	classifier Classifier
	submitter  Submitter
	debounce   time.Duration

	state            State
	requestorName    string
	title            string
	vendorName       string
	vatID            string
	department       string
	commodityGroupID string
	lines            []request.OrderLine
	totalCost        decimal.Decimal
	totalOverridden  bool

	timer *time.Timer
	// seq is the token of the most recently dispatched suggestion call.
	// A response is applied only while its token is still the latest, so a
	// slow early call can never overwrite a fast later one.
	seq        uint64
	suggestion *suggest.Suggestion
	suggestErr error

	submitted *request.Request
	lastErr   error
}

func NewController(classifier Classifier, submitter Submitter, debounce time.Duration) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{
		classifier: classifier,
		submitter:  submitter,
		debounce:   debounce,
		state:      StateEditing,
		lines:      []request.OrderLine{{Unit: "pcs"}},
	}
}

// Close stops any pending suggestion timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) SetRequestorName(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestorName = v
}

func (c *Controller) SetTitle(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = v
	c.scheduleSuggestLocked()
}

func (c *Controller) SetVendorName(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vendorName = v
	c.scheduleSuggestLocked()
}

func (c *Controller) SetVatID(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vatID = v
}

func (c *Controller) SetDepartment(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.department = v
}

func (c *Controller) SetCommodityGroup(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commodityGroupID = id
}

// AddLine appends a blank order line.
func (c *Controller) AddLine() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, request.OrderLine{Unit: "pcs"})
}

// RemoveLine deletes the line at i, preserving order. The last remaining
// line cannot be removed; the form always has at least one.
func (c *Controller) RemoveLine(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) <= 1 || i < 0 || i >= len(c.lines) {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.totalOverridden = false
	c.recomputeTotalLocked()
	return true
}

func (c *Controller) SetLineDescription(i int, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].Description = v
	c.scheduleSuggestLocked()
}

func (c *Controller) SetLineUnit(i int, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].Unit = v
}

func (c *Controller) SetLinePrice(i int, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].UnitPrice = price
	c.recomputeLineLocked(i)
}

func (c *Controller) SetLineAmount(i int, amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].Amount = amount
	c.recomputeLineLocked(i)
}

// recomputeLineLocked handles a manual price/amount edit: the line total is
// unit_price x amount again and any extracted total override is dropped.
func (c *Controller) recomputeLineLocked(i int) {
	line := &c.lines[i]
	line.TotalPrice = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Amount)))
	c.totalOverridden = false
	c.recomputeTotalLocked()
}

func (c *Controller) recomputeTotalLocked() {
	if c.totalOverridden {
		return
	}
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.TotalPrice)
	}
	c.totalCost = total
}

// ApplyExtraction fills the form from an extraction result. Extracted line
// totals are taken verbatim, and an extracted document total is authoritative
// (it may include VAT or shipping) until the next manual price/amount edit.
func (c *Controller) ApplyExtraction(res ExtractionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.VendorName != "" {
		c.vendorName = res.VendorName
	}
	if res.VatID != "" {
		c.vatID = request.NormalizeVatID(res.VatID)
	}
	if res.Department != "" {
		c.department = res.Department
	}
	if res.Title != "" {
		c.title = res.Title
	}
	if res.SuggestedCommodityGroupID != "" {
		c.commodityGroupID = res.SuggestedCommodityGroupID
	}
	if len(res.OrderLines) > 0 {
		c.lines = make([]request.OrderLine, len(res.OrderLines))
		for i, l := range res.OrderLines {
			unit := l.Unit
			if unit == "" {
				unit = "pcs"
			}
			c.lines[i] = request.OrderLine{
				Description: l.Description,
				UnitPrice:   l.UnitPrice,
				Amount:      l.Amount,
				Unit:        unit,
				TotalPrice:  l.TotalPrice,
			}
		}
	}
	if res.TotalCost != nil {
		c.totalCost = *res.TotalCost
		c.totalOverridden = true
	} else {
		c.totalOverridden = false
		c.recomputeTotalLocked()
	}
}

// ExtractionResult mirrors the extraction gateway response; declared here so
// the form does not depend on the gateway package.
type ExtractionResult struct {
	VendorName                string
	VatID                     string
	Department                string
	Title                     string
	OrderLines                []ExtractionLine
	TotalCost                 *decimal.Decimal
	SuggestedCommodityGroupID string
}

type ExtractionLine struct {
	Description string
	UnitPrice   decimal.Decimal
	Amount      int
	Unit        string
	TotalPrice  decimal.Decimal
}

func (c *Controller) scheduleSuggestLocked() {
	if c.classifier == nil {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.dispatchSuggest)
}

// dispatchSuggest issues one classification call. The token taken at dispatch
// time guards application: if a newer call has been dispatched by the time
// this one completes, its response is dropped.
func (c *Controller) dispatchSuggest() {
	c.mu.Lock()
	c.seq++
	token := c.seq
	in := suggest.Input{
		Title:      c.title,
		VendorName: c.vendorName,
	}
	for _, l := range c.lines {
		in.OrderLines = append(in.OrderLines, suggest.InputLine{Description: l.Description})
	}
	c.mu.Unlock()

	sg, err := c.classifier.Suggest(context.Background(), in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		return
	}
	if err != nil {
		c.suggestion = nil
		c.suggestErr = err
		return
	}
	c.suggestion = sg
	c.suggestErr = nil
	c.commodityGroupID = sg.CommodityGroupID
}

// Submit builds the request payload from the current form state and hands it
// to the request store.
func (c *Controller) Submit(ctx context.Context) (*request.Request, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	c.state = StateSubmitting
	data := request.Data{
		RequestorName:    c.requestorName,
		Title:            c.title,
		VendorName:       c.vendorName,
		VatID:            c.vatID,
		CommodityGroupID: c.commodityGroupID,
		Department:       c.department,
		OrderLines:       append([]request.OrderLine(nil), c.lines...),
		TotalCost:        c.totalCost,
	}
	c.mu.Unlock()

	created, err := c.submitter.Create(ctx, data)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		c.lastErr = err
		return nil, err
	}
	c.state = StateSubmitted
	c.submitted = created
	c.lastErr = nil
	return created, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) TotalCost() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCost
}

func (c *Controller) Suggestion() (*suggest.Suggestion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggestion, c.suggestErr
}

// Snapshot returns a copy of the whole view-model.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:            c.state,
		RequestorName:    c.requestorName,
		Title:            c.title,
		VendorName:       c.vendorName,
		VatID:            c.vatID,
		Department:       c.department,
		CommodityGroupID: c.commodityGroupID,
		OrderLines:       append([]request.OrderLine(nil), c.lines...),
		TotalCost:        c.totalCost,
		TotalOverridden:  c.totalOverridden,
		Suggestion:       c.suggestion,
	}
}
