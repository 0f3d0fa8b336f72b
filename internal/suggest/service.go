package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ekovaleva/procurement-assist/internal/ai"
	"github.com/ekovaleva/procurement-assist/internal/commodity"
	"github.com/ekovaleva/procurement-assist/internal/logger"
	"github.com/ekovaleva/procurement-assist/internal/metrics"

	"go.uber.org/zap"
)

// ErrNoSuggestion covers every way the upstream model can fail to produce a
// usable suggestion: transport errors, unparsable output, or an id that is
// not in the reference list. Callers treat all of them as "no suggestion"
// rather than propagating a bad reference into the data model.
var ErrNoSuggestion = errors.New("no usable commodity group suggestion")

const suggestionSystemPrompt = `You are a procurement categorization assistant. Suggest the most appropriate commodity group for procurement requests.
Always return valid JSON with: commodity_group_id and reason.`

type InputLine struct {
	Description string `json:"description"`
}

type Input struct {
	Title      string      `json:"title"`
	VendorName string      `json:"vendor_name"`
	OrderLines []InputLine `json:"order_lines"`
}

type Suggestion struct {
	CommodityGroupID string `json:"commodity_group_id"`
	Reason           string `json:"reason"`
}

type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	chat    Completer
	catalog *commodity.Catalog
	metrics *metrics.Metrics
}

func NewService(chat Completer, catalog *commodity.Catalog, m *metrics.Metrics) *Service {
	return &Service{chat: chat, catalog: catalog, metrics: m}
}

// Suggest asks the hosted model for the best-fitting commodity group. The
// returned id is guaranteed to be in the reference list.
func (s *Service) Suggest(ctx context.Context, in Input) (*Suggestion, error) {
	items := make([]string, 0, len(in.OrderLines))
	for _, l := range in.OrderLines {
		if strings.TrimSpace(l.Description) != "" {
			items = append(items, l.Description)
		}
	}

	user := fmt.Sprintf(`Based on this procurement request, suggest the single most appropriate commodity group.

Request details:
- Title: %s
- Vendor: %s
- Items: %s

Available Commodity Groups:
%s

Return only JSON with: {"commodity_group_id": "XXX", "reason": "brief explanation"}`,
		in.Title, in.VendorName, strings.Join(items, "; "), s.catalog.PromptList())

	raw, err := s.chat.Complete(ctx, suggestionSystemPrompt, user)
	if err != nil {
		s.metrics.Suggestions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrNoSuggestion, err)
	}

	var sg Suggestion
	if err := json.Unmarshal([]byte(ai.StripJSON(raw)), &sg); err != nil {
		s.metrics.Suggestions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: unparsable model response: %v", ErrNoSuggestion, err)
	}

	// Validation boundary: an id the reference list does not know never
	// leaves this package.
	if !s.catalog.Has(sg.CommodityGroupID) {
		logger.Log.Warn("model suggested unknown commodity group", zap.String("id", sg.CommodityGroupID))
		s.metrics.Suggestions.WithLabelValues("invalid_id").Inc()
		return nil, fmt.Errorf("%w: model returned unknown id %q", ErrNoSuggestion, sg.CommodityGroupID)
	}

	s.metrics.Suggestions.WithLabelValues("ok").Inc()
	return &sg, nil
}
