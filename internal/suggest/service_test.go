package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/ekovaleva/procurement-assist/internal/commodity"
	"github.com/ekovaleva/procurement-assist/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChat struct {
	response string
	err      error
	lastUser string
}

func (m *mockChat) Complete(ctx context.Context, system, user string) (string, error) {
	m.lastUser = user
	return m.response, m.err
}

func newTestService(chat Completer) *Service {
	return NewService(chat, commodity.NewCatalog(), metrics.New(prometheus.NewRegistry()))
}

func laptopInput() Input {
	return Input{
		Title:      "Office laptops",
		VendorName: "TechSupply GmbH",
		OrderLines: []InputLine{{Description: "Laptop"}, {Description: "Docking station"}},
	}
}

func TestSuggestValidID(t *testing.T) {
	chat := &mockChat{response: `{"commodity_group_id": "002", "reason": "laptops are IT hardware"}`}
	svc := newTestService(chat)

	sg, err := svc.Suggest(context.Background(), laptopInput())
	require.NoError(t, err)
	assert.Equal(t, "002", sg.CommodityGroupID)
	assert.Equal(t, "laptops are IT hardware", sg.Reason)

	assert.Contains(t, chat.lastUser, "Office laptops")
	assert.Contains(t, chat.lastUser, "Laptop; Docking station")
	assert.Contains(t, chat.lastUser, "002: IT Hardware > Notebooks & Tablets")
}

func TestSuggestFencedOutput(t *testing.T) {
	chat := &mockChat{response: "```json\n{\"commodity_group_id\": \"014\", \"reason\": \"consulting\"}\n```"}
	svc := newTestService(chat)

	sg, err := svc.Suggest(context.Background(), laptopInput())
	require.NoError(t, err)
	assert.Equal(t, "014", sg.CommodityGroupID)
}

func TestSuggestUnknownIDRejected(t *testing.T) {
	chat := &mockChat{response: `{"commodity_group_id": "999", "reason": "made up"}`}
	svc := newTestService(chat)

	sg, err := svc.Suggest(context.Background(), laptopInput())
	assert.Nil(t, sg)
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

func TestSuggestUnparsableOutput(t *testing.T) {
	chat := &mockChat{response: "I think this is IT hardware."}
	svc := newTestService(chat)

	_, err := svc.Suggest(context.Background(), laptopInput())
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

func TestSuggestUpstreamError(t *testing.T) {
	chat := &mockChat{err: errors.New("connection refused")}
	svc := newTestService(chat)

	_, err := svc.Suggest(context.Background(), laptopInput())
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

func TestSuggestSkipsEmptyLineDescriptions(t *testing.T) {
	chat := &mockChat{response: `{"commodity_group_id": "002", "reason": "ok"}`}
	svc := newTestService(chat)

	in := laptopInput()
	in.OrderLines = append(in.OrderLines, InputLine{Description: "  "})
	_, err := svc.Suggest(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, chat.lastUser, "Laptop; Docking station\n")
}
