package extraction

import (
	"github.com/shopspring/decimal"
)

// Line is one order line as guessed by the hosted model. All values are
// best-effort: an extracted line total is taken verbatim and never recomputed
// from unit price and amount, because vendor documents apply discounts at the
// line level.
type Line struct {
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      int             `json:"amount"`
	Unit        string          `json:"unit"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Result is the structured guess returned by the extraction gateway. Every
// field may be absent; TotalCost is a pointer so "not found" and zero are
// distinguishable.
type Result struct {
	VendorName                string           `json:"vendor_name,omitempty"`
	VatID                     string           `json:"vat_id,omitempty"`
	Department                string           `json:"department,omitempty"`
	Title                     string           `json:"title,omitempty"`
	OrderLines                []Line           `json:"order_lines,omitempty"`
	TotalCost                 *decimal.Decimal `json:"total_cost,omitempty"`
	SuggestedCommodityGroupID string           `json:"suggested_commodity_group_id,omitempty"`
}

// missingCritical reports whether the result lacks a field the OCR fallback
// is expected to recover.
func missingCritical(r *Result) bool {
	if r == nil {
		return true
	}
	return r.VatID == "" || r.VendorName == "" || r.Department == "" || r.Title == "" || len(r.OrderLines) == 0
}
