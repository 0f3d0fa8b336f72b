package request

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusClosed     Status = "Closed"
)

var ErrValidation = errors.New("validation failed")

// ParseStatus accepts exactly the three lifecycle values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusClosed:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// CanTransition is the single place the transition rule lives. Today every
// status is reachable from every other; tighten here if that ever changes.
func CanTransition(from, to Status) bool {
	return true
}

type OrderLine struct {
	Description string          `db:"description" json:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Amount      int             `db:"amount" json:"amount"`
	Unit        string          `db:"unit" json:"unit"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"total_price"`
}

type StatusChange struct {
	Status    Status    `db:"status" json:"status"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

type Data struct {
	RequestorName    string          `json:"requestor_name"`
	Title            string          `json:"title"`
	VendorName       string          `json:"vendor_name"`
	VatID            string          `json:"vat_id,omitempty"`
	CommodityGroupID string          `json:"commodity_group_id"`
	Department       string          `json:"department,omitempty"`
	OrderLines       []OrderLine     `json:"order_lines"`
	TotalCost        decimal.Decimal `json:"total_cost"`
}

type Request struct {
	ID            string         `json:"id"`
	Data          Data           `json:"data"`
	Status        Status         `json:"status"`
	StatusHistory []StatusChange `json:"status_history,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// EU VAT (DE123456789), US EIN (12-3456789) or a plain 9-12 digit number.
var vatIDPattern = regexp.MustCompile(`^([A-Z]{2}[0-9A-Z]{2,13}|[0-9]{2}-[0-9]{7}|[0-9]{9,12})$`)

// NormalizeVatID uppercases and strips whitespace so DE 123 456 789 and
// de123456789 validate and store identically.
func NormalizeVatID(v string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(v)), " ", "")
}

// Validate checks the request payload before anything is persisted.
// groupExists reports whether a commodity group id is in the reference list.
func (d *Data) Validate(groupExists func(id string) bool) error {
	if strings.TrimSpace(d.RequestorName) == "" || len(d.RequestorName) > 200 {
		return fmt.Errorf("%w: requestor_name is required (max 200 chars)", ErrValidation)
	}
	if strings.TrimSpace(d.Title) == "" || len(d.Title) > 500 {
		return fmt.Errorf("%w: title is required (max 500 chars)", ErrValidation)
	}
	if strings.TrimSpace(d.VendorName) == "" || len(d.VendorName) > 200 {
		return fmt.Errorf("%w: vendor_name is required (max 200 chars)", ErrValidation)
	}
	if d.VatID != "" {
		d.VatID = NormalizeVatID(d.VatID)
		if !vatIDPattern.MatchString(d.VatID) {
			return fmt.Errorf("%w: invalid vat_id format, expected EU VAT (DE123456789), US EIN (12-3456789) or 9-12 digits", ErrValidation)
		}
	}
	if !groupExists(d.CommodityGroupID) {
		return fmt.Errorf("%w: unknown commodity_group_id %q", ErrValidation, d.CommodityGroupID)
	}
	if len(d.Department) > 100 {
		return fmt.Errorf("%w: department too long (max 100 chars)", ErrValidation)
	}
	if len(d.OrderLines) == 0 {
		return fmt.Errorf("%w: at least one order line is required", ErrValidation)
	}
	for i, line := range d.OrderLines {
		if strings.TrimSpace(line.Description) == "" || len(line.Description) > 500 {
			return fmt.Errorf("%w: order line %d: description is required (max 500 chars)", ErrValidation, i+1)
		}
		if !line.UnitPrice.IsPositive() {
			return fmt.Errorf("%w: order line %d: unit_price must be greater than 0", ErrValidation, i+1)
		}
		if line.Amount <= 0 {
			return fmt.Errorf("%w: order line %d: amount must be greater than 0", ErrValidation, i+1)
		}
		if strings.TrimSpace(line.Unit) == "" || len(line.Unit) > 50 {
			return fmt.Errorf("%w: order line %d: unit is required (max 50 chars)", ErrValidation, i+1)
		}
		if !line.TotalPrice.IsPositive() {
			return fmt.Errorf("%w: order line %d: total_price must be greater than 0", ErrValidation, i+1)
		}
	}
	if !d.TotalCost.IsPositive() {
		return fmt.Errorf("%w: total_cost must be greater than 0", ErrValidation)
	}
	return nil
}
