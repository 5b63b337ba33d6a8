// Package document describes the records the rendering engine prints and the
// per-kind differences between them.
package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Kind is the type of a printable document.
type Kind string

const (
	KindInvoice      Kind = "invoice"
	KindCreditNote   Kind = "credit_note"
	KindQuote        Kind = "quote"
	KindDeliveryNote Kind = "delivery_note"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindInvoice, KindCreditNote, KindQuote, KindDeliveryNote}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Party is a customer, recipient or issuer.
type Party struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// Initials returns up to two upper-case initials of the company name, or of
// the person's name when no company is set.
func (p Party) Initials() string {
	name := strings.TrimSpace(p.Company)
	if name == "" {
		name = strings.TrimSpace(p.Name)
	}
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		out = append(out, r)
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

// LineItem is one table row. Total is displayed as given; it is expected to
// equal Quantity*UnitPrice - Discount.
type LineItem struct {
	Label     string  `json:"label"`
	Reference string  `json:"reference,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount,omitempty"`
	Total     float64 `json:"total"`
}

// Data is one document to render. Totals are computed by the caller and
// printed as given.
type Data struct {
	Kind       Kind       `json:"kind" jsonschema:"enum=invoice,enum=credit_note,enum=quote,enum=delivery_note"`
	Number     string     `json:"number"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	Party  Party `json:"party"`
	Issuer Party `json:"issuer,omitempty"`

	Items []LineItem `json:"items"`

	Subtotal      float64 `json:"subtotal"`
	DiscountTotal float64 `json:"discount_total"`
	TaxRate       float64 `json:"tax_rate"`
	TaxAmount     float64 `json:"tax_amount"`
	GrandTotal    float64 `json:"grand_total"`

	Notes                     string `json:"notes,omitempty"`
	Terms                     string `json:"terms,omitempty"`
	PaymentMethod             string `json:"payment_method,omitempty"`
	OriginalDocumentReference string `json:"original_document_reference,omitempty"`
	ConvertedSaleReference    string `json:"converted_sale_reference,omitempty"`
}

// HasLineDiscount reports whether any item carries a discount.
func (d Data) HasLineDiscount() bool {
	for _, it := range d.Items {
		if it.Discount != 0 {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts calendar dates ("2025-01-15") as well as RFC 3339
// timestamps in the date fields.
func (d *Data) UnmarshalJSON(b []byte) error {
	type plain Data
	aux := struct {
		*plain
		IssueDate  string `json:"issue_date"`
		DueDate    string `json:"due_date"`
		ValidUntil string `json:"valid_until"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	var err error
	if d.IssueDate, err = parseDate("issue_date", aux.IssueDate); err != nil {
		return err
	}
	if d.DueDate, err = parseOptionalDate("due_date", aux.DueDate); err != nil {
		return err
	}
	if d.ValidUntil, err = parseOptionalDate("valid_until", aux.ValidUntil); err != nil {
		return err
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %q is neither YYYY-MM-DD nor RFC 3339", field, s)
	}
	return t, nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	t, err := parseDate(field, s)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}
