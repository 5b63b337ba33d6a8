package validation

import (
	"fmt"
	"strings"

	"github.com/diewo77/docrender/internal/document"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// Document checks the structure of a document to render. Totals are
// printed as given and not cross-checked.
func Document(d document.Data) Violations {
	v := Violations{}
	if !d.Kind.Valid() {
		v["kind"] = "unknown_document_kind"
	}
	Required("party.name", d.Party.Name, v)
	if d.IssueDate.IsZero() {
		v["issue_date"] = "required"
	}
	RangeFloat("tax_rate", d.TaxRate, 0, 100, v)
	for i, it := range d.Items {
		p := fmt.Sprintf("items[%d].", i)
		Required(p+"label", it.Label, v)
		PositiveFloat(p+"quantity", it.Quantity, v)
		NonNegativeFloat(p+"unit_price", it.UnitPrice, v)
		NonNegativeFloat(p+"discount", it.Discount, v)
	}
	return v
}
