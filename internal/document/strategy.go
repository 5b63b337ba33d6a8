package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for a Kind outside Kinds.
var ErrUnknownKind = errors.New("document: unknown kind")

// Section is an optional block printed after the totals.
type Section string

const (
	SectionValidity         Section = "validity_period"
	SectionTerms            Section = "terms_and_conditions"
	SectionPaymentMethod    Section = "payment_method"
	SectionConvertedSale    Section = "converted_sale_reference"
	SectionOriginalDocument Section = "original_document_reference"
)

// ColumnKey identifies a line-item table column.
type ColumnKey string

const (
	ColReference   ColumnKey = "reference"
	ColDesignation ColumnKey = "designation"
	ColQuantity    ColumnKey = "quantity"
	ColUnitPrice   ColumnKey = "unit_price"
	ColDiscount    ColumnKey = "discount"
	ColLineTotal   ColumnKey = "line_total"
)

// Column is a table column with its share of the content width.
type Column struct {
	Key    ColumnKey `json:"key"`
	Title  string    `json:"title"`
	Weight float64   `json:"weight"`
	Align  string    `json:"align"`
}

var (
	colReference   = Column{Key: ColReference, Title: "Réf.", Weight: 15, Align: "L"}
	colDesignation = Column{Key: ColDesignation, Title: "Désignation", Weight: 40, Align: "L"}
	colQuantity    = Column{Key: ColQuantity, Title: "Qté", Weight: 10, Align: "C"}
	colUnitPrice   = Column{Key: ColUnitPrice, Title: "P.U. HT", Weight: 15, Align: "R"}
	colDiscount    = Column{Key: ColDiscount, Title: "Remise", Weight: 12, Align: "R"}
	colLineTotal   = Column{Key: ColLineTotal, Title: "Total HT", Weight: 20, Align: "R"}
)

// Toggles are the design switches that gate optional sections.
type Toggles struct {
	Validity   bool
	Terms      bool
	PaymentBox bool
}

// Strategy is what the layout needs to know about a document kind, resolved
// once before layout starts.
type Strategy struct {
	Kind       Kind      `json:"kind"`
	Title      string    `json:"title"`
	TotalLabel string    `json:"total_label"`
	Sign       float64   `json:"sign"`
	WordsLead  string    `json:"words_lead"`
	DateLabel  string    `json:"date_label,omitempty"`
	Sections   []Section `json:"sections"`
	Columns    []Column  `json:"columns"`
}

type kindSpec struct {
	title      string
	totalLabel string
	sign       float64
	wordsLead  string
	dateLabel  string
}

var kindSpecs = map[Kind]kindSpec{
	KindInvoice: {
		title:      "FACTURE",
		totalLabel: "Total TTC",
		sign:       1,
		wordsLead:  "Arrêtée la présente facture à la somme de :",
		dateLabel:  "Échéance",
	},
	KindCreditNote: {
		title:      "FACTURE D'AVOIR",
		totalLabel: "Total à rembourser",
		sign:       -1,
		wordsLead:  "Arrêtée la présente facture d'avoir à la somme de :",
	},
	KindQuote: {
		title:      "DEVIS",
		totalLabel: "Total TTC",
		sign:       1,
		wordsLead:  "Arrêté le présent devis à la somme de :",
		dateLabel:  "Valable jusqu'au",
	},
	KindDeliveryNote: {
		title:      "BON DE LIVRAISON",
		totalLabel: "Total TTC",
		sign:       1,
		wordsLead:  "Arrêté le présent bon de livraison à la somme de :",
	},
}

// StrategyFor resolves the strategy of d.Kind. Sections appear in a fixed
// order and only when both their design toggle (if any) and their data are
// present.
func StrategyFor(d Data, t Toggles) (Strategy, error) {
	ks, ok := kindSpecs[d.Kind]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
	s := Strategy{
		Kind:       d.Kind,
		Title:      ks.title,
		TotalLabel: ks.totalLabel,
		Sign:       ks.sign,
		WordsLead:  ks.wordsLead,
		DateLabel:  ks.dateLabel,
		Sections:   []Section{},
		Columns:    []Column{colReference, colDesignation, colQuantity, colUnitPrice},
	}
	if d.Kind == KindQuote && d.HasLineDiscount() {
		s.Columns = append(s.Columns, colDiscount)
	}
	s.Columns = append(s.Columns, colLineTotal)

	if d.Kind == KindQuote && t.Validity {
		s.Sections = append(s.Sections, SectionValidity)
	}
	if t.Terms && present(d.Terms) {
		s.Sections = append(s.Sections, SectionTerms)
	}
	if d.Kind == KindInvoice && t.PaymentBox && present(d.PaymentMethod) {
		s.Sections = append(s.Sections, SectionPaymentMethod)
	}
	if d.Kind == KindQuote && present(d.ConvertedSaleReference) {
		s.Sections = append(s.Sections, SectionConvertedSale)
	}
	if d.Kind == KindCreditNote && present(d.OriginalDocumentReference) {
		s.Sections = append(s.Sections, SectionOriginalDocument)
	}
	return s, nil
}

// Has reports whether sec is part of the strategy.
func (s Strategy) Has(sec Section) bool {
	for _, x := range s.Sections {
		if x == sec {
			return true
		}
	}
	return false
}

// DisplayTotal applies the sign convention to the grand total.
func (s Strategy) DisplayTotal(grandTotal float64) float64 {
	if grandTotal == 0 {
		return 0
	}
	return s.Sign * grandTotal
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
