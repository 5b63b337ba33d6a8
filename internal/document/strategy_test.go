package document

import (
	"errors"
	"reflect"
	"testing"
)

var allOn = Toggles{Validity: true, Terms: true, PaymentBox: true}

func TestStrategyTitles(t *testing.T) {
	tests := []struct {
		kind  Kind
		title string
		label string
		sign  float64
	}{
		{KindInvoice, "FACTURE", "Total TTC", 1},
		{KindCreditNote, "FACTURE D'AVOIR", "Total à rembourser", -1},
		{KindQuote, "DEVIS", "Total TTC", 1},
		{KindDeliveryNote, "BON DE LIVRAISON", "Total TTC", 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			s, err := StrategyFor(Data{Kind: tt.kind}, allOn)
			if err != nil {
				t.Fatalf("StrategyFor: %v", err)
			}
			if s.Title != tt.title || s.TotalLabel != tt.label || s.Sign != tt.sign {
				t.Errorf("got %q %q %v", s.Title, s.TotalLabel, s.Sign)
			}
			if s.WordsLead == "" {
				t.Errorf("missing words lead")
			}
		})
	}
}

func TestStrategyUnknownKind(t *testing.T) {
	for _, k := range []Kind{"", "receipt", "INVOICE"} {
		_, err := StrategyFor(Data{Kind: k}, allOn)
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("kind %q: err = %v, want ErrUnknownKind", k, err)
		}
	}
}

func TestStrategyDisplayTotal(t *testing.T) {
	credit, _ := StrategyFor(Data{Kind: KindCreditNote}, allOn)
	if got := credit.DisplayTotal(120); got != -120 {
		t.Errorf("credit note DisplayTotal(120) = %v, want -120", got)
	}
	if got := credit.DisplayTotal(0); got != 0 {
		t.Errorf("DisplayTotal(0) = %v, want 0", got)
	}
	inv, _ := StrategyFor(Data{Kind: KindInvoice}, allOn)
	if got := inv.DisplayTotal(120); got != 120 {
		t.Errorf("invoice DisplayTotal(120) = %v", got)
	}
}

func TestStrategySections(t *testing.T) {
	full := Data{
		Terms:                     "Paiement à 30 jours",
		PaymentMethod:             "Virement",
		OriginalDocumentReference: "FAC-0001",
		ConvertedSaleReference:    "VTE-0009",
	}
	tests := []struct {
		name    string
		kind    Kind
		toggles Toggles
		data    Data
		want    []Section
	}{
		{"invoice all", KindInvoice, allOn, full, []Section{SectionTerms, SectionPaymentMethod}},
		{"invoice no payment toggle", KindInvoice, Toggles{Terms: true}, full, []Section{SectionTerms}},
		{"invoice without data", KindInvoice, allOn, Data{}, []Section{}},
		{"quote all", KindQuote, allOn, full, []Section{SectionValidity, SectionTerms, SectionConvertedSale}},
		{"quote no validity", KindQuote, Toggles{}, full, []Section{SectionConvertedSale}},
		{"credit note", KindCreditNote, allOn, full, []Section{SectionTerms, SectionOriginalDocument}},
		{"credit note no ref", KindCreditNote, allOn, Data{}, []Section{}},
		{"delivery note", KindDeliveryNote, allOn, full, []Section{SectionTerms}},
		{"blank terms ignored", KindInvoice, allOn, Data{Terms: "   "}, []Section{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.data
			d.Kind = tt.kind
			s, err := StrategyFor(d, tt.toggles)
			if err != nil {
				t.Fatalf("StrategyFor: %v", err)
			}
			if !reflect.DeepEqual(s.Sections, tt.want) {
				t.Errorf("sections = %v, want %v", s.Sections, tt.want)
			}
		})
	}
}

func TestStrategyColumns(t *testing.T) {
	keys := func(s Strategy) []ColumnKey {
		out := make([]ColumnKey, len(s.Columns))
		for i, c := range s.Columns {
			out[i] = c.Key
		}
		return out
	}
	base := []ColumnKey{ColReference, ColDesignation, ColQuantity, ColUnitPrice, ColLineTotal}
	withDiscount := []ColumnKey{ColReference, ColDesignation, ColQuantity, ColUnitPrice, ColDiscount, ColLineTotal}

	discounted := []LineItem{{Label: "a", Quantity: 1, UnitPrice: 10, Discount: 2, Total: 8}}

	q, _ := StrategyFor(Data{Kind: KindQuote, Items: discounted}, allOn)
	if got := keys(q); !reflect.DeepEqual(got, withDiscount) {
		t.Errorf("quote with discount columns = %v", got)
	}
	plain, _ := StrategyFor(Data{Kind: KindQuote, Items: []LineItem{{Label: "a", Quantity: 1}}}, allOn)
	if got := keys(plain); !reflect.DeepEqual(got, base) {
		t.Errorf("quote columns = %v", got)
	}
	inv, _ := StrategyFor(Data{Kind: KindInvoice, Items: discounted}, allOn)
	if got := keys(inv); !reflect.DeepEqual(got, base) {
		t.Errorf("invoice columns = %v", got)
	}
}

func TestPartyInitials(t *testing.T) {
	tests := []struct {
		party Party
		want  string
	}{
		{Party{Name: "Youssef", Company: "atlas bureautique sarl"}, "AB"},
		{Party{Name: "élodie martin"}, "ÉM"},
		{Party{Name: "- Solo"}, "S"},
		{Party{}, ""},
	}
	for _, tt := range tests {
		if got := tt.party.Initials(); got != tt.want {
			t.Errorf("Initials(%+v) = %q, want %q", tt.party, got, tt.want)
		}
	}
}

func TestKindValid(t *testing.T) {
	if !KindDeliveryNote.Valid() || Kind("bon").Valid() {
		t.Fatal("Kind.Valid mismatch")
	}
}
