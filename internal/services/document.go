package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/docrender/internal/document"
	"github.com/diewo77/docrender/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrDocumentNotFound is returned when a tenant has no document with the
// requested id.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentService loads stored documents and prepares them for rendering.
type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

// Totals are the amounts printed in the totals box.
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// LineTotal is quantity times unit price minus the line discount, rounded to
// cents and never negative.
func LineTotal(item models.DocumentItem) decimal.Decimal {
	t := decimal.NewFromFloat(item.Quantity).
		Mul(decimal.NewFromFloat(item.UnitPrice)).
		Sub(decimal.NewFromFloat(item.Discount)).
		Round(2)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}

// ComputeTotals sums the lines, applies the document discount and the tax
// rate (in percent) on the discounted base.
func ComputeTotals(doc *models.Document) Totals {
	var t Totals
	for _, item := range doc.Items {
		t.Subtotal = t.Subtotal.Add(LineTotal(item))
	}
	t.DiscountTotal = decimal.NewFromFloat(doc.DiscountTotal).Round(2)
	if t.DiscountTotal.GreaterThan(t.Subtotal) {
		t.DiscountTotal = t.Subtotal
	}
	base := t.Subtotal.Sub(t.DiscountTotal)
	t.TaxAmount = base.Mul(decimal.NewFromFloat(doc.TaxRate)).Div(hundred).Round(2)
	t.GrandTotal = base.Add(t.TaxAmount)
	return t
}

// Get returns a tenant's document with its items in display order.
func (s *DocumentService) Get(ctx context.Context, tenantID, id uint) (*models.Document, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document %d: %w", id, err)
	}
	return &doc, nil
}

// Load returns a stored document as rendering input, with the tenant's
// company as issuer.
func (s *DocumentService) Load(ctx context.Context, tenantID, id uint) (document.Data, error) {
	doc, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return document.Data{}, err
	}
	var company models.CompanySettings
	err = s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&company).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return document.Data{}, fmt.Errorf("load company: %w", err)
	}
	return ToData(doc, &company), nil
}

// ToData maps a stored document to rendering input.
func ToData(doc *models.Document, company *models.CompanySettings) document.Data {
	totals := ComputeTotals(doc)
	d := document.Data{
		Kind:       document.Kind(doc.Kind),
		Number:     doc.Number,
		IssueDate:  doc.IssueDate,
		DueDate:    doc.DueDate,
		ValidUntil: doc.ValidUntil,
		Party: document.Party{
			Name:    doc.ClientName,
			Company: doc.ClientCompany,
			Address: doc.ClientAddress,
			Phone:   doc.ClientPhone,
			Email:   doc.ClientEmail,
			TaxID:   doc.ClientTaxID,
		},
		Subtotal:                  totals.Subtotal.InexactFloat64(),
		DiscountTotal:             totals.DiscountTotal.InexactFloat64(),
		TaxRate:                   doc.TaxRate,
		TaxAmount:                 totals.TaxAmount.InexactFloat64(),
		GrandTotal:                totals.GrandTotal.InexactFloat64(),
		Notes:                     doc.Notes,
		Terms:                     doc.Terms,
		PaymentMethod:             doc.PaymentMethod,
		OriginalDocumentReference: doc.OriginalReference,
		ConvertedSaleReference:    doc.ConvertedSaleReference,
	}
	if company != nil {
		d.Issuer = company.Party()
	}
	d.Items = make([]document.LineItem, len(doc.Items))
	for i, item := range doc.Items {
		d.Items[i] = document.LineItem{
			Label:     item.Label,
			Reference: item.Reference,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Total:     LineTotal(item).InexactFloat64(),
		}
	}
	return d
}
