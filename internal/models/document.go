package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is a stored sales document: invoice, credit note, quote or
// delivery note. The recipient is kept as a snapshot so that later edits of
// the customer do not change issued documents.
type Document struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	TenantID uint `gorm:"index;not null" json:"tenant_id"`

	// Document identification
	Kind   string `gorm:"size:20;not null" json:"kind"`
	Number string `gorm:"size:50;index" json:"number"`

	// Dates
	IssueDate  time.Time  `gorm:"not null" json:"issue_date"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	// Recipient snapshot
	ClientName    string `gorm:"size:255;not null" json:"client_name"`
	ClientCompany string `gorm:"size:255" json:"client_company,omitempty"`
	ClientAddress string `gorm:"size:500" json:"client_address,omitempty"`
	ClientPhone   string `gorm:"size:50" json:"client_phone,omitempty"`
	ClientEmail   string `gorm:"size:255" json:"client_email,omitempty"`
	ClientTaxID   string `gorm:"size:20" json:"client_tax_id,omitempty"`

	// TaxRate is in percent, e.g. 20.
	TaxRate float64 `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	// DiscountTotal is a document-level discount on top of line discounts.
	DiscountTotal float64 `gorm:"type:decimal(12,2);not null;default:0" json:"discount_total"`

	// Notes and terms
	Notes         string `gorm:"type:text" json:"notes,omitempty"`
	Terms         string `gorm:"type:text" json:"terms,omitempty"`
	PaymentMethod string `gorm:"size:100" json:"payment_method,omitempty"`

	// Links to related documents
	OriginalReference      string `gorm:"size:50" json:"original_reference,omitempty"`
	ConvertedSaleReference string `gorm:"size:50" json:"converted_sale_reference,omitempty"`

	Items []DocumentItem `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// DocumentItem is a line of a Document.
type DocumentItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DocumentID uint `gorm:"index;not null" json:"document_id"`

	Reference string  `gorm:"size:50" json:"reference,omitempty"`
	Label     string  `gorm:"size:500;not null" json:"label"`
	Quantity  float64 `gorm:"type:decimal(10,3);not null;default:1" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	// Discount is an amount taken off the line, not a rate.
	Discount float64 `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`

	// Position for ordering
	Position int `gorm:"default:0" json:"position"`
}
