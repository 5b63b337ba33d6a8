package models

import (
	"strings"
	"time"

	"github.com/diewo77/docrender/internal/document"
	"gorm.io/gorm"
)

// CompanySettings is the issuing company of a tenant, printed in the
// document header and footer.
type CompanySettings struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	TenantID uint `gorm:"uniqueIndex;not null" json:"tenant_id"`

	// Company information
	Name        string `gorm:"size:255;not null" json:"name"`
	ContactName string `gorm:"size:255" json:"contact_name,omitempty"`
	Email       string `gorm:"size:255" json:"email,omitempty"`
	Phone       string `gorm:"size:50" json:"phone,omitempty"`

	// Address
	Address    string `gorm:"size:500" json:"address,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	PostalCode string `gorm:"size:20" json:"postal_code,omitempty"`
	Country    string `gorm:"size:100" json:"country,omitempty"`

	// Legal identifiers
	ICE           string `gorm:"size:20" json:"ice,omitempty"`
	TradeRegister string `gorm:"size:100" json:"trade_register,omitempty"`
}

// FullAddress returns the address on up to three lines.
func (c *CompanySettings) FullAddress() string {
	var lines []string
	if c.Address != "" {
		lines = append(lines, c.Address)
	}
	if city := strings.TrimSpace(c.PostalCode + " " + c.City); city != "" {
		lines = append(lines, city)
	}
	if c.Country != "" {
		lines = append(lines, c.Country)
	}
	return strings.Join(lines, "\n")
}

// Party converts the company to the issuer block of a document.
func (c *CompanySettings) Party() document.Party {
	return document.Party{
		Name:    c.ContactName,
		Company: c.Name,
		Address: c.FullAddress(),
		Phone:   c.Phone,
		Email:   c.Email,
		TaxID:   c.ICE,
	}
}
