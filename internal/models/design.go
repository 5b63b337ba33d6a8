package models

import (
	"time"

	"github.com/diewo77/docrender/internal/theme"
	"gorm.io/gorm"
)

// DesignSetting is the active document design of a tenant. Colors are stored
// as entered; they are only validated when a document is rendered.
type DesignSetting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	TenantID uint   `gorm:"uniqueIndex;not null" json:"tenant_id"`
	Name     string `gorm:"size:100" json:"name"`

	PrimaryColor     string `gorm:"size:16" json:"primary_color"`
	SecondaryColor   string `gorm:"size:16" json:"secondary_color"`
	AccentColor      string `gorm:"size:16" json:"accent_color"`
	TextColor        string `gorm:"size:16" json:"text_color"`
	HeaderTextColor  string `gorm:"size:16" json:"header_text_color"`
	SectionTextColor string `gorm:"size:16" json:"section_text_color"`
	BackgroundColor  string `gorm:"size:16" json:"background_color"`
	TableHeaderColor string `gorm:"size:16" json:"table_header_color"`
	SectionColor     string `gorm:"size:16" json:"section_color"`

	HeaderStyle  string `gorm:"size:20;default:'gradient'" json:"header_style"`
	LogoURL      string `gorm:"type:text" json:"logo_url,omitempty"`
	LogoPosition string `gorm:"size:10;default:'left'" json:"logo_position"`
	LogoSize     string `gorm:"size:10;default:'medium'" json:"logo_size"`
	FontFamily   string `gorm:"size:50" json:"font_family"`
	FontSize     string `gorm:"size:10;default:'normal'" json:"font_size"`
	BorderRadius string `gorm:"size:10;default:'rounded'" json:"border_radius"`

	ShowWatermark bool   `json:"show_watermark"`
	WatermarkText string `gorm:"size:100" json:"watermark_text,omitempty"`

	// Pointers so that an explicit false survives gorm's default handling.
	ShowValidity   *bool `gorm:"default:true" json:"show_validity"`
	ShowTerms      *bool `gorm:"default:true" json:"show_terms"`
	ShowPaymentBox *bool `gorm:"default:true" json:"show_payment_box"`
	ValidityDays   int   `gorm:"default:30" json:"validity_days"`

	FooterText string `gorm:"size:500" json:"footer_text,omitempty"`
}

// ToSettings returns the stored design as rendering input.
func (d *DesignSetting) ToSettings() theme.DesignSettings {
	return theme.DesignSettings{
		Name:           d.Name,
		Primary:        d.PrimaryColor,
		Secondary:      d.SecondaryColor,
		Accent:         d.AccentColor,
		Text:           d.TextColor,
		HeaderText:     d.HeaderTextColor,
		SectionText:    d.SectionTextColor,
		Background:     d.BackgroundColor,
		TableHeader:    d.TableHeaderColor,
		Section:        d.SectionColor,
		HeaderStyle:    d.HeaderStyle,
		LogoURL:        d.LogoURL,
		LogoPosition:   d.LogoPosition,
		LogoSize:       d.LogoSize,
		FontFamily:     d.FontFamily,
		FontSize:       d.FontSize,
		BorderRadius:   d.BorderRadius,
		ShowWatermark:  d.ShowWatermark,
		WatermarkText:  d.WatermarkText,
		ShowValidity:   d.ShowValidity,
		ShowTerms:      d.ShowTerms,
		ShowPaymentBox: d.ShowPaymentBox,
		ValidityDays:   d.ValidityDays,
		FooterText:     d.FooterText,
	}
}

// Apply overwrites every design field with s. Nil toggles are stored as true.
func (d *DesignSetting) Apply(s theme.DesignSettings) {
	d.Name = s.Name
	d.PrimaryColor = s.Primary
	d.SecondaryColor = s.Secondary
	d.AccentColor = s.Accent
	d.TextColor = s.Text
	d.HeaderTextColor = s.HeaderText
	d.SectionTextColor = s.SectionText
	d.BackgroundColor = s.Background
	d.TableHeaderColor = s.TableHeader
	d.SectionColor = s.Section
	d.HeaderStyle = s.HeaderStyle
	d.LogoURL = s.LogoURL
	d.LogoPosition = s.LogoPosition
	d.LogoSize = s.LogoSize
	d.FontFamily = s.FontFamily
	d.FontSize = s.FontSize
	d.BorderRadius = s.BorderRadius
	d.ShowWatermark = s.ShowWatermark
	d.WatermarkText = s.WatermarkText
	d.ShowValidity = toggle(s.ShowValidity)
	d.ShowTerms = toggle(s.ShowTerms)
	d.ShowPaymentBox = toggle(s.ShowPaymentBox)
	d.ValidityDays = s.ValidityDays
	d.FooterText = s.FooterText
}

func toggle(b *bool) *bool {
	v := b == nil || *b
	return &v
}
