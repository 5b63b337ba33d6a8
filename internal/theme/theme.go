// Package theme turns a tenant's design settings into fully defaulted,
// parsed drawing values.
package theme

import "strings"

// HeaderStyle selects how the header band is painted.
type HeaderStyle string

const (
	HeaderGradient HeaderStyle = "gradient"
	HeaderSolid    HeaderStyle = "solid"
	HeaderMinimal  HeaderStyle = "minimal"
)

// LogoPosition is the horizontal anchor of the logo in the header band.
type LogoPosition string

const (
	LogoLeft   LogoPosition = "left"
	LogoCenter LogoPosition = "center"
	LogoRight  LogoPosition = "right"
)

// RadiusClass is the corner style of boxes.
type RadiusClass string

const (
	RadiusNone    RadiusClass = "none"
	RadiusRounded RadiusClass = "rounded"
	RadiusFull    RadiusClass = "full"
)

// DesignSettings is the tenant-level visual configuration, as stored and as
// received from the settings screen. Every field is optional.
type DesignSettings struct {
	Name string `json:"name,omitempty"`

	Primary     string `json:"primary_color,omitempty"`
	Secondary   string `json:"secondary_color,omitempty"`
	Accent      string `json:"accent_color,omitempty"`
	Text        string `json:"text_color,omitempty"`
	HeaderText  string `json:"header_text_color,omitempty"`
	SectionText string `json:"section_text_color,omitempty"`
	Background  string `json:"background_color,omitempty"`
	TableHeader string `json:"table_header_color,omitempty"`
	Section     string `json:"section_color,omitempty"`

	HeaderStyle  string `json:"header_style,omitempty" jsonschema:"enum=gradient,enum=solid,enum=minimal"`
	LogoURL      string `json:"logo_url,omitempty"`
	LogoPosition string `json:"logo_position,omitempty" jsonschema:"enum=left,enum=center,enum=right"`
	LogoSize     string `json:"logo_size,omitempty" jsonschema:"enum=small,enum=medium,enum=large"`
	FontFamily   string `json:"font_family,omitempty"`
	FontSize     string `json:"font_size,omitempty" jsonschema:"enum=small,enum=normal,enum=medium,enum=large"`
	BorderRadius string `json:"border_radius,omitempty" jsonschema:"enum=none,enum=rounded,enum=full"`

	ShowWatermark bool   `json:"show_watermark,omitempty"`
	WatermarkText string `json:"watermark_text,omitempty"`

	ShowValidity   *bool `json:"show_validity,omitempty"`
	ShowTerms      *bool `json:"show_terms,omitempty"`
	ShowPaymentBox *bool `json:"show_payment_box,omitempty"`
	ValidityDays   int   `json:"validity_days,omitempty"`

	FooterText string `json:"footer_text,omitempty"`
}

// Default colors per role.
const (
	DefaultPrimary     = "#2563EB"
	DefaultSecondary   = "#10B981"
	DefaultAccent      = "#F59E0B"
	DefaultText        = "#1F2937"
	DefaultHeaderText  = "#FFFFFF"
	DefaultSectionText = "#FFFFFF"
	DefaultBackground  = "#FFFFFF"

	DefaultWatermark    = "CONFIDENTIEL"
	DefaultFooter       = "Merci pour votre confiance."
	DefaultValidityDays = 30
	DefaultBandCount    = 48
)

// HeaderKind tags a HeaderBackground.
type HeaderKind string

const (
	HeaderKindSolid   HeaderKind = "solid"
	HeaderKindBands   HeaderKind = "gradient-bands"
	HeaderKindMinimal HeaderKind = "minimal-rule"
)

const minimalRuleWidthMM = 1.5

// HeaderBackground describes the header band fill. Only the payload matching
// Kind is set: Color for solid, Bands for gradient-bands, RuleColor and
// RuleWidth for minimal-rule.
type HeaderBackground struct {
	Kind      HeaderKind `json:"kind"`
	Color     RGB        `json:"color,omitempty"`
	Bands     []RGB      `json:"bands,omitempty"`
	RuleColor RGB        `json:"rule_color,omitempty"`
	RuleWidth float64    `json:"rule_width,omitempty"`
}

// FontSizes are in points.
type FontSizes struct {
	Body   float64 `json:"body"`
	Title  float64 `json:"title"`
	Header float64 `json:"header"`
}

// Sections holds the design toggles of optional document sections.
type Sections struct {
	Validity   bool `json:"validity"`
	Terms      bool `json:"terms"`
	PaymentBox bool `json:"payment_box"`
}

// Watermark is the diagonal text drawn on every page when enabled.
type Watermark struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text,omitempty"`
}

// ResolvedTheme is DesignSettings with every value parsed and defaulted.
// It is derived per render and never persisted.
type ResolvedTheme struct {
	Name string `json:"name"`

	Primary     RGB `json:"primary"`
	Secondary   RGB `json:"secondary"`
	Accent      RGB `json:"accent"`
	Text        RGB `json:"text"`
	HeaderText  RGB `json:"header_text"`
	SectionText RGB `json:"section_text"`
	Background  RGB `json:"background"`
	TableHeader RGB `json:"table_header"`
	Section     RGB `json:"section"`

	Header HeaderBackground `json:"header"`
	Fonts  FontSizes        `json:"fonts"`
	Family string           `json:"family"`

	LogoURL      string       `json:"logo_url,omitempty"`
	LogoSize     float64      `json:"logo_size"`
	LogoPosition LogoPosition `json:"logo_position"`

	Radius   RadiusClass `json:"radius"`
	RadiusMM float64     `json:"radius_mm"`

	Watermark    Watermark `json:"watermark"`
	Sections     Sections  `json:"sections"`
	ValidityDays int       `json:"validity_days"`
	FooterText   string    `json:"footer_text"`
}

// Option tweaks Resolve.
type Option func(*options)

type options struct {
	bands int
}

// WithBandCount sets the number of gradient bands of a gradient header.
// Values below 2 are ignored.
func WithBandCount(n int) Option {
	return func(o *options) {
		if n >= 2 {
			o.bands = n
		}
	}
}

var fontTable = map[string]FontSizes{
	"small":  {Body: 9, Title: 15, Header: 12},
	"normal": {Body: 10.5, Title: 18, Header: 13.5},
	"large":  {Body: 12, Title: 24, Header: 15},
}

var logoTable = map[string]float64{
	"small":  18,
	"medium": 22,
	"large":  28,
}

var radiusTable = map[RadiusClass]float64{
	RadiusNone:    0,
	RadiusRounded: 2,
	RadiusFull:    4,
}

// Resolve never fails: missing or malformed values take their documented
// default.
func Resolve(s DesignSettings, opts ...Option) ResolvedTheme {
	o := options{bands: DefaultBandCount}
	for _, opt := range opts {
		opt(&o)
	}

	t := ResolvedTheme{
		Name:        strings.TrimSpace(s.Name),
		Primary:     color(s.Primary, DefaultPrimary),
		Secondary:   color(s.Secondary, DefaultSecondary),
		Accent:      color(s.Accent, DefaultAccent),
		Text:        color(s.Text, DefaultText),
		HeaderText:  color(s.HeaderText, DefaultHeaderText),
		SectionText: color(s.SectionText, DefaultSectionText),
		Background:  color(s.Background, DefaultBackground),
		LogoURL:     strings.TrimSpace(s.LogoURL),
	}
	t.TableHeader = colorOr(s.TableHeader, t.Secondary)
	t.Section = colorOr(s.Section, t.Secondary)

	t.Fonts = fontSizes(s.FontSize)
	t.Family = fontFamily(s.FontFamily)
	t.LogoSize = logoSize(s.LogoSize)
	t.LogoPosition = logoPosition(s.LogoPosition)
	t.Radius = radius(s.BorderRadius)
	t.RadiusMM = radiusTable[t.Radius]
	t.Header = headerBackground(HeaderStyle(normalize(s.HeaderStyle)), t.Primary, t.Secondary, o.bands)

	t.Watermark = Watermark{Enabled: s.ShowWatermark}
	if t.Watermark.Enabled {
		t.Watermark.Text = strings.TrimSpace(s.WatermarkText)
		if t.Watermark.Text == "" {
			t.Watermark.Text = DefaultWatermark
		}
	}
	t.Sections = Sections{
		Validity:   enabled(s.ShowValidity),
		Terms:      enabled(s.ShowTerms),
		PaymentBox: enabled(s.ShowPaymentBox),
	}
	t.ValidityDays = s.ValidityDays
	if t.ValidityDays <= 0 {
		t.ValidityDays = DefaultValidityDays
	}
	t.FooterText = strings.TrimSpace(s.FooterText)
	if t.FooterText == "" {
		t.FooterText = DefaultFooter
	}
	return t
}

func headerBackground(style HeaderStyle, primary, secondary RGB, bands int) HeaderBackground {
	switch style {
	case HeaderSolid:
		return HeaderBackground{Kind: HeaderKindSolid, Color: primary}
	case HeaderMinimal:
		return HeaderBackground{Kind: HeaderKindMinimal, RuleColor: primary, RuleWidth: minimalRuleWidthMM}
	}
	b, err := Bands(primary, secondary, bands)
	if err != nil {
		return HeaderBackground{Kind: HeaderKindSolid, Color: primary}
	}
	return HeaderBackground{Kind: HeaderKindBands, Bands: b}
}

func color(s, def string) RGB {
	if c, ok := ParseHex(s); ok {
		return c
	}
	return HexToRGB(def)
}

func colorOr(s string, def RGB) RGB {
	if c, ok := ParseHex(s); ok {
		return c
	}
	return def
}

func fontSizes(size string) FontSizes {
	switch normalize(size) {
	case "small":
		return fontTable["small"]
	case "large":
		return fontTable["large"]
	}
	return fontTable["normal"]
}

// fontFamily maps the settings font choice onto a PDF core font.
func fontFamily(f string) string {
	switch normalize(f) {
	case "times", "serif", "georgia", "garamond", "playfair":
		return "Times"
	case "courier", "mono", "monospace":
		return "Courier"
	}
	return "Helvetica"
}

func logoSize(s string) float64 {
	if v, ok := logoTable[normalize(s)]; ok {
		return v
	}
	return logoTable["medium"]
}

func logoPosition(s string) LogoPosition {
	switch p := LogoPosition(normalize(s)); p {
	case LogoCenter, LogoRight:
		return p
	}
	return LogoLeft
}

func radius(s string) RadiusClass {
	switch r := RadiusClass(normalize(s)); r {
	case RadiusNone, RadiusFull:
		return r
	}
	return RadiusRounded
}

func enabled(b *bool) bool {
	return b == nil || *b
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
