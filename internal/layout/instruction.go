package layout

import (
	"encoding/json"

	"github.com/diewo77/docrender/internal/theme"
)

// Instruction is one paint operation with absolute page coordinates in
// millimetres, origin at the top-left corner. It is implemented by FilledRect,
// StrokedRect, TextRun, TableRegion and Image.
type Instruction interface {
	Op() string
}

// FilledRect is a solid rectangle. Radius > 0 rounds its corners.
type FilledRect struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	W      float64   `json:"w"`
	H      float64   `json:"h"`
	Color  theme.RGB `json:"color"`
	Radius float64   `json:"radius,omitempty"`
}

// StrokedRect is a rectangle outline.
type StrokedRect struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	W         float64   `json:"w"`
	H         float64   `json:"h"`
	Color     theme.RGB `json:"color"`
	LineWidth float64   `json:"line_width"`
	Radius    float64   `json:"radius,omitempty"`
}

// TextRun is a single line of text laid out in the box X,Y,W,H and aligned
// horizontally by Align (L, C or R). Rotation is in degrees around the box
// center; Opacity 1 is fully opaque.
type TextRun struct {
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	W        float64   `json:"w"`
	H        float64   `json:"h"`
	Text     string    `json:"text"`
	Size     float64   `json:"size"`
	Style    string    `json:"style,omitempty"`
	Align    string    `json:"align"`
	Color    theme.RGB `json:"color"`
	Rotation float64   `json:"rotation,omitempty"`
	Opacity  float64   `json:"opacity"`
}

// Cell is one column of a TableRegion row, X relative to the page.
type Cell struct {
	X     float64 `json:"x"`
	W     float64 `json:"w"`
	Text  string  `json:"text"`
	Align string  `json:"align"`
}

// TableRegion is one row of the line-item table, header or body.
type TableRegion struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	W         float64   `json:"w"`
	H         float64   `json:"h"`
	Header    bool      `json:"header"`
	Fill      theme.RGB `json:"fill"`
	TextColor theme.RGB `json:"text_color"`
	Size      float64   `json:"size"`
	Bold      bool      `json:"bold,omitempty"`
	Cells     []Cell    `json:"cells"`
}

// Image places the logo. When Name is empty the renderer draws a circular
// badge filled with BadgeColor holding Initials in InitialsColor.
type Image struct {
	X             float64   `json:"x"`
	Y             float64   `json:"y"`
	W             float64   `json:"w"`
	H             float64   `json:"h"`
	Name          string    `json:"name,omitempty"`
	Initials      string    `json:"initials,omitempty"`
	BadgeColor    theme.RGB `json:"badge_color"`
	InitialsColor theme.RGB `json:"initials_color"`
}

func (FilledRect) Op() string  { return "filled_rect" }
func (StrokedRect) Op() string { return "stroked_rect" }
func (TextRun) Op() string     { return "text" }
func (TableRegion) Op() string { return "table_region" }
func (Image) Op() string       { return "image" }

// Badge reports whether the image is the initials fallback.
func (i Image) Badge() bool { return i.Name == "" }

// Page is the ordered instruction list of one page.
type Page struct {
	Number       int           `json:"number"`
	Instructions []Instruction `json:"instructions"`
}

// MarshalJSON tags every instruction with its op.
func (p Page) MarshalJSON() ([]byte, error) {
	type tagged struct {
		Op   string      `json:"op"`
		Args Instruction `json:"args"`
	}
	out := struct {
		Number       int      `json:"number"`
		Instructions []tagged `json:"instructions"`
	}{Number: p.Number, Instructions: make([]tagged, len(p.Instructions))}
	for i, ins := range p.Instructions {
		out.Instructions[i] = tagged{Op: ins.Op(), Args: ins}
	}
	return json.Marshal(out)
}

// Result is the paginated output of Build.
type Result struct {
	Pages []Page `json:"pages"`
}

// Texts returns every TextRun of every page, in drawing order.
func (r Result) Texts() []TextRun {
	var out []TextRun
	for _, p := range r.Pages {
		for _, ins := range p.Instructions {
			if t, ok := ins.(TextRun); ok {
				out = append(out, t)
			}
		}
	}
	return out
}
