// Package pdf paints laid-out documents with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/diewo77/docrender/internal/layout"
	"github.com/diewo77/docrender/internal/theme"
	"github.com/go-pdf/fpdf"
)

// Painter turns a layout result into a PDF document.
type Painter interface {
	Paint(res layout.Result, th theme.ResolvedTheme, logo *Logo) (*Document, error)
}

// Document is a finished PDF.
type Document struct {
	data  []byte
	pages int
}

// Bytes returns the encoded PDF.
func (d *Document) Bytes() []byte { return d.data }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.pages }

// WriteTo implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)
	return int64(n), err
}

// WriteFile writes the PDF to path, creating parent directories as needed.
func (d *Document) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("pdf: create dir: %w", err)
		}
	}
	if err := os.WriteFile(path, d.data, 0o644); err != nil {
		return fmt.Errorf("pdf: write file: %w", err)
	}
	return nil
}

// FPDF is the go-pdf/fpdf Painter. It only uses the core fonts, so text is
// translated to cp1252 before drawing.
type FPDF struct {
	PageSize string
	Creator  string
	// Created pins the PDF creation date; zero means now.
	Created time.Time
}

// NewFPDF returns a Painter for A4 pages.
func NewFPDF() *FPDF {
	return &FPDF{PageSize: "A4", Creator: "docrender"}
}

const (
	logoImageName = "logo"
	tableCellPad  = 1.5
)

// Paint draws every instruction of res in order, one fpdf page per layout page.
func (p *FPDF) Paint(res layout.Result, th theme.ResolvedTheme, logo *Logo) (*Document, error) {
	size := p.PageSize
	if size == "" {
		size = "A4"
	}
	f := fpdf.New("P", "mm", size, "")
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetCellMargin(0)
	f.SetCatalogSort(true)
	if !p.Created.IsZero() {
		f.SetCreationDate(p.Created)
	}
	if p.Creator != "" {
		f.SetCreator(p.Creator, false)
	}

	c := &canvas{f: f, tr: f.UnicodeTranslatorFromDescriptor(""), family: th.Family}
	if c.family == "" {
		c.family = "Helvetica"
	}
	if logo != nil && len(logo.Data) > 0 {
		f.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: logo.Type}, bytes.NewReader(logo.Data))
		if f.Ok() {
			c.logo = logo
		} else {
			// A logo fpdf cannot parse falls back to the badge.
			f.ClearError()
		}
	}

	for _, page := range res.Pages {
		f.AddPage()
		for _, ins := range page.Instructions {
			c.paint(ins)
		}
		if err := f.Error(); err != nil {
			return nil, fmt.Errorf("pdf: page %d: %w", page.Number, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	return &Document{data: buf.Bytes(), pages: f.PageCount()}, nil
}

type canvas struct {
	f      *fpdf.Fpdf
	tr     func(string) string
	family string
	logo   *Logo
}

func (c *canvas) paint(ins layout.Instruction) {
	switch v := ins.(type) {
	case layout.FilledRect:
		c.fill(v.Color)
		c.rect(v.X, v.Y, v.W, v.H, v.Radius, "F")
	case layout.StrokedRect:
		c.stroke(v.Color, v.LineWidth)
		c.rect(v.X, v.Y, v.W, v.H, v.Radius, "D")
	case layout.TextRun:
		c.text(v)
	case layout.TableRegion:
		c.row(v)
	case layout.Image:
		c.image(v)
	}
}

func (c *canvas) fill(rgb theme.RGB) {
	r, g, b := rgb.Ints()
	c.f.SetFillColor(r, g, b)
}

func (c *canvas) stroke(rgb theme.RGB, width float64) {
	r, g, b := rgb.Ints()
	c.f.SetDrawColor(r, g, b)
	c.f.SetLineWidth(width)
}

func (c *canvas) ink(rgb theme.RGB) {
	r, g, b := rgb.Ints()
	c.f.SetTextColor(r, g, b)
}

func (c *canvas) rect(x, y, w, h, radius float64, style string) {
	if radius > 0 {
		c.f.RoundedRect(x, y, w, h, radius, "1234", style)
		return
	}
	c.f.Rect(x, y, w, h, style)
}

func (c *canvas) text(t layout.TextRun) {
	c.f.SetFont(c.family, t.Style, t.Size)
	c.ink(t.Color)
	if t.Opacity > 0 && t.Opacity < 1 {
		c.f.SetAlpha(t.Opacity, "Normal")
		defer c.f.SetAlpha(1, "Normal")
	}
	if t.Rotation != 0 {
		c.f.TransformBegin()
		c.f.TransformRotate(t.Rotation, t.X+t.W/2, t.Y+t.H/2)
		defer c.f.TransformEnd()
	}
	c.f.SetXY(t.X, t.Y)
	c.f.CellFormat(t.W, t.H, c.tr(t.Text), "", 0, t.Align+"M", false, 0, "")
}

func (c *canvas) row(t layout.TableRegion) {
	c.fill(t.Fill)
	c.f.Rect(t.X, t.Y, t.W, t.H, "F")
	style := ""
	if t.Bold {
		style = "B"
	}
	c.f.SetFont(c.family, style, t.Size)
	c.ink(t.TextColor)
	c.f.SetCellMargin(tableCellPad)
	for _, cell := range t.Cells {
		c.f.SetXY(cell.X, t.Y)
		c.f.CellFormat(cell.W, t.H, c.tr(cell.Text), "", 0, cell.Align+"M", false, 0, "")
	}
	c.f.SetCellMargin(0)
}

// image draws the registered logo, or the initials badge when the layout
// asked for one or the logo could not be registered.
func (c *canvas) image(img layout.Image) {
	if !img.Badge() && c.logo != nil {
		c.f.ImageOptions(logoImageName, img.X, img.Y, img.W, img.H, false, fpdf.ImageOptions{ImageType: c.logo.Type}, 0, "")
		return
	}
	d := img.W
	if img.H < d {
		d = img.H
	}
	c.fill(img.BadgeColor)
	c.f.Circle(img.X+img.W/2, img.Y+img.H/2, d/2, "F")
	if img.Initials == "" {
		return
	}
	// Initials take about 40% of the badge diameter.
	size := d * 0.4 / 0.3528
	c.f.SetFont(c.family, "B", size)
	c.ink(img.InitialsColor)
	c.f.SetXY(img.X, img.Y)
	c.f.CellFormat(img.W, img.H, c.tr(img.Initials), "", 0, "CM", false, 0, "")
}
