// Package layout computes where every block of a document goes and emits the
// ordered, paginated draw instructions. It has no rendering backend and no
// side effects: the same input always yields the same result.
package layout

import (
	"math"
	"strings"
	"time"

	"github.com/diewo77/docrender/internal/amountwords"
	"github.com/diewo77/docrender/internal/document"
	"github.com/diewo77/docrender/internal/textclean"
	"github.com/diewo77/docrender/internal/theme"
)

// A4 portrait, millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	Margin       = 15.0
	ContentWidth = PageWidth - 2*Margin

	HeaderHeight = 42.0
	RowHeight    = 7.0
	FooterHeight = 14.0

	partyBarHeight = 8.0
	partyBoxHeight = 32.0
	partyLines     = 6
	lineHeight     = 4.6
	blockGap       = 6.0
	totalsWidth    = 85.0
	accentBarWidth = 1.5
	watermarkSize  = 60.0
	watermarkAlpha = 0.08
	borderWidth    = 0.2
)

var white = theme.RGB{R: 255, G: 255, B: 255}

// Logo describes a logo image the renderer has already registered under
// Name, with its pixel dimensions for the aspect ratio.
type Logo struct {
	Name   string
	Width  int
	Height int
}

// Input is everything one render depends on.
type Input struct {
	Data     document.Data
	Theme    theme.ResolvedTheme
	Strategy document.Strategy
	// Logo is nil when no logo could be loaded; an initials badge is drawn instead.
	Logo *Logo
}

// Build lays out the document.
func Build(in Input) Result {
	b := &builder{in: in, th: in.Theme, s: in.Strategy}
	b.newPage()
	b.header()
	b.parties()
	b.table()
	b.totals()
	b.notes()
	for _, sec := range b.s.Sections {
		b.section(sec)
	}
	b.footer()
	b.watermark()
	return Result{Pages: b.pages}
}

type builder struct {
	in    Input
	th    theme.ResolvedTheme
	s     document.Strategy
	pages []Page
	y     float64
}

func (b *builder) add(ins ...Instruction) {
	p := &b.pages[len(b.pages)-1]
	p.Instructions = append(p.Instructions, ins...)
}

func (b *builder) newPage() {
	b.pages = append(b.pages, Page{Number: len(b.pages) + 1, Instructions: []Instruction{}})
	b.y = Margin
}

// contentBottom is the lowest y content may reach; the footer area stays free.
const contentBottom = PageHeight - Margin - FooterHeight

// reserve starts a new page when h does not fit above the footer area. A page
// with nothing on it yet is never skipped.
func (b *builder) reserve(h float64) {
	if b.y > Margin && b.y+h > contentBottom {
		b.newPage()
	}
}

func (b *builder) text(x, y, w, h float64, s string, size float64, style, align string, c theme.RGB) TextRun {
	return TextRun{X: x, Y: y, W: w, H: h, Text: fit(textclean.Sanitize(s), w, size), Size: size, Style: style, Align: align, Color: c, Opacity: 1}
}

func (b *builder) header() {
	th := b.th
	switch th.Header.Kind {
	case theme.HeaderKindBands:
		n := len(th.Header.Bands)
		w := PageWidth / float64(n)
		for i, c := range th.Header.Bands {
			b.add(FilledRect{X: float64(i) * w, Y: 0, W: w, H: HeaderHeight, Color: c})
		}
	case theme.HeaderKindMinimal:
		b.add(
			FilledRect{X: 0, Y: 0, W: PageWidth, H: th.Header.RuleWidth, Color: th.Header.RuleColor},
			FilledRect{X: Margin, Y: HeaderHeight - borderWidth, W: ContentWidth, H: borderWidth, Color: th.Header.RuleColor},
		)
	default:
		b.add(FilledRect{X: 0, Y: 0, W: PageWidth, H: HeaderHeight, Color: th.Header.Color})
	}

	titleInk, ink := th.HeaderText, th.HeaderText
	if th.Header.Kind == theme.HeaderKindMinimal {
		titleInk, ink = th.Primary, th.Text
	}

	size := th.LogoSize
	logoX := logoOffset(th.LogoPosition, size)
	logoY := (HeaderHeight - size) / 2
	b.add(b.logo(logoX, logoY, size))

	// The title block takes the side opposite to the logo, the issuer block
	// the logo's side.
	var titleX, titleW, issuerX, issuerW float64
	titleAlign, issuerAlign := "R", "L"
	switch th.LogoPosition {
	case theme.LogoRight:
		titleX, titleW, titleAlign = Margin, PageWidth/2-Margin, "L"
		issuerX, issuerW, issuerAlign = PageWidth/2, logoX-4-PageWidth/2, "R"
	case theme.LogoCenter:
		titleX = logoX + size + 4
		titleW = PageWidth - Margin - titleX
		issuerX, issuerW = Margin, logoX-4-Margin
	default:
		titleX = PageWidth / 2
		titleW = PageWidth - Margin - titleX
		issuerX, issuerW = logoX+size+4, PageWidth/2-4-(logoX+size+4)
	}

	d := b.in.Data
	f := th.Fonts
	y := 8.0
	b.add(b.text(titleX, y, titleW, 10, b.s.Title, f.Title, "B", titleAlign, titleInk))
	y += 11
	b.add(b.text(titleX, y, titleW, 6, "N° "+d.Number, f.Header, "B", titleAlign, ink))
	y += 7
	b.add(b.text(titleX, y, titleW, 5, "Date : "+FormatDate(d.IssueDate), f.Body, "", titleAlign, ink))

	iss := d.Issuer
	name := iss.Company
	if strings.TrimSpace(name) == "" {
		name = iss.Name
	}
	lines := textclean.Lines(iss.Address, iss.Phone, iss.Email)
	if textclean.Sanitize(name) == "" || issuerW < 20 {
		return
	}
	y = 9.0
	b.add(b.text(issuerX, y, issuerW, 5, name, f.Header, "B", issuerAlign, ink))
	y += 6
	for i, l := range lines {
		if i == 3 {
			break
		}
		b.add(b.text(issuerX, y, issuerW, 4, l, f.Body-1, "", issuerAlign, ink))
		y += lineHeight
	}
}

func (b *builder) logo(x, y, size float64) Image {
	img := Image{X: x, Y: y, W: size, H: size, BadgeColor: b.th.HeaderText, InitialsColor: b.th.Primary}
	if b.th.Header.Kind == theme.HeaderKindMinimal {
		img.BadgeColor, img.InitialsColor = b.th.Primary, b.th.HeaderText
	}
	l := b.in.Logo
	if l == nil || l.Name == "" || l.Width <= 0 || l.Height <= 0 {
		img.Initials = b.in.Data.Issuer.Initials()
		return img
	}
	img.Name = l.Name
	ratio := float64(l.Width) / float64(l.Height)
	if ratio >= 1 {
		img.H = size / ratio
		img.Y = y + (size-img.H)/2
	} else {
		img.W = size * ratio
		img.X = x + (size-img.W)/2
	}
	return img
}

func logoOffset(pos theme.LogoPosition, size float64) float64 {
	switch pos {
	case theme.LogoCenter:
		return (PageWidth - size) / 2
	case theme.LogoRight:
		return PageWidth - Margin - size
	}
	return Margin
}

func (b *builder) parties() {
	d := b.in.Data
	b.y = HeaderHeight + 8
	w := (ContentWidth - blockGap) / 2

	info := []string{"N° : " + d.Number, "Date : " + FormatDate(d.IssueDate)}
	if second := b.secondaryDate(); second != nil && b.s.DateLabel != "" {
		info = append(info, b.s.DateLabel+" : "+FormatDate(*second))
	}
	if d.Kind == document.KindCreditNote && strings.TrimSpace(d.OriginalDocumentReference) != "" {
		info = append(info, "Facture d'origine : "+d.OriginalDocumentReference)
	}
	b.infoBox(Margin, "Informations", info, false)

	p := d.Party
	client := []string{p.Name, p.Company, oneLine(p.Address)}
	if p.Phone != "" {
		client = append(client, "Tél : "+p.Phone)
	}
	if p.Email != "" {
		client = append(client, p.Email)
	}
	if p.TaxID != "" {
		client = append(client, "ICE : "+p.TaxID)
	}
	b.infoBox(Margin+w+blockGap, "Client", client, true)

	b.y += partyBarHeight + partyBoxHeight + 8
}

// infoBox draws a section-colored title bar followed by a fixed-height box.
// Absent lines are skipped; the box keeps its height.
func (b *builder) infoBox(x float64, title string, lines []string, boldFirst bool) {
	th := b.th
	w := (ContentWidth - blockGap) / 2
	y := b.y
	b.add(
		FilledRect{X: x, Y: y, W: w, H: partyBarHeight, Color: th.Section, Radius: th.RadiusMM},
		b.text(x+3, y+1, w-6, partyBarHeight-2, title, th.Fonts.Header-2, "B", "L", th.SectionText),
	)
	y += partyBarHeight
	b.add(
		FilledRect{X: x, Y: y, W: w, H: partyBoxHeight, Color: th.Background, Radius: th.RadiusMM},
		StrokedRect{X: x, Y: y, W: w, H: partyBoxHeight, Color: th.Section, LineWidth: borderWidth, Radius: th.RadiusMM},
	)
	y += 2
	n := 0
	for i, l := range lines {
		l = textclean.Sanitize(l)
		if l == "" {
			continue
		}
		if n == partyLines {
			break
		}
		style := ""
		if boldFirst && i == 0 {
			style = "B"
		}
		b.add(b.text(x+3, y, w-6, lineHeight, l, th.Fonts.Body, style, "L", th.Text))
		y += lineHeight
		n++
	}
}

func (b *builder) secondaryDate() *time.Time {
	d := b.in.Data
	switch d.Kind {
	case document.KindQuote:
		if d.ValidUntil != nil {
			return d.ValidUntil
		}
		t := d.IssueDate.AddDate(0, 0, b.th.ValidityDays)
		return &t
	case document.KindInvoice:
		return d.DueDate
	}
	return nil
}

type column struct {
	document.Column
	x, w float64
}

func (b *builder) columns() []column {
	var total float64
	for _, c := range b.s.Columns {
		total += c.Weight
	}
	out := make([]column, len(b.s.Columns))
	x := Margin
	for i, c := range b.s.Columns {
		w := ContentWidth * c.Weight / total
		out[i] = column{Column: c, x: x, w: w}
		x += w
	}
	return out
}

func (b *builder) tableHeader(cols []column) {
	th := b.th
	cells := make([]Cell, len(cols))
	for i, c := range cols {
		cells[i] = Cell{X: c.x, W: c.w, Text: c.Title, Align: c.Align}
	}
	b.add(TableRegion{
		X: Margin, Y: b.y, W: ContentWidth, H: RowHeight,
		Header: true, Fill: th.TableHeader, TextColor: th.SectionText,
		Size: th.Fonts.Body, Bold: true, Cells: cells,
	})
	b.y += RowHeight
}

// table emits the line items. When a row does not fit, a new page starts
// with the header row repeated.
func (b *builder) table() {
	th := b.th
	cols := b.columns()
	b.tableHeader(cols)
	stripe := th.TableHeader.Mix(white, 0.9)
	for i, it := range b.in.Data.Items {
		if b.y+RowHeight > PageHeight-Margin {
			b.newPage()
			b.tableHeader(cols)
		}
		fill := th.Background
		if i%2 == 1 {
			fill = stripe
		}
		cells := make([]Cell, len(cols))
		for j, c := range cols {
			cells[j] = Cell{X: c.x, W: c.w, Text: fit(cellText(c.Key, it), c.w, th.Fonts.Body), Align: c.Align}
		}
		b.add(TableRegion{
			X: Margin, Y: b.y, W: ContentWidth, H: RowHeight,
			Fill: fill, TextColor: th.Text, Size: th.Fonts.Body, Cells: cells,
		})
		b.y += RowHeight
	}
	b.y += blockGap
}

func cellText(k document.ColumnKey, it document.LineItem) string {
	switch k {
	case document.ColReference:
		return textclean.Sanitize(it.Reference)
	case document.ColDesignation:
		return textclean.Sanitize(it.Label)
	case document.ColQuantity:
		return FormatQuantity(it.Quantity)
	case document.ColUnitPrice:
		return FormatMoney(it.UnitPrice)
	case document.ColDiscount:
		if it.Discount == 0 {
			return "-"
		}
		return FormatMoney(it.Discount)
	case document.ColLineTotal:
		return FormatMoney(it.Total)
	}
	return ""
}

type totalRow struct {
	label, value string
}

// totals draws the totals box and, right under it, the amount in words.
// Both move to a new page together when they do not fit.
func (b *builder) totals() {
	th := b.th
	d := b.in.Data

	rows := []totalRow{{"Sous-total HT", FormatMoney(d.Subtotal)}}
	if d.DiscountTotal > 0 {
		rows = append(rows, totalRow{"Remise", FormatMoney(-d.DiscountTotal)})
	}
	if d.TaxAmount > 0 {
		rows = append(rows, totalRow{"TVA (" + FormatPercent(d.TaxRate) + ")", FormatMoney(d.TaxAmount)})
	}
	grand := totalRow{b.s.TotalLabel, FormatMoney(b.s.DisplayTotal(d.GrandTotal))}

	words := amountwords.AmountInWords(math.Abs(d.GrandTotal))
	wordsLines := wrap(words, ContentWidth-8, th.Fonts.Body)
	wordsH := 4 + 5 + float64(len(wordsLines))*5 + 2
	totalsH := float64(len(rows)+1) * RowHeight

	b.reserve(totalsH + 4 + wordsH)

	x := PageWidth - Margin - totalsWidth
	y := b.y
	b.add(StrokedRect{X: x, Y: y, W: totalsWidth, H: totalsH, Color: th.Section, LineWidth: borderWidth, Radius: th.RadiusMM})
	for _, r := range rows {
		b.add(
			b.text(x+3, y, totalsWidth/2, RowHeight, r.label, th.Fonts.Body, "", "L", th.Text),
			b.text(x+totalsWidth/2, y, totalsWidth/2-3, RowHeight, r.value, th.Fonts.Body, "", "R", th.Text),
		)
		y += RowHeight
	}
	b.add(
		FilledRect{X: x, Y: y, W: totalsWidth, H: RowHeight, Color: th.Section, Radius: th.RadiusMM},
		b.text(x+3, y, totalsWidth/2, RowHeight, grand.label, th.Fonts.Body, "B", "L", th.SectionText),
		b.text(x+totalsWidth/2-10, y, totalsWidth/2+7, RowHeight, grand.value, th.Fonts.Body, "B", "R", th.SectionText),
	)
	y += RowHeight + 4

	b.add(
		FilledRect{X: Margin, Y: y, W: ContentWidth, H: wordsH, Color: th.Accent.Mix(white, 0.88), Radius: th.RadiusMM},
		StrokedRect{X: Margin, Y: y, W: ContentWidth, H: wordsH, Color: th.Accent, LineWidth: borderWidth, Radius: th.RadiusMM},
		b.text(Margin+4, y+3, ContentWidth-8, 5, b.s.WordsLead, th.Fonts.Body-1, "I", "L", th.Text),
	)
	ly := y + 8
	for _, l := range wordsLines {
		b.add(b.text(Margin+4, ly, ContentWidth-8, 5, l, th.Fonts.Body, "B", "L", th.Text))
		ly += 5
	}
	b.y = y + wordsH + blockGap
}

func (b *builder) notes() {
	notes := textclean.Sanitize(b.in.Data.Notes)
	if notes == "" {
		return
	}
	b.box("Notes", wrap(notes, ContentWidth-10, b.th.Fonts.Body), b.th.Secondary)
}

func (b *builder) section(sec document.Section) {
	d := b.in.Data
	var title string
	var lines []string
	width := ContentWidth - 10
	switch sec {
	case document.SectionValidity:
		title = "Validité de l'offre"
		if until := b.secondaryDate(); until != nil {
			lines = []string{"Ce devis est valable jusqu'au " + FormatDate(*until) + "."}
		}
	case document.SectionTerms:
		title = "Conditions générales"
		lines = wrap(textclean.Sanitize(d.Terms), width, b.th.Fonts.Body)
	case document.SectionPaymentMethod:
		title = "Mode de paiement"
		lines = []string{textclean.Sanitize(d.PaymentMethod)}
		if d.DueDate != nil {
			lines = append(lines, "Paiement attendu au plus tard le "+FormatDate(*d.DueDate)+".")
		}
	case document.SectionConvertedSale:
		title = "Devis converti"
		lines = []string{"Ce devis a été converti en vente N° " + textclean.Sanitize(d.ConvertedSaleReference) + "."}
	case document.SectionOriginalDocument:
		title = "Document d'origine"
		lines = []string{"Avoir établi sur la facture N° " + textclean.Sanitize(d.OriginalDocumentReference) + "."}
	}
	if len(lines) == 0 {
		return
	}
	b.box(title, lines, b.th.Accent)
}

const (
	boxPad   = 3.0
	boxTitle = 6.0
	boxLine  = 5.0
	boxEnd   = 2.0
)

// box draws a tinted block with a left accent bar, a bold title and lines.
// A box taller than the space left continues on the next pages; the title
// stays with at least one line.
func (b *builder) box(title string, lines []string, accent theme.RGB) {
	th := b.th
	if len(lines) == 0 {
		b.reserve(boxPad + boxTitle + boxEnd)
	} else {
		b.reserve(boxPad + boxTitle + boxLine + boxEnd)
	}
	first := true
	for first || len(lines) > 0 {
		y := b.y
		head := boxPad
		if first {
			head += boxTitle
		}
		n := int((contentBottom - y - head - boxEnd) / boxLine)
		n = max(n, 1)
		n = min(n, len(lines))
		h := head + float64(n)*boxLine + boxEnd
		b.add(
			FilledRect{X: Margin, Y: y, W: ContentWidth, H: h, Color: accent.Mix(white, 0.9), Radius: th.RadiusMM},
			FilledRect{X: Margin, Y: y, W: accentBarWidth, H: h, Color: accent},
		)
		if first {
			b.add(b.text(Margin+5, y+boxPad, ContentWidth-10, boxLine, title, th.Fonts.Body, "B", "L", th.Text))
		}
		ly := y + head
		for _, l := range lines[:n] {
			b.add(b.text(Margin+5, ly, ContentWidth-10, boxLine, l, th.Fonts.Body, "", "L", th.Text))
			ly += boxLine
		}
		lines = lines[n:]
		b.y = y + h + blockGap/2
		first = false
		if len(lines) > 0 {
			b.newPage()
		}
	}
}

// oneLine joins the non-blank lines of a multi-line address with ", ".
func oneLine(s string) string {
	var parts []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, ", ")
}

// footer is pinned to the bottom margin of the last page.
func (b *builder) footer() {
	th := b.th
	iss := b.in.Data.Issuer
	y := PageHeight - Margin - FooterHeight
	b.add(
		FilledRect{X: Margin, Y: y, W: ContentWidth, H: borderWidth * 1.5, Color: th.Primary},
		b.text(Margin, y+2, ContentWidth, 5, th.FooterText, th.Fonts.Body, "I", "C", th.Text),
	)
	legal := textclean.Lines(firstNonEmpty(iss.Company, iss.Name), oneLine(iss.Address), iss.Phone, iss.Email)
	if iss.TaxID != "" {
		legal = append(legal, "ICE : "+textclean.Sanitize(iss.TaxID))
	}
	if len(legal) > 0 {
		b.add(b.text(Margin, y+7, ContentWidth, 4, strings.Join(legal, " - "), th.Fonts.Body-2, "", "C", th.Text))
	}
}

// watermark is drawn last on every page.
func (b *builder) watermark() {
	wm := b.th.Watermark
	text := textclean.Sanitize(wm.Text)
	if !wm.Enabled || text == "" {
		return
	}
	for i := range b.pages {
		b.pages[i].Instructions = append(b.pages[i].Instructions, TextRun{
			X: 0, Y: PageHeight/2 - 15, W: PageWidth, H: 30,
			Text: text, Size: watermarkSize, Style: "B", Align: "C",
			Color: b.th.Text, Rotation: 45, Opacity: watermarkAlpha,
		})
	}
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
