package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/diewo77/docrender/internal/document"
	"github.com/diewo77/docrender/internal/layout"
	"github.com/diewo77/docrender/internal/pdf"
	"github.com/diewo77/docrender/internal/theme"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LogoSource loads a logo; a nil result means no logo.
type LogoSource interface {
	Load(ctx context.Context, src string) *pdf.Logo
}

// RenderService runs a document through theme resolution, layout and
// painting.
type RenderService struct {
	painter   pdf.Painter
	logos     LogoSource
	log       *zap.Logger
	bands     int
	outputDir string
	parallel  int
}

// RenderOption configures a RenderService.
type RenderOption func(*RenderService)

// WithGradientBands sets the number of bands of gradient headers.
func WithGradientBands(n int) RenderOption {
	return func(s *RenderService) { s.bands = n }
}

// WithOutputDir keeps a copy of every rendered PDF in dir.
func WithOutputDir(dir string) RenderOption {
	return func(s *RenderService) { s.outputDir = dir }
}

// WithParallelism bounds the number of designs PreviewThemes renders at once.
func WithParallelism(n int) RenderOption {
	return func(s *RenderService) {
		if n > 0 {
			s.parallel = n
		}
	}
}

func NewRenderService(painter pdf.Painter, logos LogoSource, log *zap.Logger, opts ...RenderOption) *RenderService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &RenderService{
		painter:  painter,
		logos:    logos,
		log:      log,
		bands:    theme.DefaultBandCount,
		parallel: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type prepared struct {
	input layout.Input
	logo  *pdf.Logo
}

func (s *RenderService) prepare(ctx context.Context, d document.Data, ds theme.DesignSettings) (prepared, error) {
	th := theme.Resolve(ds, theme.WithBandCount(s.bands))
	st, err := document.StrategyFor(d, document.Toggles(th.Sections))
	if err != nil {
		return prepared{}, err
	}
	var logo *pdf.Logo
	if s.logos != nil {
		logo = s.logos.Load(ctx, th.LogoURL)
	}
	return prepared{
		input: layout.Input{Data: d, Theme: th, Strategy: st, Logo: logo.Layout()},
		logo:  logo,
	}, nil
}

// Render produces the PDF of d styled with ds. The only error it returns for
// bad input is a wrapped document.ErrUnknownKind.
func (s *RenderService) Render(ctx context.Context, d document.Data, ds theme.DesignSettings) (*pdf.Document, error) {
	start := time.Now()
	log := s.log.With(
		zap.String("render_id", uuid.NewString()),
		zap.String("kind", string(d.Kind)),
		zap.String("number", d.Number),
	)
	p, err := s.prepare(ctx, d, ds)
	if err != nil {
		log.Info("render rejected", zap.Error(err))
		return nil, err
	}
	res := layout.Build(p.input)
	doc, err := s.painter.Paint(res, p.input.Theme, p.logo)
	if err != nil {
		log.Error("render failed", zap.Error(err))
		return nil, fmt.Errorf("paint %s %s: %w", d.Kind, d.Number, err)
	}
	if s.outputDir != "" {
		path := filepath.Join(s.outputDir, FileName(d))
		if err := doc.WriteFile(path); err != nil {
			log.Warn("could not keep rendered copy", zap.String("path", path), zap.Error(err))
		}
	}
	log.Info("document rendered",
		zap.Int("pages", doc.PageCount()),
		zap.Int("bytes", len(doc.Bytes())),
		zap.Bool("logo", p.logo != nil),
		zap.Duration("duration", time.Since(start)),
	)
	return doc, nil
}

// Preview returns the draw instructions of d without painting them.
func (s *RenderService) Preview(ctx context.Context, d document.Data, ds theme.DesignSettings) (layout.Result, error) {
	p, err := s.prepare(ctx, d, ds)
	if err != nil {
		return layout.Result{}, err
	}
	return layout.Build(p.input), nil
}

// ThemePreview summarizes the rendering of one design.
type ThemePreview struct {
	Name  string `json:"name"`
	Pages int    `json:"pages"`
	Bytes int    `json:"bytes"`
}

// PreviewThemes renders d once per design, concurrently. Results follow the
// order of designs.
func (s *RenderService) PreviewThemes(ctx context.Context, d document.Data, designs []theme.DesignSettings) ([]ThemePreview, error) {
	out := make([]ThemePreview, len(designs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, ds := range designs {
		g.Go(func() error {
			doc, err := s.Render(ctx, d, ds)
			if err != nil {
				return err
			}
			name := ds.Name
			if name == "" {
				name = fmt.Sprintf("design-%d", i+1)
			}
			out[i] = ThemePreview{Name: name, Pages: doc.PageCount(), Bytes: len(doc.Bytes())}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileName is the download name of a rendered document, e.g.
// "invoice-FAC-0001.pdf".
func FileName(d document.Data) string {
	number := unsafeFileChars.ReplaceAllString(d.Number, "_")
	if number == "" {
		return string(d.Kind) + ".pdf"
	}
	return string(d.Kind) + "-" + number + ".pdf"
}
