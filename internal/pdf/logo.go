package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diewo77/docrender/internal/layout"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Logo is a decoded logo in a format fpdf can embed.
type Logo struct {
	// Type is png, jpg or gif.
	Type   string
	Data   []byte
	Width  int
	Height int
}

// Layout describes the logo for the layout engine.
func (l *Logo) Layout() *layout.Logo {
	if l == nil {
		return nil
	}
	return &layout.Logo{Name: logoImageName, Width: l.Width, Height: l.Height}
}

var (
	errLogoTooLarge  = errors.New("logo exceeds size limit")
	errLogoStatus    = errors.New("unexpected logo response status")
	errLocalDisabled = errors.New("local logo paths are disabled")
	errNotRegular    = errors.New("logo is not a regular file")
)

// LogoLoader fetches logos by http(s) URL or data URL. Local paths are only
// read below the directory set with WithLocalDir.
type LogoLoader struct {
	client   *http.Client
	maxBytes int64
	log      *zap.Logger
	localDir string
}

// LogoOption configures a LogoLoader.
type LogoOption func(*LogoLoader)

// WithLocalDir lets logos be read from files below dir. Paths are resolved
// relative to dir and may not leave it.
func WithLocalDir(dir string) LogoOption {
	return func(l *LogoLoader) {
		if dir == "" {
			return
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		l.localDir = dir
	}
}

// NewLogoLoader returns a loader that gives up after timeout and rejects
// logos larger than maxBytes.
func NewLogoLoader(timeout time.Duration, maxBytes int64, log *zap.Logger, opts ...LogoOption) *LogoLoader {
	if log == nil {
		log = zap.NewNop()
	}
	l := &LogoLoader{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		log:      log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load never fails: any problem is logged and nil is returned, in which case
// the document gets an initials badge.
func (l *LogoLoader) Load(ctx context.Context, src string) *Logo {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil
	}
	data, err := l.fetch(ctx, src)
	if err == nil {
		var logo *Logo
		if logo, err = decodeLogo(data); err == nil {
			return logo
		}
	}
	l.log.Warn("logo unavailable, using initials badge", zap.String("logo", shorten(src)), zap.Error(err))
	return nil
}

func (l *LogoLoader) fetch(ctx context.Context, src string) ([]byte, error) {
	lower := strings.ToLower(src)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %d", errLogoStatus, resp.StatusCode)
		}
		return l.readLimited(resp.Body)
	case strings.HasPrefix(lower, "data:"):
		i := strings.Index(src, ",")
		if i < 0 || !strings.Contains(lower[:i], ";base64") {
			return nil, errors.New("unsupported data url")
		}
		data, err := base64.StdEncoding.DecodeString(src[i+1:])
		if err != nil {
			return nil, fmt.Errorf("decode data url: %w", err)
		}
		if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
			return nil, errLogoTooLarge
		}
		return data, nil
	}
	return l.readLocal(strings.TrimPrefix(src, "file://"))
}

// readLocal reads a regular file below localDir.
func (l *LogoLoader) readLocal(path string) ([]byte, error) {
	if l.localDir == "" {
		return nil, errLocalDisabled
	}
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(l.localDir, path)
		if err != nil {
			return nil, fmt.Errorf("resolve logo path: %w", err)
		}
		path = rel
	}
	root, err := os.OpenRoot(l.localDir)
	if err != nil {
		return nil, fmt.Errorf("open logo dir: %w", err)
	}
	defer root.Close()
	// Opening a fifo or a device would block past the timeout.
	info, err := root.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, errNotRegular
	}
	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.readLimited(f)
}

func (l *LogoLoader) readLimited(r io.Reader) ([]byte, error) {
	if l.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxBytes {
		return nil, errLogoTooLarge
	}
	return data, nil
}

// decodeLogo keeps jpeg and gif as is and hands fpdf an 8-bit PNG for
// everything else.
func decodeLogo(data []byte) (*Logo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("empty logo")
	}
	logo := &Logo{Width: cfg.Width, Height: cfg.Height}
	switch format {
	case "jpeg":
		logo.Type, logo.Data = "jpg", data
		return logo, nil
	case "gif":
		logo.Type, logo.Data = "gif", data
		return logo, nil
	case "png":
		if !wide(cfg.ColorModel) && !interlaced(data) {
			logo.Type, logo.Data = "png", data
			return logo, nil
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	nrgba := image.NewNRGBA(img.Bounds())
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	logo.Type, logo.Data = "png", buf.Bytes()
	return logo, nil
}

// wide reports 16-bit color models, which fpdf does not embed.
func wide(m color.Model) bool {
	return m == color.RGBA64Model || m == color.NRGBA64Model || m == color.Gray16Model
}

// interlaced reads the interlace byte of the IHDR chunk.
func interlaced(data []byte) bool {
	return len(data) > 28 && data[28] != 0
}

func shorten(src string) string {
	if len(src) > 80 {
		return src[:80] + "..."
	}
	return src
}
