package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/bmp"
)

func newTestLoader(timeout time.Duration, maxBytes int64, opts ...LogoOption) (*LogoLoader, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewLogoLoader(timeout, maxBytes, zap.New(core), opts...), logs
}

func TestLoadLogoFromURL(t *testing.T) {
	data := pngBytes(t, 30, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	l, logs := newTestLoader(time.Second, 1<<20)
	logo := l.Load(context.Background(), srv.URL+"/logo.png")
	if logo == nil {
		t.Fatalf("expected logo, logs: %v", logs.All())
	}
	if logo.Type != "png" || logo.Width != 30 || logo.Height != 10 || !bytes.Equal(logo.Data, data) {
		t.Errorf("logo = %s %dx%d", logo.Type, logo.Width, logo.Height)
	}
	if ll := logo.Layout(); ll.Name != logoImageName || ll.Width != 30 {
		t.Errorf("layout logo = %+v", ll)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %v", logs.All())
	}
}

func TestLoadLogoFailuresReturnNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/slow":
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		case "/big":
			w.Write(make([]byte, 4096))
		case "/garbage":
			w.Write([]byte("<html>not an image</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name string
		src  string
	}{
		{"not found", srv.URL + "/missing.png"},
		{"timeout", srv.URL + "/slow"},
		{"too large", srv.URL + "/big"},
		{"not an image", srv.URL + "/garbage"},
		{"missing file", filepath.Join(t.TempDir(), "nope.png")},
		{"bad data url", "data:image/png;base64,@@@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, logs := newTestLoader(200*time.Millisecond, 1024)
			if logo := l.Load(context.Background(), tt.src); logo != nil {
				t.Fatalf("expected nil logo, got %+v", logo)
			}
			if logs.FilterMessage("logo unavailable, using initials badge").Len() != 1 {
				t.Errorf("expected one warning, got %v", logs.All())
			}
		})
	}
}

func TestLoadLogoEmptySource(t *testing.T) {
	l, logs := newTestLoader(time.Second, 0)
	if l.Load(context.Background(), "   ") != nil {
		t.Fatal("empty source should give no logo")
	}
	if logs.Len() != 0 {
		t.Error("empty source should not warn")
	}
}

func TestLoadLogoConvertsToPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp: %v", err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.bmp")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	l, _ := newTestLoader(time.Second, 1<<20, WithLocalDir(dir))
	logo := l.Load(context.Background(), path)
	if logo == nil {
		t.Fatal("expected converted logo")
	}
	if logo.Type != "png" || !bytes.HasPrefix(logo.Data, []byte("\x89PNG")) {
		t.Errorf("bmp should be converted to png, got %s", logo.Type)
	}
	if logo.Width != 12 || logo.Height != 8 {
		t.Errorf("size = %dx%d", logo.Width, logo.Height)
	}
}

func TestLoadLogoReencodesWidePNG(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	logo, err := decodeLogo(buf.Bytes())
	if err != nil {
		t.Fatalf("decodeLogo: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(logo.Data))
	if err != nil {
		t.Fatal(err)
	}
	if wide(cfg.ColorModel) {
		t.Error("16-bit png should be re-encoded to 8-bit")
	}
}

func TestLoadLogoDataURL(t *testing.T) {
	data := pngBytes(t, 5, 5)
	l, _ := newTestLoader(time.Second, 1<<20)
	logo := l.Load(context.Background(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(data))
	if logo == nil || logo.Width != 5 {
		t.Fatalf("data url logo = %+v", logo)
	}
}

func TestLoadLogoLocalPaths(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), pngBytes(t, 6, 6), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(t.TempDir(), "secret.png")
	if err := os.WriteFile(outside, pngBytes(t, 6, 6), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		dir   string
		src   string
		found bool
	}{
		{"disabled without dir", "", filepath.Join(dir, "logo.png"), false},
		{"relative to dir", dir, "logo.png", true},
		{"absolute inside dir", dir, filepath.Join(dir, "logo.png"), true},
		{"file url inside dir", dir, "file://" + filepath.Join(dir, "logo.png"), true},
		{"absolute outside dir", dir, outside, false},
		{"escaping dir", dir, "../" + filepath.Base(filepath.Dir(outside)) + "/secret.png", false},
		{"directory", dir, "sub", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, logs := newTestLoader(time.Second, 1<<20, WithLocalDir(tt.dir))
			logo := l.Load(context.Background(), tt.src)
			if (logo != nil) != tt.found {
				t.Fatalf("logo = %v, want found=%v (logs %v)", logo, tt.found, logs.All())
			}
			if !tt.found && logs.Len() != 1 {
				t.Errorf("expected one warning, got %v", logs.All())
			}
		})
	}
}
