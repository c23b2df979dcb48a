package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"syscall"
	"strings"
	"testing"

	"badc0de.net/pkg/go-spritecut/ttesting"
)

func setup(t *testing.T) *server {
	t.Helper()
	spineDir := filepath.Join(t.TempDir(), "spine")
	dir := filepath.Join(spineDir, "hina_spr")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), A: 0xFF})
		}
	}
	f, err := os.Create(filepath.Join(dir, "hina_spr.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	png.Encode(f, img)
	f.Close()

	desc := "\nhina_spr.png\nsize: 64,64\nformat: RGBA8888\nfilter: Linear,Linear\nrepeat: none\n"
	for _, r := range []struct {
		name, rot  string
		x, y, w, h int
	}{
		{"leg", "true", 10, 20, 30, 40},
		{"body/arm", "false", 0, 0, 8, 8},
		{"outside", "false", 60, 60, 10, 10},
	} {
		desc += fmt.Sprintf("%s\n  rotate: %s\n  xy: %d, %d\n  size: %d, %d\n  orig: 0, 0\n  offset: 0, 0\n  index: -1\n", r.name, r.rot, r.x, r.y, r.w, r.h)
	}
	if err := os.WriteFile(filepath.Join(dir, "hina_spr.atlas"), []byte(desc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return &server{spineDir: spineDir, thumb: 16}
}

func get(t *testing.T, s *server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	newRouter(s).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndex(t *testing.T) {
	rec := get(t, setup(t), "/")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `href="/sheet/hina_spr">Hina<`) {
		t.Errorf("index lacks sheet link: %s", rec.Body.String())
	}
}

func TestSheet(t *testing.T) {
	rec := get(t, setup(t), "/sheet/hina_spr")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	body := rec.Body.String()
	if n := strings.Count(body, "data:image/png;base64,"); n != 2 {
		t.Errorf("got %d thumbnails; want 2", n)
	}
	if !strings.Contains(body, "outside sheet") {
		t.Errorf("out of bounds part not reported: %s", body)
	}
}

func TestPart(t *testing.T) {
	s := setup(t)
	for _, tt := range []struct {
		path string
		size image.Point
	}{
		{"/sheet/hina_spr/part/leg", image.Pt(40, 30)},
		{"/sheet/hina_spr/part/body%2Farm", image.Pt(8, 8)},
	} {
		rec := get(t, s, tt.path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: got status %d", tt.path, rec.Code)
		}
		img, err := png.Decode(rec.Body)
		if err != nil {
			t.Fatalf("%s: decode: %v", tt.path, err)
		}
		ttesting.AssertEqualPoint(t, tt.path, img.Bounds().Size(), tt.size)
	}
}

func TestNotFound(t *testing.T) {
	s := setup(t)
	tests := map[string]int{
		"/sheet/aru_spr":               http.StatusNotFound,
		"/sheet/hina_home":             http.StatusNotFound,
		"/sheet/hina_spr/part/tail":    http.StatusNotFound,
		"/sheet/hina_spr/part/outside": http.StatusUnprocessableEntity,
	}
	for path, want := range tests {
		ttesting.AssertEqualInt(t, path, get(t, s, path).Code, want)
	}
}

// brokenConn is a response writer whose client went away.
type brokenConn struct {
	*httptest.ResponseRecorder
}

func (brokenConn) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestWritePNGError(t *testing.T) {
	w := brokenConn{httptest.NewRecorder()}
	err := writePNG(w, image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	if err == nil {
		t.Fatalf("got no error writing to a closed connection")
	}
	ttesting.AssertErrorIs(t, "cause kept", err, syscall.EPIPE)
	ttesting.AssertEqualString(t, "content type", w.Header().Get("Content-Type"), "image/png")
}
