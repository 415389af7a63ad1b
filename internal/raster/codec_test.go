package raster

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeTestPNG writes a solid-color PNG into a temp dir and returns its path.
func writeTestPNG(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestFromImageUnpremultiplies(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.NRGBA{R: 200, G: 100, B: 0, A: 255})
	src.Set(6, 5, color.NRGBA{R: 0, G: 0, B: 0, A: 0})

	img, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if img.Width != 2 || img.Height != 1 {
		t.Fatalf("dimensions: got %dx%d, want 2x1", img.Width, img.Height)
	}
	if got := img.At(0, 0); got != (color.NRGBA{R: 200, G: 100, B: 0, A: 255}) {
		t.Errorf("pixel (0,0): got %v", got)
	}
	if got := img.At(1, 0).A; got != 0 {
		t.Errorf("pixel (1,0) alpha: got %d, want 0", got)
	}
}

func TestFromImageNil(t *testing.T) {
	if _, err := FromImage(nil); err == nil {
		t.Error("FromImage(nil): expected error")
	}
}

func TestDecodeAndSaveRoundTrip(t *testing.T) {
	path := writeTestPNG(t, 3, 2, color.RGBA{10, 20, 30, 255})

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", img.Width, img.Height)
	}

	out := filepath.Join(t.TempDir(), "nested", "out.png")
	if err := Save(img, out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	back, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode of saved file failed: %v", err)
	}
	for i := range img.Pix {
		if back.Pix[i] != img.Pix[i] {
			t.Fatalf("Pix[%d]: got %d, want %d", i, back.Pix[i], img.Pix[i])
		}
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := Decode("/nonexistent/path/image.png"); err == nil {
		t.Error("Decode of missing file: expected error")
	}
}

func TestEncodePNG(t *testing.T) {
	img := newFilled(t, 4, 4, 255, 255, 255, 255)
	enc, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if enc.MimeType != "image/png" {
		t.Errorf("MimeType: got %q, want image/png", enc.MimeType)
	}
	data, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("encoded data does not carry a PNG signature")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"00ff00", color.NRGBA{0, 255, 0, 255}, false},
		{"#0000FF80", color.NRGBA{0, 0, 255, 128}, false},
		{"", color.NRGBA{}, true},
		{"#FFF", color.NRGBA{}, true},
		{"#GGGGGG", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImageCache(t *testing.T) {
	path := writeTestPNG(t, 5, 5, color.RGBA{255, 0, 0, 255})

	cache := NewImageCache(true)
	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if first != second {
		t.Error("second Load did not return the cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}

	cache.Evict(path)
	if cache.Len() != 0 {
		t.Errorf("Len after Evict: got %d, want 0", cache.Len())
	}

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", cache.Len())
	}
}

func TestImageCacheDisabled(t *testing.T) {
	path := writeTestPNG(t, 2, 2, color.RGBA{0, 0, 0, 255})
	cache := NewImageCache(false)
	a, _ := cache.Load(path)
	b, _ := cache.Load(path)
	if a == b {
		t.Error("disabled cache returned the same pointer twice")
	}
	if cache.Len() != 0 {
		t.Errorf("Len: got %d, want 0", cache.Len())
	}
}

func TestImageCacheConcurrent(t *testing.T) {
	path := writeTestPNG(t, 8, 8, color.RGBA{0, 0, 255, 255})
	cache := NewImageCache(true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestLoadImageInfo(t *testing.T) {
	path := writeTestPNG(t, 7, 3, color.RGBA{1, 2, 3, 255})
	info, err := LoadImageInfo(NewImageCache(true), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Width != 7 || info.Height != 3 {
		t.Errorf("dimensions: got %dx%d, want 7x3", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
	if info.HasAlpha {
		t.Error("HasAlpha: got true, want false")
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}

	dims, err := GetDimensions(NewImageCache(false), path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 7 || dims.Height != 3 {
		t.Errorf("GetDimensions: got %dx%d, want 7x3", dims.Width, dims.Height)
	}
}
