package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small image to dir and returns its path
func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 20), B: 100, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "in.png")
	cache := NewImageCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Errorf("dimensions: got %v, want 20x10", img.Bounds())
	}

	// Second load hits the cache and returns the same decoded image.
	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if again != img {
		t.Error("cached load returned a different image instance")
	}
}

func TestImageCache_Load_MissingFile(t *testing.T) {
	cache := NewImageCache()

	_, err := cache.Load(filepath.Join(t.TempDir(), "does-not-exist.png"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestImageCache_Load_Undecodable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write junk file: %v", err)
	}

	cache := NewImageCache()
	if _, err := cache.Load(path); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "in.png")
	cache := NewImageCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(path)
	cache.Evict("never-loaded") // no-op

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("reload after Evict failed: %v", err)
	}

	cache.Clear()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("reload after Clear failed: %v", err)
	}
}

func TestLoadInfo(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "in.png")
	cache := NewImageCache()

	info, err := LoadInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Width != 20 || info.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %q, want %q", info.Format, "png")
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d, want > 0", info.FileSizeBytes)
	}
}

func TestLoadInfo_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "image.dat")
	cache := NewImageCache()

	info, err := LoadInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Format != "unknown" {
		t.Errorf("format: got %q, want %q", info.Format, "unknown")
	}
}
