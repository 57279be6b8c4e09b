package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const cacheDir = "cache/images"

// imageVariant describes one derived rendition of a product image
type imageVariant struct {
	maxDim  int
	quality int
	// small renditions lose definition after downscaling; a light
	// sharpen keeps product labels readable
	sharpen float64
}

// Renditions served by the product image endpoint and embedded in the
// price-list catalog. The catalog variant is kept small so a multi-page
// PDF with one thumbnail per row stays printable.
var imageVariants = map[string]imageVariant{
	"thumb":   {maxDim: 300, quality: 60, sharpen: 0.6},
	"medium":  {maxDim: 800, quality: 75},
	"catalog": {maxDim: 120, quality: 55, sharpen: 0.8},
}

// ValidImageSize reports whether size names a known rendition
func ValidImageSize(size string) bool {
	_, ok := imageVariants[size]
	return ok
}

// EnsureCacheDir ensures the image cache directory exists
func EnsureCacheDir() error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// GetCachePath returns the cache file path for a product image rendition
func GetCachePath(productID int64, size string) string {
	filename := fmt.Sprintf("product_%d_%s.jpg", productID, size)
	return filepath.Join(cacheDir, filename)
}

// CacheExists checks if a cached rendition exists
func CacheExists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// ReadFromCache reads a cached rendition
func ReadFromCache(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// SaveToCache writes a rendition to the cache
func SaveToCache(cachePath string, imageData []byte) error {
	dir := filepath.Dir(cachePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// OptimizeImage decodes raw image bytes (PNG, JPEG, ...) and produces the
// named JPEG rendition. Unknown sizes are an error; callers validate
// against ValidImageSize first.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	variant, ok := imageVariants[size]
	if !ok {
		return nil, fmt.Errorf("unknown image size %q", size)
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	out := img
	bounds := img.Bounds()
	if bounds.Dx() > variant.maxDim || bounds.Dy() > variant.maxDim {
		out = imaging.Fit(img, variant.maxDim, variant.maxDim, imaging.Lanczos)
		log.Printf("🔄 Resized image: %dx%d -> %v", bounds.Dx(), bounds.Dy(), out.Bounds().Max)
	}
	if variant.sharpen > 0 {
		out = imaging.Sharpen(out, variant.sharpen)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: variant.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, variant.quality, buf.Len())
	return buf.Bytes(), nil
}
