package upload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/freshmart/admin-console/internal/domain"
)

// Compression defaults: images larger than DefaultMaxBytes or wider/taller
// than DefaultMaxDimension are shrunk before upload so product photos
// straight off a phone camera do not blow up storage.
const (
	DefaultMaxBytes     = 1 << 20 // 1 MiB
	DefaultMaxDimension = 1920

	minJPEGQuality = 30
)

// DecodeImage parses an uploaded payload into an image. JPEG, PNG, and GIF
// are accepted.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewAppError(domain.CodeValidation, "unsupported or corrupt image", err)
	}
	return img, nil
}

// Crop returns the part of img covered by rect. The rectangle is clipped
// to the image bounds; an empty intersection is a validation error.
func Crop(img image.Image, rect image.Rectangle) (image.Image, error) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return nil, domain.NewAppError(domain.CodeValidation, "crop area outside image bounds", nil)
	}

	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out, nil
}

// Compress encodes img as JPEG within the given byte and dimension
// limits. The image is first scaled down to fit maxDimension, then
// re-encoded at decreasing quality until it fits maxBytes. Zero limits
// fall back to the defaults.
func Compress(img image.Image, maxBytes, maxDimension int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	img = scaleToFit(img, maxDimension)

	var buf bytes.Buffer
	for quality := 85; quality >= minJPEGQuality; quality -= 10 {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "failed to encode image", err)
		}
		if buf.Len() <= maxBytes {
			return buf.Bytes(), nil
		}
	}

	// Quality floor reached; halve dimensions until the payload fits.
	for buf.Len() > maxBytes {
		b := img.Bounds()
		if b.Dx() <= 64 || b.Dy() <= 64 {
			return nil, domain.NewAppError(domain.CodeValidation,
				fmt.Sprintf("image cannot be compressed below %d bytes", maxBytes), nil)
		}
		img = scaleToFit(img, max(b.Dx(), b.Dy())/2)
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: minJPEGQuality}); err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "failed to encode image", err)
		}
	}
	return buf.Bytes(), nil
}

// scaleToFit shrinks img proportionally so neither side exceeds limit.
// Images already within the limit are returned unchanged; upscaling never
// happens.
func scaleToFit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = limit
		nh = h * limit / w
	} else {
		nh = limit
		nw = w * limit / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Over, nil)
	return out
}

// NewFilename builds the stored filename for an upload: a random id plus
// the current date, always with a .jpg extension because compression
// re-encodes everything as JPEG.
func NewFilename(now time.Time) string {
	return uuid.NewString() + now.Format("122006") + ".jpg"
}
