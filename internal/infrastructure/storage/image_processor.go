package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	DefaultMaxPhotoSize = 2 * 1024 * 1024 // 2 MiB
	ThumbnailSize       = 300
	// MaxPhotoPixels bounds width*height, checked from the header before decoding
	MaxPhotoPixels      = 40_000_000
)

var (
	ErrPhotoEmpty      = errors.New("photo is empty")
	ErrPhotoTooLarge   = errors.New("photo exceeds the maximum size")
	ErrPhotoNotImage   = errors.New("photo is not an image")
	ErrPhotoFormat     = errors.New("photo must be a JPEG, PNG or GIF image")
	ErrPhotoDimensions = errors.New("photo dimensions are too large")
	allowedPhotoFormat = map[string]bool{"jpeg": true, "png": true, "gif": true}
)

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = DefaultMaxPhotoSize
	}
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateImage checks size and decodes only the header to learn the format.
// Returns the format name ("jpeg", "png", "gif").
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrPhotoEmpty
	}
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("%w (%d KB)", ErrPhotoTooLarge, p.MaxSize/1024)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrPhotoNotImage
	}
	if !allowedPhotoFormat[format] {
		return "", ErrPhotoFormat
	}
	if err := checkDimensions(cfg); err != nil {
		return "", err
	}
	return format, nil
}

func checkDimensions(cfg image.Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ErrPhotoNotImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPhotoPixels {
		return fmt.Errorf("%w (%dx%d)", ErrPhotoDimensions, cfg.Width, cfg.Height)
	}
	return nil
}

// Thumbnail fits the image into ThumbnailSize x ThumbnailSize and encodes JPEG q85
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	if err := checkDimensions(cfg); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
