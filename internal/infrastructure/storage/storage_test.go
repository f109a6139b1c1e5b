package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor(DefaultMaxPhotoSize)

	format, err := p.ValidateImage(pngBytes(t, 20, 10))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = p.ValidateImage(nil)
	assert.ErrorIs(t, err, ErrPhotoEmpty)

	_, err = p.ValidateImage([]byte("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, ErrPhotoNotImage)

	small := NewImageProcessor(16)
	_, err = small.ValidateImage(pngBytes(t, 20, 10))
	assert.ErrorIs(t, err, ErrPhotoTooLarge)
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h pixels,
// with no image data behind it.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor

	buf := new(bytes.Buffer)
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestValidateImageRejectsHugeDimensions(t *testing.T) {
	p := NewImageProcessor(DefaultMaxPhotoSize)

	bomb := pngHeader(20000, 20000)
	require.Less(t, len(bomb), 64)

	_, err := p.ValidateImage(bomb)
	assert.ErrorIs(t, err, ErrPhotoDimensions)

	_, err = p.Thumbnail(bomb)
	assert.ErrorIs(t, err, ErrPhotoDimensions)

	format, err := p.ValidateImage(pngHeader(8000, 5000))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = p.ValidateImage(pngHeader(8000, 5001))
	assert.ErrorIs(t, err, ErrPhotoDimensions)
}

func TestThumbnail(t *testing.T) {
	p := NewImageProcessor(DefaultMaxPhotoSize)

	thumb, err := p.Thumbnail(pngBytes(t, 900, 600))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestPhotoKey(t *testing.T) {
	key := PhotoKey("courses", "Machine Learning 101!", "jpeg")
	assert.True(t, strings.HasPrefix(key, "courses/machine-learning-101-"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	assert.NotEqual(t, key, PhotoKey("courses", "Machine Learning 101!", "jpeg"))

	assert.True(t, strings.HasPrefix(PhotoKey("courses", "", "png"), "courses/photo-"))
	assert.Equal(t, "courses/a-b_thumb.jpg", ThumbnailKey("courses/a-b.png"))
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	ls, err := NewLocalStorage(t.TempDir(), "/storage")
	require.NoError(t, err)

	require.NoError(t, ls.Put(ctx, "courses/a.png", []byte("data"), "image/png"))

	got, err := ls.Get(ctx, "courses/a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
	assert.Equal(t, "/storage/courses/a.png", ls.URL("courses/a.png"))

	require.NoError(t, ls.Delete(ctx, "courses/a.png"))
	require.NoError(t, ls.Delete(ctx, "courses/a.png"))

	_, err = ls.Get(ctx, "courses/a.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	assert.Error(t, ls.Put(ctx, "../escape.png", []byte("x"), "image/png"))
}
