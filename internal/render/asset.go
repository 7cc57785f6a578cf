package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	_ "embed"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

//go:embed assets/binding.png
var defaultAsset []byte

// DefaultAsset decodes the binding image shipped with the binary.
func DefaultAsset() (image.Image, error) {
	return DecodeAsset(bytes.NewReader(defaultAsset))
}

// LoadAsset reads a binding image from disk.
func LoadAsset(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open binding asset: %w", err)
	}
	defer file.Close()

	return DecodeAsset(file)
}

func DecodeAsset(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode binding asset: %w", err)
	}
	return img, nil
}

// Fingerprint hashes an image's bounds and pixels. A nil image has an empty
// fingerprint.
func Fingerprint(img image.Image) string {
	if img == nil {
		return ""
	}
	bounds := img.Bounds()
	h := sha256.New()

	var buf [16]byte
	for _, v := range []int{bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y} {
		binary.BigEndian.PutUint32(buf[:4], uint32(int32(v)))
		h.Write(buf[:4])
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			binary.BigEndian.PutUint32(buf[0:4], r)
			binary.BigEndian.PutUint32(buf[4:8], g)
			binary.BigEndian.PutUint32(buf[8:12], b)
			binary.BigEndian.PutUint32(buf[12:16], a)
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
