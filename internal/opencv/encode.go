package opencv

import (
	"fmt"
	"image"
	"io"
	"strings"

	"gocv.io/x/gocv"
)

// Extensions are the formats Encoder handles that the plot backend cannot
// write itself.
var Extensions = []string{".bmp", ".webp"}

// Encoder returns a function that encodes an image with OpenCV in the
// format named by ext.
func Encoder(ext string) func(w io.Writer, img image.Image) error {
	ext = strings.ToLower(ext)
	return func(w io.Writer, img image.Image) error {
		return Encode(w, img, ext)
	}
}

// Encode writes img to w as ext.
func Encode(w io.Writer, img image.Image, ext string) error {
	if img == nil {
		return fmt.Errorf("input image is nil")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("image to Mat conversion failed: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return fmt.Errorf("converted Mat is empty")
	}

	buf, err := gocv.IMEncode(gocv.FileExt(ext), mat)
	if err != nil {
		return fmt.Errorf("%s encoding failed: %w", ext, err)
	}
	defer buf.Close()

	_, err = w.Write(buf.GetBytes())
	return err
}
