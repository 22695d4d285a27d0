package encode

import (
	"bytes"
	"image"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

// encodePDF builds a one-page document whose page matches the pixel buffer
// at 1pt per pixel, with a single JPEG frame covering the full page.
// Orientation is landscape when width exceeds height, portrait otherwise
// (square counts as portrait).
func (e encoder) encodePDF(img image.Image) ([]byte, error) {
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	orientation := "P"
	if w > h {
		orientation = "L"
	}

	frame, err := e.encodeJPEG(img)
	if err != nil {
		return nil, err
	}

	// fpdf takes the size in portrait form and swaps the axes itself for
	// landscape orientation.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: math.Min(w, h), Ht: math.Max(w, h)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("frame", opts, bytes.NewReader(frame))
	pdf.ImageOptions("frame", 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode pdf")
	}
	if buf.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEncode, "pdf encoder produced empty output")
	}
	return buf.Bytes(), nil
}
