// Package encode serializes a rendered pixel buffer to its output format.
//
// PNG and JPEG are direct raster encodes. PDF wraps a single raster frame
// as one page sized exactly to the buffer dimensions; it is deliberately a
// raster-in-container document (no vector text), trading text crispness
// for a much simpler encoder.
package encode

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatJPG: true,
	FormatPDF: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, jpg, pdf)", format)
	}
	return nil
}

// DefaultJPEGQuality is the fixed JPEG quality. There is no user-facing
// quality control; treat this as a constant contract.
const DefaultJPEGQuality = 95

// MIME types per format.
var mimeTypes = map[string]string{
	FormatPNG: "image/png",
	FormatJPG: "image/jpeg",
	FormatPDF: "application/pdf",
}

// MIMEType returns the media type for a format, or "" for unknown formats.
func MIMEType(format string) string { return mimeTypes[format] }

// Option configures encoding.
type Option func(*encoder)

type encoder struct {
	jpegQuality int
}

// WithJPEGQuality overrides the JPEG quality (1-100). It also affects the
// frame embedded in PDF output.
func WithJPEGQuality(q int) Option {
	return func(e *encoder) { e.jpegQuality = q }
}

// Encode serializes img to the requested format and returns the bytes and
// their media type. A nil or empty buffer fails with ENCODE_ERROR; the
// error propagates to the caller and is never retried.
func Encode(img image.Image, format string, opts ...Option) ([]byte, string, error) {
	e := encoder{jpegQuality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&e)
	}

	if img == nil || img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		return nil, "", errors.New(errors.ErrCodeEncode, "cannot encode empty pixel buffer")
	}
	if err := ValidateFormat(format); err != nil {
		return nil, "", err
	}

	var data []byte
	var err error
	switch format {
	case FormatPNG:
		data, err = e.encodePNG(img)
	case FormatJPG:
		data, err = e.encodeJPEG(img)
	case FormatPDF:
		data, err = e.encodePDF(img)
	}
	if err != nil {
		return nil, "", err
	}
	return data, mimeTypes[format], nil
}

func (e encoder) encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (e encoder) encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(e.jpegQuality)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}
