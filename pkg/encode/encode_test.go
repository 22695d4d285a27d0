package encode

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"regexp"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

func testImage(w, h int) *image.NRGBA {
	return imaging.New(w, h, color.NRGBA{R: 30, G: 144, B: 255, A: 255})
}

func TestValidateFormat(t *testing.T) {
	for f := range ValidFormats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", f, err)
		}
	}
	for _, f := range []string{"", "gif", "PNG", "jpeg"} {
		err := ValidateFormat(f)
		if err == nil {
			t.Errorf("ValidateFormat(%q) should fail", f)
			continue
		}
		if code := errors.GetCode(err); code != errors.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %q, want %q", f, code, errors.ErrCodeInvalidFormat)
		}
	}
}

func TestMIMEType(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{FormatPNG, "image/png"},
		{FormatJPG, "image/jpeg"},
		{FormatPDF, "application/pdf"},
		{"gif", ""},
	}
	for _, tt := range tests {
		if got := MIMEType(tt.format); got != tt.want {
			t.Errorf("MIMEType(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	data, mime, err := Encode(testImage(120, 60), FormatPNG)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode produced PNG: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 60 {
		t.Errorf("decoded size = %dx%d, want 120x60", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEncodeJPEG(t *testing.T) {
	data, mime, err := Encode(testImage(80, 40), FormatJPG, WithJPEGQuality(70))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("mime = %q, want image/jpeg", mime)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode produced JPEG: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 40 {
		t.Errorf("decoded size = %dx%d, want 80x40", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEncodePDF(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"landscape", 200, 100},
		{"portrait", 100, 200},
		{"square", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mime, err := Encode(testImage(tt.w, tt.h), FormatPDF)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if mime != "application/pdf" {
				t.Errorf("mime = %q, want application/pdf", mime)
			}
			if !bytes.HasPrefix(data, []byte("%PDF")) {
				t.Error("output is missing the PDF header")
			}
			if len(data) < 500 {
				t.Errorf("PDF suspiciously small: %d bytes", len(data))
			}
			// The page must match the pixel buffer at 1pt per pixel,
			// including for landscape pages.
			gotW, gotH := pdfMediaBox(t, data)
			if gotW != float64(tt.w) || gotH != float64(tt.h) {
				t.Errorf("page size = %gx%g pt, want %dx%d", gotW, gotH, tt.w, tt.h)
			}
		})
	}
}

var mediaBoxRe = regexp.MustCompile(`/MediaBox \[0 0 (\d+\.?\d*) (\d+\.?\d*)\]`)

func pdfMediaBox(t *testing.T, data []byte) (w, h float64) {
	t.Helper()
	m := mediaBoxRe.FindSubmatch(data)
	if m == nil {
		t.Fatal("no MediaBox found in PDF output")
	}
	w, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		t.Fatalf("parse MediaBox width: %v", err)
	}
	h, err = strconv.ParseFloat(string(m[2]), 64)
	if err != nil {
		t.Fatalf("parse MediaBox height: %v", err)
	}
	return w, h
}

func TestEncodeInvalidFormat(t *testing.T) {
	if _, _, err := Encode(testImage(10, 10), "bmp"); err == nil {
		t.Fatal("Encode() with unknown format should fail")
	}
}

func TestEncodeNilImage(t *testing.T) {
	_, _, err := Encode(nil, FormatPNG)
	if err == nil {
		t.Fatal("Encode(nil) should fail")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeEncode {
		t.Errorf("code = %q, want %q", code, errors.ErrCodeEncode)
	}
}

func TestEncodeZeroAreaImage(t *testing.T) {
	if _, _, err := Encode(imaging.New(0, 0, color.NRGBA{}), FormatPNG); err == nil {
		t.Fatal("Encode() of a zero-area image should fail")
	}
}
