package banner

import (
	"image/color"
	"strconv"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

// ParseColorHex converts a #RGB, #RRGGBB or #RRGGBBAA string to an NRGBA
// color. These are the forms the scene model accepts (templates use the
// 8-digit form for translucent shadows).
func ParseColorHex(s string) (color.NRGBA, error) {
	if err := errors.ValidateColorHex(s); err != nil {
		return color.NRGBA{}, err
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", s)
	}
	c := color.NRGBA{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, nil
}
