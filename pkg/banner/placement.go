package banner

import (
	"github.com/bannerforge/bannerforge/pkg/errors"
)

// Named placements accepted from the placement-suggestion collaborator.
// Each maps to a fixed center-anchor percentage on the canvas.
const (
	PlacementTopLeft      = "top-left"
	PlacementTopCenter    = "top-center"
	PlacementTopRight     = "top-right"
	PlacementMiddleLeft   = "middle-left"
	PlacementMiddleCenter = "middle-center"
	PlacementMiddleRight  = "middle-right"
	PlacementBottomLeft   = "bottom-left"
	PlacementBottomCenter = "bottom-center"
	PlacementBottomRight  = "bottom-right"
	PlacementCenter       = "center"
)

var placements = map[string]PlacementPercent{
	PlacementTopLeft:      {X: 15, Y: 15},
	PlacementTopCenter:    {X: 50, Y: 15},
	PlacementTopRight:     {X: 85, Y: 15},
	PlacementMiddleLeft:   {X: 15, Y: 50},
	PlacementMiddleCenter: {X: 50, Y: 50},
	PlacementMiddleRight:  {X: 85, Y: 50},
	PlacementBottomLeft:   {X: 15, Y: 85},
	PlacementBottomCenter: {X: 50, Y: 85},
	PlacementBottomRight:  {X: 85, Y: 85},
	PlacementCenter:       {X: 50, Y: 50},
}

// PlacementFor converts a named placement to its PlacementPercent.
func PlacementFor(name string) (PlacementPercent, error) {
	p, ok := placements[name]
	if !ok {
		return PlacementPercent{}, errors.New(errors.ErrCodeInvalidInput, "unknown placement: %q", name)
	}
	return p, nil
}

// PlacementNames returns the accepted placement names. Order is not
// significant.
func PlacementNames() []string {
	names := make([]string, 0, len(placements))
	for k := range placements {
		names = append(names, k)
	}
	return names
}
