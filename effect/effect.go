package effect

import (
	"fmt"
	"strings"

	"github.com/fogleman/ease"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultCurve is the fade used when none is configured.
const DefaultCurve = "in_quad"

var curves = map[string]ease.Function{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_quart":     ease.InQuart,
	"out_quart":    ease.OutQuart,
	"in_out_quart": ease.InOutQuart,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
}

// Curve returns the easing function registered under name. An empty name means DefaultCurve.
func Curve(name string) (ease.Function, error) {
	if name == "" {
		name = DefaultCurve
	}
	fn, ok := curves[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown easing curve %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
	return fn, nil
}

// Names lists the known curves in alphabetical order.
func Names() []string {
	names := maps.Keys(curves)
	slices.Sort(names)
	return names
}
