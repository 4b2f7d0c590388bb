package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLength is returned for length strings that can't be parsed
var ErrInvalidLength = errors.New("invalid length")

// remPixels is the root font size used to resolve rem units
const remPixels = 16.0

// Length is a CSS-like offset made of a percentage of the container extent plus fixed pixels.
// The zero value is an unset length.
type Length struct {
	Percent float64
	Pixels  float64
	Set     bool
}

// Percent returns a set length of p percent
func Percent(p float64) Length {
	return Length{Percent: p, Set: true}
}

// Pixels returns a set length of px pixels
func Pixels(px float64) Length {
	return Length{Pixels: px, Set: true}
}

// Resolve returns the length in pixels for a container axis of the given extent
func (l Length) Resolve(extent float64) float64 {
	return extent*l.Percent/100 + l.Pixels
}

func (l Length) String() string {
	if !l.Set {
		return ""
	}
	switch {
	case l.Pixels == 0:
		return formatNumber(l.Percent) + "%"
	case l.Percent == 0:
		return formatNumber(l.Pixels) + "px"
	case l.Pixels < 0:
		return fmt.Sprintf("calc(%s%% - %spx)", formatNumber(l.Percent), formatNumber(-l.Pixels))
	default:
		return fmt.Sprintf("calc(%s%% + %spx)", formatNumber(l.Percent), formatNumber(l.Pixels))
	}
}

// ParseLength accepts "50%", "120px", "120", "5.5rem" and "calc(50% + 120px)" forms.
// An empty string yields an unset length.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, nil
	}

	if strings.HasPrefix(s, "calc(") && strings.HasSuffix(s, ")") {
		return parseCalc(s[len("calc(") : len(s)-1])
	}

	l, err := parseTerm(s)
	if err != nil {
		return Length{}, err
	}
	l.Set = true
	return l, nil
}

// MustParseLength is ParseLength for literals known to be valid
func MustParseLength(s string) Length {
	l, err := ParseLength(s)
	if err != nil {
		panic(err)
	}
	return l
}

func parseCalc(expr string) (Length, error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 || len(fields)%2 == 0 {
		return Length{}, fmt.Errorf("%w: calc(%s)", ErrInvalidLength, expr)
	}

	out, err := parseTerm(fields[0])
	if err != nil {
		return Length{}, err
	}
	for i := 1; i < len(fields); i += 2 {
		term, err := parseTerm(fields[i+1])
		if err != nil {
			return Length{}, err
		}
		switch fields[i] {
		case "+":
		case "-":
			term.Percent, term.Pixels = -term.Percent, -term.Pixels
		default:
			return Length{}, fmt.Errorf("%w: unsupported operator %q", ErrInvalidLength, fields[i])
		}
		out.Percent += term.Percent
		out.Pixels += term.Pixels
	}
	out.Set = true
	return out, nil
}

func parseTerm(s string) (Length, error) {
	unit := ""
	num := s
	for _, u := range []string{"%", "px", "rem"} {
		if strings.HasSuffix(s, u) {
			unit = u
			num = strings.TrimSuffix(s, u)
			break
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}

	switch unit {
	case "%":
		return Length{Percent: v}, nil
	case "rem":
		return Length{Pixels: v * remPixels}, nil
	default:
		return Length{Pixels: v}, nil
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
