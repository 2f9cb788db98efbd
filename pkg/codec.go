package boo

import (
	"math"
	"strconv"
	"strings"
)

// Weights are the positional multipliers of the major, minor and micro
// components. It is an array so that every holder gets its own copy.
type Weights [3]int

// StandardWeights returns the weights used by boo: major*10000 +
// minor*100 + micro.
func StandardWeights() Weights {
	return Weights{10000, 100, 1}
}

// Codec converts between dot-notation versions ("1.2.3") and their integer
// encoding. Malformed input is always rejected with ErrInvalidVersion; the
// codec never coerces bad input to 0.
type Codec struct {
	weights Weights
}

// NewCodec returns a Codec using w.
func NewCodec(w Weights) Codec {
	return Codec{weights: w}
}

// Weights returns the codec's weights.
func (c Codec) Weights() Weights {
	return c.weights
}

// ToInt encodes a dot-notation version. Missing trailing components count
// as 0, so "1.2" encodes like "1.2.0". Components may exceed 99; the excess
// carries when the value is decoded again.
func (c Codec) ToInt(version string) (int, error) {
	pieces := strings.Split(version, ".")
	if len(pieces) > len(c.weights) {
		return 0, newError(CodeInvalidVersion, "version %q has more than %d components", version, len(c.weights))
	}

	total := 0
	for i, piece := range pieces {
		n, err := parseComponent(piece)
		if err != nil {
			return 0, wrapError(CodeInvalidVersion, err, "invalid version %q", version)
		}
		if w := c.weights[i]; w > 0 && n > (math.MaxInt-total)/w {
			return 0, newError(CodeInvalidVersion, "version %q is out of range", version)
		}
		total += n * c.weights[i]
	}
	return total, nil
}

// parseComponent accepts only ASCII digits; strconv.Atoi alone would let
// signs through.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, newError(CodeInvalidVersion, "empty component")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, newError(CodeInvalidVersion, "component %q is not a non-negative integer", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, newError(CodeInvalidVersion, "component %q is out of range", s)
	}
	return n, nil
}

// ToStr decodes an integer version into its canonical dot-notation form.
// Zero and negative values are rejected, so 0.0.0 never round-trips.
func (c Codec) ToStr(version int) (string, error) {
	if version <= 0 {
		return "", newError(CodeInvalidVersion, "version must be greater than 0, got %d", version)
	}

	components := make([]string, 0, len(c.weights))
	remaining := version
	for _, w := range c.weights {
		components = append(components, strconv.Itoa(remaining/w))
		remaining %= w
	}
	return strings.Join(components, "."), nil
}

// Add sums a mix of dot-notation strings and integer versions. Strings are
// encoded with ToInt first.
func (c Codec) Add(values ...any) (int, error) {
	sum := 0
	for _, v := range values {
		var n int
		switch v := v.(type) {
		case int:
			n = v
		case string:
			var err error
			if n, err = c.ToInt(v); err != nil {
				return 0, err
			}
		default:
			return 0, newError(CodeInvalidVersion, "cannot add value of type %T", v)
		}
		if (n > 0 && sum > math.MaxInt-n) || (n < 0 && sum < math.MinInt-n) {
			return 0, newError(CodeInvalidVersion, "sum of versions is out of range")
		}
		sum += n
	}
	return sum, nil
}

// Canonical normalizes a dot-notation version, e.g. "1.02" to "1.2.0".
func (c Codec) Canonical(version string) (string, error) {
	n, err := c.ToInt(version)
	if err != nil {
		return "", err
	}
	return c.ToStr(n)
}
