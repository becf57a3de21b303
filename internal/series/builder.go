package series

import (
	"fmt"
	"math"
	"strings"

	"DominanceSentinel/internal/model"
)

// AlignPolicy decides how the two price sequences are paired.
type AlignPolicy string

const (
	// AlignByIndex pairs points by position and truncates to the shorter sequence.
	// Timestamps come from sequence A; mismatched grids are not detected.
	AlignByIndex AlignPolicy = "by_index"
	// AlignByTimestamp pairs only points whose timestamps are equal.
	AlignByTimestamp AlignPolicy = "by_timestamp"
)

// ParseAlignPolicy parses a configuration value. An empty string means AlignByIndex.
func ParseAlignPolicy(s string) (AlignPolicy, error) {
	switch AlignPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlignByIndex:
		return AlignByIndex, nil
	case AlignByTimestamp:
		return AlignByTimestamp, nil
	default:
		return "", fmt.Errorf("unknown align policy %q", s)
	}
}

// Build derives the dominance series 100*A/(A+B) from two price sequences.
func Build(a, b []model.PricePoint, policy AlignPolicy) (model.DominanceSeries, error) {
	if err := validate("asset A", a); err != nil {
		return nil, err
	}
	if err := validate("asset B", b); err != nil {
		return nil, err
	}

	switch policy {
	case AlignByIndex, "":
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		out := make(model.DominanceSeries, n)
		for i := 0; i < n; i++ {
			d, err := dominance(a[i].Value, b[i].Value, i)
			if err != nil {
				return nil, err
			}
			out[i] = model.DominancePoint{Time: a[i].Time, Dominance: d}
		}
		return out, nil

	case AlignByTimestamp:
		var out model.DominanceSeries
		i, j := 0, 0
		for i < len(a) && j < len(b) {
			switch {
			case a[i].Time.Before(b[j].Time):
				i++
			case b[j].Time.Before(a[i].Time):
				j++
			default:
				d, err := dominance(a[i].Value, b[j].Value, i)
				if err != nil {
					return nil, err
				}
				out = append(out, model.DominancePoint{Time: a[i].Time, Dominance: d})
				i++
				j++
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: no common timestamps", model.ErrInvalidInputData)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown align policy %q", policy)
	}
}

func dominance(a, b float64, idx int) (float64, error) {
	sum := a + b
	if sum <= 0 || math.IsInf(sum, 0) {
		return 0, fmt.Errorf("%w: summed price %.8g at index %d is not a finite positive number", model.ErrInvalidInputData, sum, idx)
	}
	// Divide first so 100*a cannot overflow.
	return 100 * (a / sum), nil
}

func validate(name string, pts []model.PricePoint) error {
	if len(pts) == 0 {
		return fmt.Errorf("%w: %s price series is empty", model.ErrInvalidInputData, name)
	}
	for i, p := range pts {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) || p.Value <= 0 {
			return fmt.Errorf("%w: %s price %v at index %d is not a finite positive number", model.ErrInvalidInputData, name, p.Value, i)
		}
		if i > 0 && !p.Time.After(pts[i-1].Time) {
			return fmt.Errorf("%w: %s timestamps not strictly increasing at index %d", model.ErrInvalidInputData, name, i)
		}
	}
	return nil
}
