package interval

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Normalize returns the normalized form of g: members validated, empty members
// dropped, sorted by (Start, End), and merged whenever the gap between a
// member and the running tail is <= joinGap. With joinGap == 0 touching
// members merge. The input slice is not modified.
//
// Errors:
//   - ErrBadJoinGap      if joinGap < 0 or NaN.
//   - ErrInvalidInterval if any member is malformed (wrapped with its index).
//
// Complexity: O(n log n) sort + O(n) merge.
func Normalize(g Generalized, joinGap float64) (Generalized, error) {
	if math.IsNaN(joinGap) || joinGap < 0 {
		return nil, ErrBadJoinGap
	}

	members := make(Generalized, 0, len(g))
	for i, iv := range g {
		if err := Validate(iv); err != nil {
			return nil, fmt.Errorf("member %d %v: %w", i, iv, err)
		}
		if iv.Empty() {
			continue
		}
		members = append(members, iv)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Start != members[j].Start {
			return members[i].Start < members[j].Start
		}
		return members[i].End < members[j].End
	})

	out := make(Generalized, 0, len(members))
	for _, iv := range members {
		last := len(out) - 1
		if last >= 0 && iv.Start-out[last].End <= joinGap {
			if iv.End > out[last].End {
				out[last].End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}

	return out, nil
}

// GeneralizedLen returns the total length of g after normalization, so
// overlapping members are counted once.
func GeneralizedLen(g Generalized) (float64, error) {
	norm, err := Normalize(g, DefaultJoinGap)
	if err != nil {
		return 0, err
	}
	lengths := make([]float64, len(norm))
	for i, iv := range norm {
		lengths[i] = iv.Len()
	}

	return floats.Sum(lengths), nil
}

// InGeneralized reports whether x lies in any member of g (half-open).
// g may be raw.
func InGeneralized(x float64, g Generalized) bool {
	for _, iv := range g {
		if Contains(x, iv) {
			return true
		}
	}

	return false
}

// Union returns normalize(a ++ b). It is commutative.
func Union(a, b Generalized) (Generalized, error) {
	all := make(Generalized, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)

	return Normalize(all, DefaultJoinGap)
}

// Intersection returns a ∩ b in normalized form. Both inputs are normalized
// first, then swept with two pointers; the member that ends first advances.
// It is commutative.
func Intersection(a, b Generalized) (Generalized, error) {
	x, err := Normalize(a, DefaultJoinGap)
	if err != nil {
		return nil, err
	}
	y, err := Normalize(b, DefaultJoinGap)
	if err != nil {
		return nil, err
	}

	out := make(Generalized, 0, min(len(x), len(y)))
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		if piece, ok := Intersect(x[i], y[j]); ok {
			out = append(out, piece)
		}
		if x[i].End < y[j].End {
			i++
		} else {
			j++
		}
	}

	return out, nil
}

// IsIntersect reports whether a and b share a range of positive length.
func IsIntersect(a, b Generalized) (bool, error) {
	common, err := Intersection(a, b)
	if err != nil {
		return false, err
	}

	return len(common) > 0, nil
}

// Complement returns bound \ g in normalized form: the gaps between the
// normalized members of g plus the gaps to bound.Start and bound.End.
//
// Errors:
//   - ErrInvalidInterval if bound or a member is malformed.
//   - ErrOutOfBounds     if a non-empty member is not contained in bound.
//
// Empty members are dropped by normalization and never checked against bound.
func Complement(g Generalized, bound Interval) (Generalized, error) {
	if err := Validate(bound); err != nil {
		return nil, fmt.Errorf("bound %v: %w", bound, err)
	}
	norm, err := Normalize(g, DefaultJoinGap)
	if err != nil {
		return nil, err
	}

	out := make(Generalized, 0, len(norm)+1)
	cur := bound.Start
	for _, iv := range norm {
		if iv.Start < bound.Start || iv.End > bound.End {
			return nil, fmt.Errorf("%v outside %v: %w", iv, bound, ErrOutOfBounds)
		}
		if iv.Start > cur {
			out = append(out, Interval{Start: cur, End: iv.Start})
		}
		cur = iv.End
	}
	if cur < bound.End {
		out = append(out, Interval{Start: cur, End: bound.End})
	}

	return out, nil
}
