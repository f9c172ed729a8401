package aggregate

import "fmt"

// Segment is a contiguous positional slice [Start, End) of a table.
type Segment struct {
	Name  string
	Start int
	End   int
}

// Len returns the number of rows in the segment.
func (s Segment) Len() int {
	return s.End - s.Start
}

// SegmentResult is the outcome of splitting n rows into parts.
type SegmentResult struct {
	Segments []Segment
	// Uneven is set when n is not divisible by the number of parts;
	// the last segment then absorbs the remainder.
	Uneven bool
}

// Split divides n rows into equal positional parts of size n/parts.
// The last part runs to the end, so no row is dropped.
func Split(n, parts int) (*SegmentResult, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("parts must be > 0, got %d", parts)
	}
	if n < 0 {
		return nil, fmt.Errorf("row count must be >= 0, got %d", n)
	}

	size := n / parts
	result := &SegmentResult{
		Segments: make([]Segment, parts),
		Uneven:   n%parts != 0,
	}
	for k := 0; k < parts; k++ {
		end := (k + 1) * size
		if k == parts-1 {
			end = n
		}
		result.Segments[k] = Segment{
			Name:  SegmentName(k, parts),
			Start: k * size,
			End:   end,
		}
	}
	return result, nil
}

// SegmentName labels part k (0-based) of parts.
func SegmentName(k, parts int) string {
	switch parts {
	case 2:
		return []string{"first_half", "second_half"}[k]
	case 3:
		return []string{"first_third", "second_third", "last_third"}[k]
	default:
		return fmt.Sprintf("part_%d", k+1)
	}
}
