// Package sizing turns a participant total and per-room capacity bounds
// into concrete per-room headcounts.
package sizing

import (
	"context"
	"fmt"
)

// Bounds is one room's admissible headcount range.
type Bounds struct {
	Min int
	Max int
}

// Counts distributes total participants across the given rooms.
//
// Every room starts at its minimum; the remainder is handed out one seat
// at a time, round-robin across rooms that still have headroom. That
// keeps room sizes within one of each other wherever the bounds permit.
// The result is deterministic for a given input.
func Counts(_ context.Context, total int, bounds []Bounds) ([]int, error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("%w: no rooms", ErrInfeasible)
	}

	counts := make([]int, len(bounds))
	minSum, maxSum := 0, 0
	for i, b := range bounds {
		if b.Min < 0 || b.Max < b.Min {
			return nil, fmt.Errorf("%w: room %d has bounds (%d,%d)", ErrInconsistentBounds, i+1, b.Min, b.Max)
		}
		counts[i] = b.Min
		minSum += b.Min
		maxSum += b.Max
	}

	remaining := total - minSum
	if remaining < 0 || total > maxSum {
		return nil, fmt.Errorf("%w: %d participants for capacity [%d,%d]", ErrInfeasible, total, minSum, maxSum)
	}

	for remaining > 0 {
		progressed := false
		for i := range counts {
			if remaining == 0 {
				break
			}
			if counts[i] < bounds[i].Max {
				counts[i]++
				remaining--
				progressed = true
			}
		}
		// The aggregate check above should make this unreachable; guard
		// against inconsistent bounds anyway.
		if !progressed {
			return nil, fmt.Errorf("%w: %d participants left undistributed", ErrInconsistentBounds, remaining)
		}
	}

	return counts, nil
}
