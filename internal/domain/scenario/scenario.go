// Package scenario turns a requested mix of room formats into a
// concrete night plan: it parses the scenario descriptor, sizes the
// rooms, partitions the roster, and runs the per-room allocators.
package scenario

import (
	"fmt"
	"strings"

	"github.com/opendebate/rostrum/internal/domain/roster"
	"github.com/opendebate/rostrum/internal/domain/sizing"
)

// Capacity ranges per room letter. An OPD room stretches to 13 when the
// whole roster is exactly 13, so a single room can hold such a night.
const (
	opdMin         = 7
	opdMax         = 12
	opdMaxStretch  = 13
	stretchTotal   = 13
	bpMin          = 9
	bpMax          = 11
	fallbackOPDMax = 7
	fallbackBPMax  = 9
)

// RoomSpec is one room requested by a scenario.
type RoomSpec struct {
	Letter string
	Format roster.Format
	Bounds sizing.Bounds
}

// Parse expands a scenario descriptor such as "O-B-B" into room specs.
// Letters are joined by dashes: O requests an OPD room, B a BP room.
func Parse(descriptor string, total int) ([]RoomSpec, error) {
	letters := strings.Split(strings.ToUpper(strings.TrimSpace(descriptor)), "-")

	specs := make([]RoomSpec, 0, len(letters))
	for _, letter := range letters {
		switch letter {
		case "O":
			max := opdMax
			if total == stretchTotal {
				max = opdMaxStretch
			}
			specs = append(specs, RoomSpec{
				Letter: "O",
				Format: roster.FormatOPD,
				Bounds: sizing.Bounds{Min: opdMin, Max: max},
			})
		case "B":
			specs = append(specs, RoomSpec{
				Letter: "B",
				Format: roster.FormatBP,
				Bounds: sizing.Bounds{Min: bpMin, Max: bpMax},
			})
		default:
			return nil, fmt.Errorf("%w: letter %q in %q", ErrUnknownScenario, letter, descriptor)
		}
	}
	return specs, nil
}

// Fallback picks a scenario from the roster size alone: small nights
// get a single room, larger ones one room of each format.
func Fallback(total int) []RoomSpec {
	switch {
	case total <= fallbackOPDMax:
		specs, _ := Parse("O", total)
		return specs
	case total <= fallbackBPMax:
		specs, _ := Parse("B", total)
		return specs
	default:
		specs, _ := Parse("O-B", total)
		return specs
	}
}

// FormatLabel derives the night's overall format from its rooms.
func FormatLabel(specs []RoomSpec) roster.Format {
	var label roster.Format
	for i, spec := range specs {
		if i == 0 {
			label = spec.Format
			continue
		}
		if spec.Format != label {
			return roster.FormatMixed
		}
	}
	return label
}
