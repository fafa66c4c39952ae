package mesh

import (
	"fmt"

	"github.com/lixenwraith/cubit/vmath"
)

// StaticSink receives one static edge body per segment
type StaticSink interface {
	AddSegment(from, to vmath.Vec2, friction float64) error
}

// Attach creates a static body for every non-degenerate segment
// Returns the number of bodies created
func Attach(sink StaticSink, segments []Segment, friction float64) (int, error) {
	n := 0
	for i, s := range segments {
		if s.Degenerate() {
			continue
		}
		if err := sink.AddSegment(s.From, s.To, friction); err != nil {
			return n, fmt.Errorf("mesh: segment %d (%s): %w", i, s.Face, err)
		}
		n++
	}
	return n, nil
}
