package invoice

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// NumberGenerator produces invoice numbers. The generator is injected so
// deployments that need collision-free numbers can swap the time-derived
// default out.
type NumberGenerator interface {
	Next() string
}

// TimeNumberGenerator renders the last six digits of the current unix
// millisecond timestamp, the numbering scheme the original storefront used.
// Two calls within the same millisecond collide; use the counter or UUID
// generator where that matters.
type TimeNumberGenerator struct{}

func (TimeNumberGenerator) Next() string {
	return fmt.Sprintf("ELM-%06d", time.Now().UnixMilli()%1_000_000)
}

// CounterNumberGenerator issues strictly increasing numbers. Handy in tests
// and anywhere rapid repeated generation is expected.
type CounterNumberGenerator struct {
	n atomic.Int64
}

func (g *CounterNumberGenerator) Next() string {
	return fmt.Sprintf("ELM-%06d", g.n.Add(1))
}

// UUIDNumberGenerator issues collision-free numbers at the cost of the
// fixed-width numeric format.
type UUIDNumberGenerator struct{}

func (UUIDNumberGenerator) Next() string {
	return "ELM-" + uuid.NewString()[:8]
}
