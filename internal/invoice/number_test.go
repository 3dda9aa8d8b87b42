package invoice

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var numericFormat = regexp.MustCompile(`^ELM-\d{6}$`)

func TestTimeNumberGenerator_Format(t *testing.T) {
	n := TimeNumberGenerator{}.Next()
	assert.Regexp(t, numericFormat, n)
}

func TestCounterNumberGenerator_MonotonicAndCollisionFree(t *testing.T) {
	g := &CounterNumberGenerator{}

	first := g.Next()
	second := g.Next()

	assert.Equal(t, "ELM-000001", first)
	assert.Equal(t, "ELM-000002", second)
}

func TestUUIDNumberGenerator_Unique(t *testing.T) {
	g := UUIDNumberGenerator{}

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		n := g.Next()
		assert.Regexp(t, `^ELM-[0-9a-f]{8}$`, n)
		_, dup := seen[n]
		assert.False(t, dup, "duplicate number %s", n)
		seen[n] = struct{}{}
	}
}
