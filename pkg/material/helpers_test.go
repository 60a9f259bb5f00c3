package material

import (
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

// sequenceSampler replays a fixed list of draws and fails the test if the
// material asks for more than were provided
func sequenceSampler(t *testing.T, values ...core.Scalar) core.Sampler {
	t.Helper()
	i := 0
	return core.SamplerFunc(func() core.Scalar {
		if i >= len(values) {
			t.Fatalf("sampler exhausted after %d draws", len(values))
		}
		v := values[i]
		i++
		return v
	})
}
