// Package proptest provides property-based testing infrastructure and generators.
package proptest

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
)

// SeedEnv names the environment variable that pins the seed of a run.
const SeedEnv = "MODGEN_PROPTEST_SEED"

// TestParameters returns the standard test parameters for property tests.
// Default: 1000 iterations for a good balance between coverage and speed.
func TestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParametersWithSeed(seedFromEnv())
	params.MinSuccessfulTests = 1000
	return params
}

// FastTestParameters returns parameters for properties whose single check is
// expensive, such as drawing a thousand samples to measure a ratio.
func FastTestParameters() *gopter.TestParameters {
	params := TestParameters()
	params.MinSuccessfulTests = 100
	return params
}

// NewProperties creates a property set for t and logs its seed so a failing
// run can be repeated with SeedEnv.
func NewProperties(t testing.TB, params *gopter.TestParameters) *gopter.Properties {
	t.Helper()
	t.Logf("proptest seed: %d (rerun with %s=%d)", params.Seed(), SeedEnv, params.Seed())
	return gopter.NewProperties(params)
}

func seedFromEnv() int64 {
	if s := os.Getenv(SeedEnv); s != "" {
		if seed, err := strconv.ParseInt(s, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}
