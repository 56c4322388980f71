// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"

	"github.com/katalvlaran/kmst/core"
)

// builderConfig is the state every Layout receives.
type builderConfig struct {
	rng    *rand.Rand
	center core.Point
}

// Option customizes Build.
type Option func(*builderConfig)

// WithSeed seeds a fresh *rand.Rand, making stochastic layouts reproducible.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithCenter moves the root (and the whole layout) to p.
func WithCenter(p core.Point) Option {
	return func(c *builderConfig) { c.center = p }
}

func newConfig(opts ...Option) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
