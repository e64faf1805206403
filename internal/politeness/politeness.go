// Package politeness spaces out requests and rotates request headers so
// the harvester stays a well-behaved client of both sources.
package politeness

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// defaultUserAgents is the rotation pool used when none is configured.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 " +
		"(KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
}

// Config tunes the politeness behavior. A zero DelayMin/DelayMax with
// a high RequestsPerSec is the deterministic variant used in tests.
type Config struct {
	DelayMin       time.Duration
	DelayMax       time.Duration
	RequestsPerSec float64
	UserAgents     []string
}

// Politeness enforces think-time between requests and hands out a
// rotating header bundle. Stateless apart from the static pool and the
// rate limiter; safe to share across the sequential pipeline.
type Politeness struct {
	cfg     Config
	limiter *rate.Limiter
}

// New creates a Politeness layer from config, filling defaults.
func New(cfg Config) *Politeness {
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = defaultUserAgents
	}
	if cfg.DelayMax < cfg.DelayMin {
		cfg.DelayMax = cfg.DelayMin
	}
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	return &Politeness{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Delay blocks for the rate-limiter floor plus a uniformly random
// think-time from [DelayMin, DelayMax]. Returns early on context
// cancellation.
func (p *Politeness) Delay(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	span := p.cfg.DelayMax - p.cfg.DelayMin
	d := p.cfg.DelayMin
	if span > 0 {
		d += time.Duration(rand.Int64N(int64(span)))
	}
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Headers returns one header bundle with a User-Agent drawn at random
// from the pool, varied per request to reduce fingerprinting.
func (p *Politeness) Headers() map[string]string {
	return map[string]string{
		"User-Agent":      p.cfg.UserAgents[rand.IntN(len(p.cfg.UserAgents))],
		"Accept-Language": "en-US,en;q=0.9",
	}
}
