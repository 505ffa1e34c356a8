package service

import (
	"context"
	"math/rand/v2"
	"time"

	"realestate-agent/internal/config"
	"realestate-agent/internal/metrics"
	"realestate-agent/internal/model"
)

// ownerReplies are the canned outcomes of a simulated owner contact
var ownerReplies = []string{
	"✅ Owner contacted successfully! They're available for property viewing this weekend.",
	"📞 Spoke with the owner - they're open to negotiations and can arrange a visit tomorrow.",
	"🏡 Owner confirms the property is available. Best viewing time is in the evening.",
	"💰 Good news! Owner is motivated to close quickly and open to reasonable offers.",
	"📋 Owner would like to discuss terms directly. I can facilitate the introduction.",
}

// OwnerReplies returns a copy of the canned contact messages
func OwnerReplies() []string {
	return append([]string(nil), ownerReplies...)
}

// RandomSource supplies uniform random draws. *rand.Rand satisfies it but is
// not safe for concurrent use.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

// DelaySource decides how long a simulated contact takes
type DelaySource interface {
	NextDelay() time.Duration
}

// globalRand draws from the package-level generator, which is safe for
// concurrent use
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// UniformDelay draws delays uniformly from [Min, Max)
type UniformDelay struct {
	Min  time.Duration
	Max  time.Duration
	Rand RandomSource
}

// NextDelay implements DelaySource
func (d UniformDelay) NextDelay() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + time.Duration(d.Rand.Float64()*float64(d.Max-d.Min))
}

// FixedDelay always returns the same delay
type FixedDelay time.Duration

// NextDelay implements DelaySource
func (d FixedDelay) NextDelay() time.Duration {
	return time.Duration(d)
}

// OwnerContactSimulator stands in for real owner outreach
type OwnerContactSimulator struct {
	delay               DelaySource
	rand                RandomSource
	followUpProbability float64
	now                 func() time.Time
	metrics             *metrics.Metrics
}

// ContactOption configures an OwnerContactSimulator
type ContactOption func(*OwnerContactSimulator)

// WithDelaySource replaces the delay policy
func WithDelaySource(d DelaySource) ContactOption {
	return func(s *OwnerContactSimulator) {
		s.delay = d
	}
}

// WithRandomSource replaces the source used for message and follow-up draws
func WithRandomSource(r RandomSource) ContactOption {
	return func(s *OwnerContactSimulator) {
		s.rand = r
	}
}

// WithClock replaces the timestamp source
func WithClock(now func() time.Time) ContactOption {
	return func(s *OwnerContactSimulator) {
		s.now = now
	}
}

// WithContactMetrics records each contact outcome
func WithContactMetrics(m *metrics.Metrics) ContactOption {
	return func(s *OwnerContactSimulator) {
		s.metrics = m
	}
}

// NewOwnerContactSimulator creates a simulator with random delays in the
// configured range and the configured follow-up probability
func NewOwnerContactSimulator(cfg config.ContactConfig, opts ...ContactOption) *OwnerContactSimulator {
	s := &OwnerContactSimulator{
		delay:               UniformDelay{Min: cfg.MinDelay, Max: cfg.MaxDelay, Rand: globalRand{}},
		rand:                globalRand{},
		followUpProbability: cfg.FollowUpProbability,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContactOwner waits for the simulated delay without blocking other requests,
// then reports a randomly chosen outcome. It fails only if ctx ends first.
func (s *OwnerContactSimulator) ContactOwner(ctx context.Context, propertyID string) (*model.ContactResult, error) {
	timer := time.NewTimer(s.delay.NextDelay())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	result := &model.ContactResult{
		Success:          true,
		Message:          ownerReplies[s.rand.IntN(len(ownerReplies))],
		ContactTime:      s.now(),
		FollowUpRequired: s.rand.Float64() < s.followUpProbability,
	}
	s.metrics.RecordOwnerContact(result.FollowUpRequired)
	return result, nil
}
