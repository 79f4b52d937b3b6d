package domain

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type Span struct {
	Name      string `json:"name"`
	ElapsedMs *int64 `json:"elapsedMs"`
	startTs   time.Time
}

func (s *Span) End() {
	if s.ElapsedMs == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.ElapsedMs = &t
	}
}

// Profile is an ordered list of spans for one request. A nil *Profile
// is valid and records nothing, so callers never need to check
type Profile struct {
	mu      sync.Mutex
	spans   []*Span
	startTs time.Time
	totalMs *int64
}

type profileKey struct{}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		spans:   []*Span{},
		startTs: time.Now(),
	}
	return newProfile, newProfile.End
}

func WithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

func ProfileFromContext(ctx context.Context) *Profile {
	p, _ := ctx.Value(profileKey{}).(*Profile)
	return p
}

// StartNewSpan ends the last span and begins a new one
func (p *Profile) StartNewSpan(name string) (newSpan *Span, endSpan func()) {
	newSpan = &Span{
		Name:    name,
		startTs: time.Now(),
	}
	if p == nil {
		return newSpan, newSpan.End
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.spans) > 0 {
		p.spans[len(p.spans)-1].End()
	}
	p.spans = append(p.spans, newSpan)

	return newSpan, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		newSpan.End()
	}
}

func (p *Profile) End() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.spans) > 0 {
		p.spans[len(p.spans)-1].End()
	}
	if p.totalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.totalMs = &t
	}
}

// Spans returns a copy of the recorded spans
func (p *Profile) Spans() []Span {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Span, 0, len(p.spans))
	for _, s := range p.spans {
		out = append(out, *s)
	}
	return out
}

func (p *Profile) TotalMs() int64 {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.totalMs == nil {
		return time.Since(p.startTs).Milliseconds()
	}
	return *p.totalMs
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	bytes, err := json.Marshal(p.Spans())
	if err != nil {
		return nil, err
	}
	return bytes, nil
}
