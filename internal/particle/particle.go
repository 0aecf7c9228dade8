// Package particle keeps short-lived visual particles requested by the
// simulation. The simulation only sends requests; the renderer reads Live.
package particle

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Request is a fire-and-forget particle spawn.
type Request struct {
	X, Y     int
	Glyph    rune
	FG, BG   colorful.Color
	Lifetime float64 // milliseconds
}

// Sink receives particle requests.
type Sink interface {
	Request(r Request)
}

// Particle is a live particle with its remaining lifetime.
type Particle struct {
	Request
	Remaining float64
}

// Buffer collects requests and ages live particles.
type Buffer struct {
	pending []Request
	live    []Particle
	limit   int
}

// NewBuffer returns a buffer holding at most limit live particles; 0 means
// unbounded.
func NewBuffer(limit int) *Buffer {
	return &Buffer{limit: limit}
}

func (b *Buffer) Request(r Request) {
	b.pending = append(b.pending, r)
}

// Tick ages live particles by elapsed milliseconds, drops expired ones and
// promotes pending requests. Oldest particles are evicted first when over
// the limit.
func (b *Buffer) Tick(elapsed float64) {
	kept := b.live[:0]
	for _, p := range b.live {
		p.Remaining -= elapsed
		if p.Remaining > 0 {
			kept = append(kept, p)
		}
	}
	b.live = kept
	for _, r := range b.pending {
		if r.Lifetime > 0 {
			b.live = append(b.live, Particle{Request: r, Remaining: r.Lifetime})
		}
	}
	b.pending = b.pending[:0]
	if b.limit > 0 && len(b.live) > b.limit {
		b.live = append(b.live[:0], b.live[len(b.live)-b.limit:]...)
	}
}

// Live returns the particles to draw this frame.
func (b *Buffer) Live() []Particle { return b.live }

// Pending returns the number of requests not yet promoted.
func (b *Buffer) Pending() int { return len(b.pending) }

// Clear drops everything, used on level change.
func (b *Buffer) Clear() {
	b.pending = b.pending[:0]
	b.live = b.live[:0]
}
