package scheduling

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// LinkGenerator produces the synthetic meeting link attached to an online
// booking. There is no real video-conferencing integration; the link is an
// opaque placeholder whose only collision guard is a random suffix.
type LinkGenerator interface {
	NewLink() string
}

// RandomLinkGenerator emits meet.google.com-shaped URLs with a random suffix.
type RandomLinkGenerator struct {
	prefix string
}

// NewRandomLinkGenerator creates a generator. The prefix names the
// practitioner slug embedded in the link.
func NewRandomLinkGenerator(prefix string) *RandomLinkGenerator {
	if prefix == "" {
		prefix = "soraia"
	}
	return &RandomLinkGenerator{prefix: prefix}
}

// NewLink returns a fresh synthetic meeting URL.
func (g *RandomLinkGenerator) NewLink() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unreachable; keep the link shape.
		return fmt.Sprintf("https://meet.google.com/%s-fallback", g.prefix)
	}
	return fmt.Sprintf("https://meet.google.com/%s-%s", g.prefix, hex.EncodeToString(buf))
}

// StaticLinkGenerator always returns the same link. Tests use it to keep the
// booking transaction deterministic.
type StaticLinkGenerator struct {
	Link string
}

// NewLink returns the fixed link.
func (g *StaticLinkGenerator) NewLink() string {
	return g.Link
}
