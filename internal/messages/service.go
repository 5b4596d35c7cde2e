package messages

import (
	"context"
	"errors"
	"strings"

	"github.com/soraiaclinic/clinic-platform/internal/observability/metrics"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// ErrInvalidType is returned for message types the generator does not know.
var ErrInvalidType = errors.New("messages: invalid message type")

// Generator produces client-facing messages. An LLM drafts the text; when the
// LLM is unavailable or errors, the canned Portuguese fallback is used so the
// caller always gets something to send.
type Generator struct {
	llm     LLMClient
	cache   Cache
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

// NewGenerator creates a message generator. llm and cache may be nil; a nil
// llm means every message comes from the fallback templates.
func NewGenerator(llm LLMClient, cache Cache, logger *logging.Logger, m *metrics.BookingMetrics) *Generator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Generator{llm: llm, cache: cache, logger: logger, metrics: m}
}

// Generate returns the message text and whether the fallback was used.
func (g *Generator) Generate(ctx context.Context, req Request) (string, bool, error) {
	if !req.Type.Valid() {
		return "", false, ErrInvalidType
	}

	if g.cache != nil {
		if text, ok := g.cache.Get(ctx, req); ok {
			return text, false, nil
		}
	}

	if g.llm != nil {
		text, err := g.llm.Generate(ctx, req.Prompt())
		if err == nil && strings.TrimSpace(text) != "" {
			if g.cache != nil {
				g.cache.Set(ctx, req, text)
			}
			g.metrics.ObserveMessage(string(req.Type), false)
			return text, false, nil
		}
		if err != nil {
			g.logger.Warn("llm generation failed, using fallback", "type", req.Type, "error", err)
		}
	}

	g.metrics.ObserveMessage(string(req.Type), true)
	return req.Fallback(), true, nil
}
