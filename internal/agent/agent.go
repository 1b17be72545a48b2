package agent

import (
	"context"
	"encoding/json"
)

// Agent is the external capability that performs one patent analysis. The
// engine knows nothing about its internals; it only tolerates its latency
// and failures. The caller bounds each invocation with a deadline on ctx.
type Agent interface {
	Invoke(ctx context.Context, analysisType string, payload json.RawMessage) (json.RawMessage, error)
}

// Analysis types the service accepts. Unknown types are rejected at
// submission, before any item is enqueued.
const (
	TypePriorArt     = "prior_art"
	TypeNovelty      = "novelty"
	TypeInfringement = "infringement"
	TypeLandscape    = "landscape"
)

var knownTypes = map[string]bool{
	TypePriorArt:     true,
	TypeNovelty:      true,
	TypeInfringement: true,
	TypeLandscape:    true,
}

// KnownType reports whether analysisType names a supported analysis.
func KnownType(analysisType string) bool {
	return knownTypes[analysisType]
}
