// Package debate orchestrates a scripted two-sided LLM debate: opening
// statements, a fixed number of rounds, three rapid-fire questions, closing
// statements, and a judged verdict, streamed turn by turn.
package debate

import (
	"context"
	"errors"

	"debatearena/internal/openrouter"
)

// Side identifies a debater.
type Side string

const (
	SidePro Side = "pro"
	SideCon Side = "con"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePro {
		return SideCon
	}
	return SidePro
}

// Label returns the uppercase transcript label for the side.
func (s Side) Label() string {
	if s == SidePro {
		return "PRO"
	}
	return "CON"
}

// PhaseKind is the debate phase a turn belongs to. Judging is not a
// PhaseKind; the judge's verdict is modeled separately from turns.
type PhaseKind string

const (
	PhaseOpening   PhaseKind = "opening"
	PhaseRound     PhaseKind = "round"
	PhaseRapidFire PhaseKind = "rapid-fire"
	PhaseClosing   PhaseKind = "closing"
)

// Turn is one model-produced message. Content and Thinking grow
// monotonically while the turn streams and are immutable once finalized.
type Turn struct {
	ID       string    `json:"id"`
	Side     Side      `json:"side"`
	Phase    PhaseKind `json:"phase"`
	Round    int       `json:"roundNumber,omitempty"` // 1-based, round phase only
	Content  string    `json:"content"`
	Thinking string    `json:"thinking,omitempty"`
	Model    string    `json:"model"`
	Partial  bool      `json:"isPartial,omitempty"`
}

// LLMClient is the completion transport the orchestrator drives. The
// streaming call must invoke onChunk with cumulative content/thinking after
// every incremental unit, return the final pair on completion, and report
// cancellation as ctx.Err().
type LLMClient interface {
	StreamChatCompletion(ctx context.Context, model string, messages []openrouter.Message, opts openrouter.StreamOptions, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error)
}

// ErrNotResumable is returned by Continue when there is no stopped or
// failed run to pick up.
var ErrNotResumable = errors.New("debate: no stopped debate to continue")

// ValidationError reports a configuration problem detected before any
// network call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RunState is a snapshot of everything observable about the current run.
type RunState struct {
	Debating   bool
	Judging    bool
	Stopped    bool
	PhaseLabel string
	Transcript []Turn
	Streaming  *Turn // at most one turn is in flight at any time
	Verdict    string
	Err        string
}
