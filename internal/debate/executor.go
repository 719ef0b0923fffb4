package debate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"debatearena/internal/openrouter"
)

// turnSpec is one debater model call.
type turnSpec struct {
	model    string
	side     Side
	phase    PhaseKind
	round    int
	thinking bool
	system   string
	user     string
}

// isCancellation reports whether err is the expected shape of a stop or
// restart rather than a transport failure.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// runTurn executes one debater turn: publishes an in-flight turn, streams
// the model call into it, and finalizes it onto the transcript.
//
// It returns (nil, nil) when the run is no longer active or the call was
// cancelled; in both cases nothing is appended here (Stop converts an
// abandoned in-flight turn into a partial entry itself). Any other
// transport failure clears the in-flight slot and is returned.
func (o *Orchestrator) runTurn(ctx context.Context, runID int64, ts turnSpec) (*Turn, error) {
	o.mu.Lock()
	if o.activeRun != runID {
		o.mu.Unlock()
		return nil, nil
	}
	turn := Turn{
		ID:    uuid.NewString(),
		Side:  ts.side,
		Phase: ts.phase,
		Round: ts.round,
		Model: ts.model,
	}
	inflight := turn
	o.state.Streaming = &inflight
	o.mu.Unlock()

	o.log.Debug("turn started",
		zap.Int64("run", runID),
		zap.String("side", string(ts.side)),
		zap.String("phase", string(ts.phase)),
		zap.Int("round", ts.round),
		zap.String("model", ts.model))

	if o.OnStream != nil {
		o.OnStream(turn)
	}

	result, err := o.llm.StreamChatCompletion(ctx, ts.model, messagePair(ts.system, ts.user),
		openrouter.StreamOptions{Reasoning: ts.thinking},
		func(content, thinking string) {
			o.mu.Lock()
			if o.activeRun != runID || o.state.Streaming == nil || o.state.Streaming.ID != turn.ID {
				o.mu.Unlock()
				return
			}
			o.state.Streaming.Content = content
			o.state.Streaming.Thinking = thinking
			snap := *o.state.Streaming
			o.mu.Unlock()
			if o.OnStream != nil {
				o.OnStream(snap)
			}
		})
	if err != nil {
		if isCancellation(err) {
			// The in-flight slot is left for Stop to convert into a
			// partial entry; a superseding run has already cleared it.
			return nil, nil
		}
		o.mu.Lock()
		if o.activeRun == runID {
			o.state.Streaming = nil
		}
		o.mu.Unlock()
		return nil, err
	}

	o.mu.Lock()
	if o.activeRun != runID {
		o.mu.Unlock()
		return nil, nil
	}
	turn.Content = result.Content
	turn.Thinking = result.Thinking
	o.state.Transcript = append(o.state.Transcript, turn)
	o.state.Streaming = nil
	o.mu.Unlock()

	o.log.Debug("turn finalized",
		zap.Int64("run", runID),
		zap.String("id", turn.ID),
		zap.Int("contentLength", len(turn.Content)))

	if o.OnTurn != nil {
		o.OnTurn(turn)
	}
	return &turn, nil
}
