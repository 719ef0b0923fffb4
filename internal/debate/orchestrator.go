package debate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"debatearena/internal/openrouter"
	"debatearena/internal/style"
)

// Orchestrator drives the full debate sequence: opening -> rounds ->
// rapid-fire -> closing -> judging. Exactly one run is active at a time; a
// monotonically increasing run identifier is the sole source of truth for
// liveness, and every continuation checks it before taking any visible
// action. Stop, Reset, and Snapshot may be called from other goroutines
// while a run is in flight.
type Orchestrator struct {
	llm    LLMClient
	styles *style.Repository
	log    *zap.Logger

	// Observation callbacks, all optional. Invoked outside the state lock.
	OnPhase   func(label string)
	OnTurn    func(Turn)
	OnStream  func(Turn)   // cumulative snapshot of the in-flight turn
	OnVerdict func(string) // cumulative verdict text

	mu        sync.Mutex
	runSeq    int64
	activeRun int64 // 0 when no run is active
	cancelRun context.CancelFunc
	state     RunState
	resume    *runConfig
}

// runConfig is the fully-resolved configuration snapshotted at run start,
// reused verbatim by Continue.
type runConfig struct {
	cfg       Config
	rounds    int
	selection StyleSelection
}

// NewOrchestrator creates an Orchestrator. A nil logger disables logging.
func NewOrchestrator(llm LLMClient, styles *style.Repository, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{llm: llm, styles: styles, log: log}
}

// Snapshot returns a deep copy of the current run state.
func (o *Orchestrator) Snapshot() RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.state
	s.Transcript = append([]Turn(nil), o.state.Transcript...)
	if o.state.Streaming != nil {
		cp := *o.state.Streaming
		s.Streaming = &cp
	}
	return s
}

// Start validates cfg, invalidates any prior run, clears all run state,
// and executes the full debate sequence. It blocks until the run
// completes, fails, or is cancelled. Stop and cancellation are not errors.
func (o *Orchestrator) Start(ctx context.Context, cfg Config) error {
	if cfg.APIKey == "" || cfg.Topic == "" {
		return o.rejectConfig(&ValidationError{Message: "API key and debate topic are required"})
	}
	rounds, err := cfg.roundCount()
	if err != nil {
		return o.rejectConfig(err)
	}

	o.mu.Lock()
	runID, runCtx := o.beginRun(ctx)
	o.state = RunState{Debating: true}
	rc := runConfig{
		cfg:       cfg,
		rounds:    rounds,
		selection: o.styles.NormalizeSelection(cfg.Styles),
	}
	o.resume = &rc
	o.mu.Unlock()

	o.log.Info("debate started",
		zap.Int64("run", runID),
		zap.String("topic", cfg.Topic),
		zap.Int("rounds", rounds))

	pb := newPromptBuilder(o.styles, cfg.Topic, cfg.ProModel, cfg.ConModel, rc.selection)
	return o.run(runCtx, runID, rc, pb, StartPosition())
}

// Continue resumes a stopped (or failed) run from the exact interruption
// point, reusing the configuration snapshotted at start. A trailing partial
// turn is removed from the transcript and its position redone from scratch.
func (o *Orchestrator) Continue(ctx context.Context) error {
	o.mu.Lock()
	if o.resume == nil || !(o.state.Stopped || o.state.Err != "") {
		o.mu.Unlock()
		return ErrNotResumable
	}
	rc := *o.resume
	runID, runCtx := o.beginRun(ctx)
	o.state.Debating = true
	o.state.Stopped = false
	o.state.Judging = false
	o.state.Err = ""
	o.state.Streaming = nil

	pos := ResumePoint(o.state.Transcript, rc.rounds)
	if n := len(o.state.Transcript); n > 0 && o.state.Transcript[n-1].Partial {
		o.state.Transcript = o.state.Transcript[:n-1]
	}
	o.mu.Unlock()

	o.log.Info("debate resumed",
		zap.Int64("run", runID),
		zap.Int("stage", int(pos.Stage)),
		zap.String("side", string(pos.Side)))

	pb := newPromptBuilder(o.styles, rc.cfg.Topic, rc.cfg.ProModel, rc.cfg.ConModel, rc.selection)
	return o.run(runCtx, runID, rc, pb, pos)
}

// Stop invalidates the active run, aborts the in-flight transport call,
// and finalizes any streaming turn as a partial transcript entry so its
// content is not lost. The transcript and verdict are kept.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	o.invalidate()
	var partial *Turn
	if s := o.state.Streaming; s != nil {
		t := *s
		t.Partial = true
		o.state.Transcript = append(o.state.Transcript, t)
		o.state.Streaming = nil
		partial = &t
	}
	o.state.Stopped = true
	o.state.Debating = false
	o.state.Judging = false
	o.mu.Unlock()

	o.log.Info("debate stopped", zap.Bool("partialTurn", partial != nil))
	if partial != nil && o.OnTurn != nil {
		o.OnTurn(*partial)
	}
}

// Reset invalidates the run and clears all state, including the transcript,
// verdict, and resume bookkeeping.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.invalidate()
	o.state = RunState{}
	o.resume = nil
	o.mu.Unlock()
	o.log.Info("debate reset")
}

// beginRun allocates a fresh run id, cancelling and invalidating any prior
// run. Caller must hold o.mu.
func (o *Orchestrator) beginRun(ctx context.Context) (int64, context.Context) {
	o.invalidate()
	o.runSeq++
	o.activeRun = o.runSeq
	runCtx, cancel := context.WithCancel(ctx)
	o.cancelRun = cancel
	return o.runSeq, runCtx
}

// invalidate aborts the in-flight transport call and marks no run active.
// Caller must hold o.mu.
func (o *Orchestrator) invalidate() {
	o.activeRun = 0
	if o.cancelRun != nil {
		o.cancelRun()
		o.cancelRun = nil
	}
}

func (o *Orchestrator) isActive(runID int64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeRun == runID
}

// rejectConfig records a validation failure without touching run state.
func (o *Orchestrator) rejectConfig(err error) error {
	o.mu.Lock()
	o.state.Err = err.Error()
	o.mu.Unlock()
	return err
}

// run walks the phase sequence from pos until completion, cancellation, or
// failure. The transcript accumulated so far is the conversation context
// for every subsequent prompt.
func (o *Orchestrator) run(ctx context.Context, runID int64, rc runConfig, pb *promptBuilder, pos Position) error {
	defer func() {
		o.mu.Lock()
		if o.activeRun == runID {
			o.state.Debating = false
			o.state.Judging = false
			o.state.Streaming = nil
		}
		o.mu.Unlock()
	}()

	o.mu.Lock()
	history := append([]Turn(nil), o.state.Transcript...)
	o.mu.Unlock()

	for {
		if !o.isActive(runID) {
			return nil
		}

		switch pos.Stage {
		case StageComplete:
			o.announce(runID, "Complete")
			o.log.Info("debate complete", zap.Int64("run", runID), zap.Int("turns", len(history)))
			return nil

		case StageJudging:
			o.announce(runID, "Judging")
			if err := o.runJudge(ctx, runID, rc, pb, history); err != nil {
				o.fail(runID, err)
				return err
			}
			if !o.isActive(runID) {
				return nil
			}
			pos = pos.Next(rc.rounds)

		default:
			o.announce(runID, pos.Label(rc.rounds))
			turn, err := o.runTurn(ctx, runID, o.turnSpec(rc, pb, pos, history))
			if err != nil {
				o.fail(runID, err)
				return err
			}
			if turn == nil {
				// Cancelled or superseded: return without touching state.
				return nil
			}
			history = append(history, *turn)
			pos = pos.Next(rc.rounds)
		}
	}
}

// turnSpec assembles the model call for the debater turn at pos.
func (o *Orchestrator) turnSpec(rc runConfig, pb *promptBuilder, pos Position, history []Turn) turnSpec {
	var extras turnExtras
	switch pos.Stage {
	case StageRound:
		extras.roundNumber = pos.Round
		extras.opponentArgument = lastArgument(history, pos.Side.Opponent())
	case StageRapidFire:
		extras.question = RapidFireQuestions[pos.Question]
	}

	ts := turnSpec{
		side:  pos.Side,
		phase: pos.phase(),
	}
	if pos.Stage == StageRound {
		ts.round = pos.Round
	}
	if pos.Side == SidePro {
		ts.model = rc.cfg.ProModel
		ts.thinking = rc.cfg.ProThinking
	} else {
		ts.model = rc.cfg.ConModel
		ts.thinking = rc.cfg.ConThinking
	}
	ts.system, ts.user = pb.debaterPrompts(pos.Side, ts.phase, history, extras)
	return ts
}

// runJudge issues the single streaming judge call over the accumulated
// transcript, publishing verdict text as it streams in.
func (o *Orchestrator) runJudge(ctx context.Context, runID int64, rc runConfig, pb *promptBuilder, history []Turn) error {
	o.mu.Lock()
	if o.activeRun != runID {
		o.mu.Unlock()
		return nil
	}
	o.state.Judging = true
	o.state.Verdict = ""
	o.mu.Unlock()

	system, user := pb.judgePrompts(history)
	result, err := o.llm.StreamChatCompletion(ctx, rc.cfg.JudgeModel, messagePair(system, user),
		openrouter.StreamOptions{Reasoning: rc.cfg.JudgeThinking},
		func(content, _ string) {
			o.mu.Lock()
			if o.activeRun != runID {
				o.mu.Unlock()
				return
			}
			o.state.Verdict = content
			o.mu.Unlock()
			if o.OnVerdict != nil {
				o.OnVerdict(content)
			}
		})
	if err != nil {
		if isCancellation(err) {
			return nil
		}
		return err
	}

	o.mu.Lock()
	if o.activeRun != runID {
		o.mu.Unlock()
		return nil
	}
	o.state.Verdict = result.Content
	o.state.Judging = false
	o.mu.Unlock()

	o.log.Info("verdict delivered", zap.Int64("run", runID), zap.Int("length", len(result.Content)))
	if o.OnVerdict != nil {
		o.OnVerdict(result.Content)
	}
	return nil
}

// announce publishes a phase label change.
func (o *Orchestrator) announce(runID int64, label string) {
	o.mu.Lock()
	if o.activeRun != runID || o.state.PhaseLabel == label {
		o.mu.Unlock()
		return
	}
	o.state.PhaseLabel = label
	o.mu.Unlock()

	o.log.Debug("phase", zap.Int64("run", runID), zap.String("label", label))
	if o.OnPhase != nil {
		o.OnPhase(label)
	}
}

// fail records a terminal transport error. Accumulated transcript and
// verdict state are left intact for inspection.
func (o *Orchestrator) fail(runID int64, err error) {
	o.mu.Lock()
	if o.activeRun == runID {
		o.state.Err = err.Error()
		o.state.Debating = false
		o.state.Judging = false
		o.state.Streaming = nil
	}
	o.mu.Unlock()
	o.log.Error("debate failed", zap.Int64("run", runID), zap.Error(err))
}
