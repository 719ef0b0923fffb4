package debate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debatearena/internal/openrouter"
	"debatearena/internal/style"
)

// llmCall records one transport invocation.
type llmCall struct {
	n        int
	model    string
	messages []openrouter.Message
	opts     openrouter.StreamOptions
}

func (c llmCall) userPrompt() string {
	for _, m := range c.messages {
		if m.Role == "user" {
			return m.Content
		}
	}
	return ""
}

// fakeLLM is a scripted streaming transport. Without a script it emits two
// chunks and completes with deterministic content per call.
type fakeLLM struct {
	mu     sync.Mutex
	calls  []llmCall
	script func(call llmCall, ctx context.Context, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error)
}

func (f *fakeLLM) StreamChatCompletion(ctx context.Context, model string, messages []openrouter.Message, opts openrouter.StreamOptions, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error) {
	f.mu.Lock()
	call := llmCall{n: len(f.calls), model: model, messages: messages, opts: opts}
	f.calls = append(f.calls, call)
	script := f.script
	f.mu.Unlock()

	if script != nil {
		return script(call, ctx, onChunk)
	}
	content := fmt.Sprintf("argument %d", call.n)
	if onChunk != nil {
		onChunk(content[:4], "")
		onChunk(content, "")
	}
	return &openrouter.Completion{Content: content}, nil
}

func (f *fakeLLM) callList() []llmCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llmCall(nil), f.calls...)
}

func (f *fakeLLM) setScript(s func(llmCall, context.Context, openrouter.ChunkFunc) (*openrouter.Completion, error)) {
	f.mu.Lock()
	f.script = s
	f.mu.Unlock()
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *fakeLLM) {
	t.Helper()
	llm := &fakeLLM{}
	repo := style.NewRepository(style.NewFileStore(t.TempDir()))
	return NewOrchestrator(llm, repo, nil), llm
}

func quickConfig() Config {
	return Config{
		APIKey:     "test-key",
		Topic:      "X",
		ProModel:   "pro-model",
		ConModel:   "con-model",
		JudgeModel: "judge-model",
		Preset:     "quick",
	}
}

func TestStartRequiresCredentialAndTopic(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	cfg := quickConfig()
	cfg.Topic = ""
	err := o.Start(context.Background(), cfg)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, llm.callList(), "no network call may be attempted")
	assert.NotEmpty(t, o.Snapshot().Err)
	assert.False(t, o.Snapshot().Debating)
}

// Quick preset: 2+4+6+2 = 14 debater turns, one judge call, and the full
// phase label progression.
func TestStartQuickEndToEnd(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	var phases []string
	var turns []Turn
	var verdicts []string
	o.OnPhase = func(label string) { phases = append(phases, label) }
	o.OnTurn = func(turn Turn) { turns = append(turns, turn) }
	o.OnVerdict = func(v string) { verdicts = append(verdicts, v) }

	require.NoError(t, o.Start(context.Background(), quickConfig()))

	state := o.Snapshot()
	require.Len(t, state.Transcript, 14)
	assert.Nil(t, state.Streaming)
	assert.False(t, state.Debating)
	assert.False(t, state.Judging)
	assert.Empty(t, state.Err)
	assert.Equal(t, "Complete", state.PhaseLabel)
	assert.Equal(t, "argument 14", state.Verdict)
	assert.NotEmpty(t, verdicts)
	assert.Equal(t, state.Verdict, verdicts[len(verdicts)-1])

	assert.Equal(t, []string{
		"Opening Statements",
		"Round 1 of 2",
		"Round 2 of 2",
		"Rapid Fire",
		"Closing Statements",
		"Judging",
		"Complete",
	}, phases)

	wantSeq := []struct {
		side  Side
		phase PhaseKind
		round int
	}{
		{SidePro, PhaseOpening, 0}, {SideCon, PhaseOpening, 0},
		{SidePro, PhaseRound, 1}, {SideCon, PhaseRound, 1},
		{SidePro, PhaseRound, 2}, {SideCon, PhaseRound, 2},
		{SidePro, PhaseRapidFire, 0}, {SideCon, PhaseRapidFire, 0},
		{SidePro, PhaseRapidFire, 0}, {SideCon, PhaseRapidFire, 0},
		{SidePro, PhaseRapidFire, 0}, {SideCon, PhaseRapidFire, 0},
		{SidePro, PhaseClosing, 0}, {SideCon, PhaseClosing, 0},
	}
	require.Len(t, turns, 14)
	seenIDs := map[string]bool{}
	for i, want := range wantSeq {
		got := state.Transcript[i]
		assert.Equal(t, want.side, got.Side, "turn %d", i)
		assert.Equal(t, want.phase, got.Phase, "turn %d", i)
		assert.Equal(t, want.round, got.Round, "turn %d", i)
		assert.False(t, got.Partial, "turn %d", i)
		assert.False(t, seenIDs[got.ID], "turn id %q reused", got.ID)
		seenIDs[got.ID] = true
		if want.side == SidePro {
			assert.Equal(t, "pro-model", got.Model)
		} else {
			assert.Equal(t, "con-model", got.Model)
		}
	}

	calls := llm.callList()
	require.Len(t, calls, 15)
	assert.Equal(t, "judge-model", calls[14].model)
}

func TestStandardPresetRoundCount(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	cfg := quickConfig()
	cfg.Preset = "standard"
	require.NoError(t, o.Start(context.Background(), cfg))

	state := o.Snapshot()
	require.Len(t, state.Transcript, 18)

	var proRounds, conRounds int
	for _, turn := range state.Transcript {
		if turn.Phase == PhaseRound {
			if turn.Side == SidePro {
				proRounds++
			} else {
				conRounds++
			}
		}
	}
	assert.Equal(t, 4, proRounds)
	assert.Equal(t, 4, conRounds)

	// Rounds all precede rapid-fire.
	firstRapid := -1
	lastRound := -1
	for i, turn := range state.Transcript {
		if turn.Phase == PhaseRapidFire && firstRapid == -1 {
			firstRapid = i
		}
		if turn.Phase == PhaseRound {
			lastRound = i
		}
	}
	assert.Less(t, lastRound, firstRapid)
}

func TestRapidFireAsksThreeFixedQuestions(t *testing.T) {
	o, llm := newTestOrchestrator(t)
	require.NoError(t, o.Start(context.Background(), quickConfig()))

	var rapidCalls []llmCall
	for _, c := range llm.callList() {
		if strings.Contains(c.userPrompt(), "RAPID FIRE") {
			rapidCalls = append(rapidCalls, c)
		}
	}
	require.Len(t, rapidCalls, 6)

	for i, c := range rapidCalls {
		question := RapidFireQuestions[i/2]
		assert.Contains(t, c.userPrompt(), question, "rapid-fire call %d", i)
		wantModel := "pro-model"
		if i%2 == 1 {
			wantModel = "con-model"
		}
		assert.Equal(t, wantModel, c.model, "rapid-fire call %d", i)
	}
}

func TestRoundPromptQuotesOpponentLatestArgument(t *testing.T) {
	o, llm := newTestOrchestrator(t)
	require.NoError(t, o.Start(context.Background(), quickConfig()))

	calls := llm.callList()
	// Call order: 0 pro opening, 1 con opening, 2 pro r1, 3 con r1, ...
	assert.Contains(t, calls[2].userPrompt(), "argument 1", "pro round 1 quotes con opening")
	assert.Contains(t, calls[3].userPrompt(), "argument 2", "con round 1 quotes pro round 1")
	assert.Contains(t, calls[4].userPrompt(), "argument 3", "pro round 2 quotes con round 1")
}

func TestJudgePromptSerializesFullTranscript(t *testing.T) {
	o, llm := newTestOrchestrator(t)
	require.NoError(t, o.Start(context.Background(), quickConfig()))

	calls := llm.callList()
	judge := calls[len(calls)-1]
	prompt := judge.userPrompt()
	assert.Contains(t, prompt, `Topic: "X"`)
	assert.Contains(t, prompt, "[PRO - opening]\nargument 0")
	assert.Contains(t, prompt, "[CON - Round 2]\nargument 5")
	assert.Contains(t, prompt, "[CON - closing]\nargument 13")
}

func TestThinkingFlagsPerRole(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	cfg := quickConfig()
	cfg.ProThinking = true
	cfg.JudgeThinking = true
	require.NoError(t, o.Start(context.Background(), cfg))

	for _, c := range llm.callList() {
		switch c.model {
		case "pro-model", "judge-model":
			assert.True(t, c.opts.Reasoning, "call %d", c.n)
		default:
			assert.False(t, c.opts.Reasoning, "call %d", c.n)
		}
	}
}

// Streaming snapshots must be prefix-extensions of each other, and at most
// one turn may be in flight at any observation point.
func TestStreamingMonotonicAndSingleInFlight(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	byID := map[string][]string{}
	o.OnStream = func(turn Turn) {
		byID[turn.ID] = append(byID[turn.ID], turn.Content)

		state := o.Snapshot()
		inFlight := 0
		if state.Streaming != nil {
			inFlight = 1
		}
		for _, tr := range state.Transcript {
			assert.NotEqual(t, turn.ID, tr.ID, "in-flight turn already on transcript")
		}
		assert.LessOrEqual(t, inFlight, 1)
	}

	require.NoError(t, o.Start(context.Background(), quickConfig()))

	require.Len(t, byID, 14) // judging streams through OnVerdict, not OnStream
	for id, snapshots := range byID {
		for i := 1; i < len(snapshots); i++ {
			assert.True(t, strings.HasPrefix(snapshots[i], snapshots[i-1]),
				"content regressed for turn %s: %q -> %q", id, snapshots[i-1], snapshots[i])
		}
	}
}

func TestStopMidStreamKeepsPartialContent(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	streamed := make(chan struct{})
	llm.setScript(func(call llmCall, ctx context.Context, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error) {
		onChunk("Hel", "")
		onChunk("Hello", "")
		close(streamed)
		<-ctx.Done()
		// A lingering chunk from the aborted request must be discarded.
		onChunk("Hello, judges, today", "")
		return nil, ctx.Err()
	})

	done := make(chan error, 1)
	go func() { done <- o.Start(context.Background(), quickConfig()) }()

	<-streamed
	o.Stop()
	require.NoError(t, <-done)

	state := o.Snapshot()
	require.Len(t, state.Transcript, 1)
	last := state.Transcript[0]
	assert.Equal(t, "Hello", last.Content)
	assert.True(t, last.Partial)
	assert.Nil(t, state.Streaming)
	assert.True(t, state.Stopped)
	assert.False(t, state.Debating)
	assert.NotEmpty(t, last.ID)
}

func TestContinueAfterPartialRedoesInterruptedTurn(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	// Stop while con's round 2 turn (call index 5) is streaming.
	streaming := make(chan struct{})
	llm.setScript(func(call llmCall, ctx context.Context, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error) {
		if call.n == 5 {
			onChunk("partial con", "")
			close(streaming)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		content := fmt.Sprintf("argument %d", call.n)
		if onChunk != nil {
			onChunk(content, "")
		}
		return &openrouter.Completion{Content: content}, nil
	})

	done := make(chan error, 1)
	go func() { done <- o.Start(context.Background(), quickConfig()) }()
	<-streaming
	o.Stop()
	require.NoError(t, <-done)

	stopped := o.Snapshot()
	require.Len(t, stopped.Transcript, 6)
	assert.True(t, stopped.Transcript[5].Partial)

	llm.setScript(nil)
	require.NoError(t, o.Continue(context.Background()))

	state := o.Snapshot()
	assert.True(t, state.PhaseLabel == "Complete")
	require.Len(t, state.Transcript, 14)
	assert.NotEmpty(t, state.Verdict)

	// The partial turn was truncated and exactly one con round-2 turn exists;
	// pro's round 2 was not repeated.
	type key struct {
		side  Side
		phase PhaseKind
		round int
	}
	counts := map[key]int{}
	for _, turn := range state.Transcript {
		assert.False(t, turn.Partial)
		counts[key{turn.Side, turn.Phase, turn.Round}]++
	}
	assert.Equal(t, 1, counts[key{SideCon, PhaseRound, 2}])
	assert.Equal(t, 1, counts[key{SidePro, PhaseRound, 2}])

	// The redone call is con round 2, not round 3 and not a pro turn.
	calls := llm.callList()
	redo := calls[6]
	assert.Equal(t, "con-model", redo.model)
	assert.Contains(t, redo.userPrompt(), "Round 2")
}

func TestContinueAfterCleanStopResumesSuccessor(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	// Stop cleanly right after con's opening finalizes (call index 1).
	finalized := make(chan struct{})
	var once sync.Once
	o.OnTurn = func(turn Turn) {
		if turn.Side == SideCon && turn.Phase == PhaseOpening {
			once.Do(func() { close(finalized) })
		}
	}
	blocked := make(chan struct{})
	llm.setScript(func(call llmCall, ctx context.Context, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error) {
		if call.n >= 2 {
			close(blocked)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		content := fmt.Sprintf("argument %d", call.n)
		onChunk(content, "")
		return &openrouter.Completion{Content: content}, nil
	})

	done := make(chan error, 1)
	go func() { done <- o.Start(context.Background(), quickConfig()) }()
	<-finalized
	<-blocked
	o.Stop()
	require.NoError(t, <-done)

	stopped := o.Snapshot()
	// Call 2 had produced no content, so no partial entry was recorded...
	// unless the empty in-flight turn was captured; either way the two
	// openings are finalized.
	require.GreaterOrEqual(t, len(stopped.Transcript), 2)

	llm.setScript(nil)
	o.OnTurn = nil
	require.NoError(t, o.Continue(context.Background()))

	state := o.Snapshot()
	require.Len(t, state.Transcript, 14)
	assert.Equal(t, PhaseRound, state.Transcript[2].Phase)
	assert.Equal(t, SidePro, state.Transcript[2].Side)
	assert.Equal(t, 1, state.Transcript[2].Round)
}

func TestContinueWithoutStopFails(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	assert.ErrorIs(t, o.Continue(context.Background()), ErrNotResumable)

	require.NoError(t, o.Start(context.Background(), quickConfig()))
	assert.ErrorIs(t, o.Continue(context.Background()), ErrNotResumable)
}

func TestTransportErrorHaltsRunAndKeepsTranscript(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	boom := errors.New("upstream exploded")
	llm.setScript(func(call llmCall, ctx context.Context, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error) {
		if call.n == 3 {
			return nil, boom
		}
		content := fmt.Sprintf("argument %d", call.n)
		onChunk(content, "")
		return &openrouter.Completion{Content: content}, nil
	})

	err := o.Start(context.Background(), quickConfig())
	require.ErrorIs(t, err, boom)

	state := o.Snapshot()
	assert.Equal(t, "upstream exploded", state.Err)
	assert.Len(t, state.Transcript, 3)
	assert.Nil(t, state.Streaming)
	assert.False(t, state.Debating)

	// A failed run resumes from the same point.
	llm.setScript(nil)
	require.NoError(t, o.Continue(context.Background()))
	final := o.Snapshot()
	assert.Len(t, final.Transcript, 14)
	assert.Empty(t, final.Err)
	assert.Equal(t, "Complete", final.PhaseLabel)
}

// Starting a new run invalidates the previous one: only the new run's
// side effects are visible, even though the old transport call resolves
// later.
func TestRestartSupersedesActiveRun(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	firstStarted := make(chan struct{})
	var once sync.Once
	llm.setScript(func(call llmCall, ctx context.Context, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error) {
		if call.n == 0 {
			once.Do(func() { close(firstStarted) })
			<-ctx.Done()
			onChunk("stale content", "")
			return &openrouter.Completion{Content: "stale content"}, nil
		}
		content := fmt.Sprintf("argument %d", call.n)
		onChunk(content, "")
		return &openrouter.Completion{Content: content}, nil
	})

	done1 := make(chan error, 1)
	go func() { done1 <- o.Start(context.Background(), quickConfig()) }()
	<-firstStarted

	cfg2 := quickConfig()
	cfg2.Topic = "Y"
	require.NoError(t, o.Start(context.Background(), cfg2))
	require.NoError(t, <-done1)

	state := o.Snapshot()
	require.Len(t, state.Transcript, 14)
	for _, turn := range state.Transcript {
		assert.NotEqual(t, "stale content", turn.Content)
	}
	assert.Equal(t, "Complete", state.PhaseLabel)
}

func TestResetClearsEverything(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	require.NoError(t, o.Start(context.Background(), quickConfig()))

	o.Reset()
	state := o.Snapshot()
	assert.Empty(t, state.Transcript)
	assert.Empty(t, state.Verdict)
	assert.Empty(t, state.PhaseLabel)
	assert.Empty(t, state.Err)
	assert.False(t, state.Stopped)
	assert.Nil(t, state.Streaming)
	assert.ErrorIs(t, o.Continue(context.Background()), ErrNotResumable)
}

func TestStopDuringJudgingKeepsTranscriptAndAllowsResume(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	judging := make(chan struct{})
	llm.setScript(func(call llmCall, ctx context.Context, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error) {
		if call.model == "judge-model" {
			onChunk("The verdict so far", "")
			close(judging)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		content := fmt.Sprintf("argument %d", call.n)
		onChunk(content, "")
		return &openrouter.Completion{Content: content}, nil
	})

	done := make(chan error, 1)
	go func() { done <- o.Start(context.Background(), quickConfig()) }()
	<-judging
	o.Stop()
	require.NoError(t, <-done)

	state := o.Snapshot()
	assert.Len(t, state.Transcript, 14)
	assert.False(t, state.Judging)
	assert.True(t, state.Stopped)
	assert.Equal(t, "The verdict so far", state.Verdict, "streamed verdict is kept on stop")

	llm.setScript(nil)
	require.NoError(t, o.Continue(context.Background()))
	final := o.Snapshot()
	assert.Len(t, final.Transcript, 14)
	assert.Equal(t, "argument 15", final.Verdict)
	assert.Equal(t, "Complete", final.PhaseLabel)
}

func TestStopIsSafeWithoutActiveRun(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	assert.NotPanics(t, func() {
		o.Stop()
		o.Reset()
		o.Stop()
	})
}

func TestStartHonorsParentContextCancellation(t *testing.T) {
	o, llm := newTestOrchestrator(t)

	ctx, cancel := context.WithCancel(context.Background())
	llm.setScript(func(call llmCall, c context.Context, onChunk openrouter.ChunkFunc) (*openrouter.Completion, error) {
		if call.n == 1 {
			cancel()
			return nil, c.Err()
		}
		content := fmt.Sprintf("argument %d", call.n)
		onChunk(content, "")
		return &openrouter.Completion{Content: content}, nil
	})

	start := time.Now()
	require.NoError(t, o.Start(ctx, quickConfig()))
	assert.Less(t, time.Since(start), 5*time.Second)

	state := o.Snapshot()
	assert.Len(t, state.Transcript, 1)
	assert.Empty(t, state.Err, "cancellation is not a user-visible failure")
	assert.False(t, state.Debating)
}
