package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"debatearena/internal/debate"
	"debatearena/internal/openrouter"
	"debatearena/internal/output"
	"debatearena/internal/style"
)

// sseChunk writes one streaming delta in the OpenRouter wire format.
func sseChunk(w http.ResponseWriter, content string) {
	payload := map[string]any{
		"choices": []map[string]any{
			{"delta": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(payload)
	fmt.Fprintf(w, "data: %s\n\n", data)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func TestE2EFullDebateWithMockServer(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)

		var req openrouter.ChatRequest
		json.NewDecoder(r.Body).Decode(&req)

		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key-123" {
			t.Errorf("bad auth header: %s", auth)
		}
		if !req.Stream {
			t.Error("expected a streaming request")
		}

		userPrompt := ""
		for _, m := range req.Messages {
			if m.Role == "user" {
				userPrompt = m.Content
			}
		}

		var content string
		switch {
		case req.Model == "free/judge":
			content = "Both debaters showed up, but only one landed punches.\n\n**THE WINNER IS: CON**"
		case strings.Contains(userPrompt, "RAPID FIRE"):
			content = "One sentence, no hedging: my side wins on the evidence."
		default:
			content = "Space exploration drives innovation and ensures humanity's long-term survival."
		}

		w.Header().Set("Content-Type", "text/event-stream")
		// Stream in two cumulative-building deltas, then the terminator.
		half := len(content) / 2
		sseChunk(w, content[:half])
		sseChunk(w, content[half:])
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := openrouter.NewClientWithBaseURL("test-key-123", server.URL)
	repo := style.NewRepository(style.NewFileStore(t.TempDir()))
	orch := debate.NewOrchestrator(client, repo, nil)

	topic := "Should we invest more in space exploration?"

	// Create the export writer up front so the run log accumulates as the
	// debate progresses, the way the CLI wires it.
	dir, err := output.CreateOutputDir(t.TempDir(), output.GenerateSlug(topic))
	if err != nil {
		t.Fatalf("CreateOutputDir: %v", err)
	}
	writer := output.NewWriter(dir)

	var phases []string
	var turns []debate.Turn
	orch.OnPhase = func(label string) {
		phases = append(phases, label)
		writer.Log("phase: " + label)
	}
	orch.OnTurn = func(turn debate.Turn) {
		turns = append(turns, turn)
		writer.Log(fmt.Sprintf("[%s] %s (%s): %s", turn.Phase, turn.Side.Label(), turn.Model, turn.Content))
	}

	cfg := debate.Config{
		APIKey:     "test-key-123",
		Topic:      topic,
		ProModel:   "free/pro",
		ConModel:   "free/con",
		JudgeModel: "free/judge",
		Preset:     "quick",
	}
	if err := orch.Start(context.Background(), cfg); err != nil {
		t.Fatalf("debate failed: %v", err)
	}

	state := orch.Snapshot()
	if len(state.Transcript) != 14 {
		t.Fatalf("expected 14 turns, got %d", len(state.Transcript))
	}
	if state.Verdict == "" {
		t.Fatal("no verdict recorded")
	}
	if len(phases) == 0 || phases[len(phases)-1] != "Complete" {
		t.Errorf("unexpected phase sequence: %v", phases)
	}
	if len(turns) != 14 {
		t.Errorf("OnTurn fired %d times, want 14", len(turns))
	}

	winner, ok := debate.ParseWinner(state.Verdict)
	if !ok || winner != debate.SideCon {
		t.Errorf("ParseWinner = %v/%v, want con/true", winner, ok)
	}

	// Export the finished debate the way the CLI does.
	if err := writer.WriteLog(); err != nil {
		t.Fatalf("WriteLog: %v", err)
	}
	export := &output.Export{
		Topic:      topic,
		Preset:     "quick",
		Rounds:     2,
		ProModel:   cfg.ProModel,
		ConModel:   cfg.ConModel,
		JudgeModel: cfg.JudgeModel,
		Turns:      state.Transcript,
		Verdict:    state.Verdict,
		Winner:     string(winner),
	}
	if err := writer.WriteJSON(export); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if err := writer.WriteMarkdown(export); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}

	for _, name := range []string{"transcript.json", "report.md", "debate.log"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	logData, _ := os.ReadFile(filepath.Join(dir, "debate.log"))
	logText := string(logData)
	if !strings.Contains(logText, "phase: Opening Statements") {
		t.Error("debate.log missing phase entries")
	}
	if got := strings.Count(logText, "PRO"); got < 7 {
		t.Errorf("debate.log has %d PRO turn entries, want >= 7", got)
	}

	jsonData, _ := os.ReadFile(filepath.Join(dir, "transcript.json"))
	var parsed output.Export
	if err := json.Unmarshal(jsonData, &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if parsed.Topic != topic {
		t.Errorf("wrong topic in JSON: %s", parsed.Topic)
	}
	if parsed.Winner != "con" {
		t.Errorf("wrong winner in JSON: %s", parsed.Winner)
	}

	mdData, _ := os.ReadFile(filepath.Join(dir, "report.md"))
	md := string(mdData)
	if !strings.Contains(md, "space exploration") {
		t.Error("markdown missing topic content")
	}
	if !strings.Contains(md, "**Winner: CON**") {
		t.Error("markdown missing winner line")
	}

	// 14 debater calls + 1 judge call.
	if got := requestCount.Load(); got != 15 {
		t.Errorf("expected 15 API calls, got %d", got)
	}

	t.Logf("E2E complete: %d turns, %d API calls", len(state.Transcript), requestCount.Load())
}

func TestE2EStopMidDebate(t *testing.T) {
	release := make(chan struct{})
	var first atomic.Bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		sseChunk(w, "An argument under construction")
		if first.CompareAndSwap(false, true) {
			<-release
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()
	defer close(release)

	client := openrouter.NewClientWithBaseURL("test-key", server.URL)
	repo := style.NewRepository(style.NewFileStore(t.TempDir()))
	orch := debate.NewOrchestrator(client, repo, nil)

	streamed := make(chan struct{})
	var once sync.Once
	orch.OnStream = func(turn debate.Turn) {
		if turn.Content != "" {
			once.Do(func() { close(streamed) })
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- orch.Start(context.Background(), debate.Config{
			APIKey:     "test-key",
			Topic:      "X",
			ProModel:   "free/pro",
			ConModel:   "free/con",
			JudgeModel: "free/judge",
			Preset:     "quick",
		})
	}()

	// Wait for the first chunk to arrive client-side, then stop.
	<-streamed
	orch.Stop()
	if err := <-done; err != nil {
		t.Fatalf("stop must not surface an error: %v", err)
	}

	state := orch.Snapshot()
	if !state.Stopped {
		t.Error("state not marked stopped")
	}
	if len(state.Transcript) != 1 || !state.Transcript[0].Partial {
		t.Fatalf("expected one partial turn, got %+v", state.Transcript)
	}
	if state.Transcript[0].Content != "An argument under construction" {
		t.Errorf("partial content lost: %q", state.Transcript[0].Content)
	}
}
