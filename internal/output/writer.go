package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"debatearena/internal/debate"
)

const maxSlugLength = 50

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug converts a topic into a filesystem-friendly slug, capped at
// 50 characters.
func GenerateSlug(topic string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(topic), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}

// CreateOutputDir creates and returns base/<slug>-<timestamp>.
func CreateOutputDir(base, slug string) (string, error) {
	dir := filepath.Join(base, fmt.Sprintf("%s-%s", slug, time.Now().Format("20060102-150405")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output: creating %s: %w", dir, err)
	}
	return dir, nil
}

// Export is the serialized record of one finished (or stopped) debate.
type Export struct {
	Topic      string        `json:"topic"`
	Preset     string        `json:"preset"`
	Rounds     int           `json:"rounds"`
	ProModel   string        `json:"proModel"`
	ConModel   string        `json:"conModel"`
	JudgeModel string        `json:"judgeModel"`
	Turns      []debate.Turn `json:"turns"`
	Verdict    string        `json:"verdict,omitempty"`
	Winner     string        `json:"winner,omitempty"`
}

// Writer persists debate artifacts into a single output directory.
type Writer struct {
	dir     string
	entries []string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Log appends a timestamped line to debate.log immediately so the log
// survives a crash mid-run.
func (w *Writer) Log(msg string) {
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format(time.RFC3339), msg)
	w.entries = append(w.entries, line)

	f, err := os.OpenFile(filepath.Join(w.dir, "debate.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	f.WriteString(line)
}

// WriteLog rewrites debate.log from the accumulated entries.
func (w *Writer) WriteLog() error {
	return os.WriteFile(filepath.Join(w.dir, "debate.log"), []byte(strings.Join(w.entries, "")), 0o644)
}

// WriteJSON writes the machine-readable transcript to transcript.json.
func (w *Writer) WriteJSON(e *Export) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("output: marshaling transcript: %w", err)
	}
	return os.WriteFile(filepath.Join(w.dir, "transcript.json"), data, 0o644)
}

// WriteMarkdown writes the human-readable report to report.md.
func (w *Writer) WriteMarkdown(e *Export) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Debate: %s\n\n", e.Topic)
	fmt.Fprintf(&b, "- Preset: %s (%d rounds)\n", e.Preset, e.Rounds)
	fmt.Fprintf(&b, "- PRO: %s\n", e.ProModel)
	fmt.Fprintf(&b, "- CON: %s\n", e.ConModel)
	fmt.Fprintf(&b, "- Judge: %s\n\n", e.JudgeModel)

	lastPhase := ""
	for _, turn := range e.Turns {
		if label := phaseHeading(turn); label != lastPhase {
			fmt.Fprintf(&b, "## %s\n\n", label)
			lastPhase = label
		}
		header := turn.Side.Label()
		if turn.Partial {
			header += " (interrupted)"
		}
		fmt.Fprintf(&b, "### %s — %s\n\n%s\n\n", header, turn.Model, turn.Content)
	}

	if e.Verdict != "" {
		fmt.Fprintf(&b, "## Verdict\n\n%s\n", e.Verdict)
		if e.Winner != "" {
			fmt.Fprintf(&b, "\n**Winner: %s**\n", strings.ToUpper(e.Winner))
		}
	}

	return os.WriteFile(filepath.Join(w.dir, "report.md"), []byte(b.String()), 0o644)
}

func phaseHeading(turn debate.Turn) string {
	switch turn.Phase {
	case debate.PhaseOpening:
		return "Opening Statements"
	case debate.PhaseRound:
		return fmt.Sprintf("Round %d", turn.Round)
	case debate.PhaseRapidFire:
		return "Rapid Fire"
	default:
		return "Closing Statements"
	}
}
