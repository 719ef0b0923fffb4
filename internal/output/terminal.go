// Package output renders debate progress to the terminal and exports
// finished debates to disk.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"debatearena/internal/debate"
)

// Renderer writes styled debate output to a terminal. Stream and
// StreamVerdict print deltas as they arrive; Turn and Verdict finalize
// without repeating already-printed text.
type Renderer struct {
	out io.Writer

	pro     lipgloss.Style
	con     lipgloss.Style
	phase   lipgloss.Style
	verdict lipgloss.Style
	muted   lipgloss.Style
	errs    lipgloss.Style

	streamID        string // in-flight turn being streamed
	streamed        int    // bytes of its content already printed
	verdictStreamed int
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		out:     w,
		pro:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		con:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		phase:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		verdict: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		errs:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (r *Renderer) sideStyle(side debate.Side) lipgloss.Style {
	if side == debate.SidePro {
		return r.pro
	}
	return r.con
}

func turnHeader(turn debate.Turn) string {
	header := turn.Side.Label()
	if turn.Phase == debate.PhaseRound {
		header = fmt.Sprintf("%s (Round %d)", header, turn.Round)
	}
	return header
}

// Phase prints a phase transition banner.
func (r *Renderer) Phase(label string) {
	fmt.Fprintf(r.out, "\n%s\n\n", r.phase.Render("=== "+label+" ==="))
}

// Stream prints the not-yet-printed suffix of the in-flight turn. The first
// snapshot of a new turn prints its header. Content snapshots only ever
// grow, so the delta is content past the printed length.
func (r *Renderer) Stream(turn debate.Turn) {
	if turn.ID != r.streamID {
		r.streamID = turn.ID
		r.streamed = 0
		fmt.Fprintf(r.out, "%s %s\n",
			r.sideStyle(turn.Side).Render(turnHeader(turn)),
			r.muted.Render(turn.Model))
	}
	if len(turn.Content) > r.streamed {
		fmt.Fprint(r.out, turn.Content[r.streamed:])
		r.streamed = len(turn.Content)
	}
}

// Turn prints one finalized turn. A turn that was already streaming is
// flushed rather than reprinted.
func (r *Renderer) Turn(turn debate.Turn) {
	if turn.ID != "" && turn.ID == r.streamID {
		if len(turn.Content) > r.streamed {
			fmt.Fprint(r.out, turn.Content[r.streamed:])
		}
		if turn.Partial {
			fmt.Fprintf(r.out, " %s", r.muted.Render("[interrupted]"))
		}
		fmt.Fprint(r.out, "\n\n")
		r.streamID, r.streamed = "", 0
		return
	}

	header := turnHeader(turn)
	if turn.Partial {
		header += " " + r.muted.Render("[interrupted]")
	}
	fmt.Fprintf(r.out, "%s %s\n%s\n\n",
		r.sideStyle(turn.Side).Render(header),
		r.muted.Render(turn.Model),
		turn.Content)
}

// StreamVerdict prints verdict text as it arrives, with the banner ahead of
// the first delta. A shrinking snapshot means the judge restarted (a resumed
// run); the banner is printed again.
func (r *Renderer) StreamVerdict(content string) {
	if r.verdictStreamed == 0 || len(content) < r.verdictStreamed {
		fmt.Fprintf(r.out, "\n%s\n\n", r.verdict.Render("=== VERDICT ==="))
		r.verdictStreamed = 0
	}
	if len(content) > r.verdictStreamed {
		fmt.Fprint(r.out, content[r.verdictStreamed:])
		r.verdictStreamed = len(content)
	}
}

// Verdict prints the judge's verdict and, when parseable, the winner line.
// Verdict text already printed by StreamVerdict is not repeated.
func (r *Renderer) Verdict(verdict string) {
	if r.verdictStreamed > 0 {
		fmt.Fprint(r.out, "\n")
		r.verdictStreamed = 0
	} else {
		fmt.Fprintf(r.out, "%s\n\n%s\n", r.verdict.Render("=== VERDICT ==="), verdict)
	}
	if winner, ok := debate.ParseWinner(verdict); ok {
		fmt.Fprintf(r.out, "\n%s %s\n",
			r.verdict.Render("Winner:"),
			r.sideStyle(winner).Render(winner.Label()))
	}
}

// Stopped prints the stop notice, mentioning a captured partial turn.
func (r *Renderer) Stopped(hadPartial bool) {
	msg := "Debate stopped."
	if hadPartial {
		msg = "Debate stopped. Partial turn kept on the transcript."
	}
	fmt.Fprintf(r.out, "\n%s\n", r.muted.Render(msg))
}

// Error prints a run failure.
func (r *Renderer) Error(msg string) {
	fmt.Fprintf(r.out, "\n%s\n", r.errs.Render("Error: "+msg))
}

// Lineup prints the resolved model assignment before the debate starts.
func (r *Renderer) Lineup(topic, preset string, pro, con, judge string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic:  %s\n", topic)
	fmt.Fprintf(&b, "Preset: %s\n", preset)
	fmt.Fprintf(&b, "%s %s\n", r.pro.Render("PRO:"), pro)
	fmt.Fprintf(&b, "%s %s\n", r.con.Render("CON:"), con)
	fmt.Fprintf(&b, "%s %s\n", r.verdict.Render("JUDGE:"), judge)
	fmt.Fprint(r.out, b.String())
}
