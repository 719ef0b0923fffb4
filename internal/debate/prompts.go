package debate

import (
	"strconv"

	"debatearena/internal/openrouter"
	"debatearena/internal/prompt"
	"debatearena/internal/style"
)

// StyleSelection names the style each role runs with.
type StyleSelection = style.Selection

// promptBuilder renders the role/phase prompt pair for each turn from the
// styles snapshotted at run start.
type promptBuilder struct {
	repo     *style.Repository
	topic    string
	proModel string
	conModel string
	styles   map[style.Role]style.Style
}

func newPromptBuilder(repo *style.Repository, topic, proModel, conModel string, sel StyleSelection) *promptBuilder {
	return &promptBuilder{
		repo:     repo,
		topic:    topic,
		proModel: proModel,
		conModel: conModel,
		styles: map[style.Role]style.Style{
			style.RolePro:   repo.Resolve(sel.Pro),
			style.RoleCon:   repo.Resolve(sel.Con),
			style.RoleJudge: repo.Resolve(sel.Judge),
		},
	}
}

func phaseSlot(phase PhaseKind) style.Slot {
	switch phase {
	case PhaseOpening:
		return style.SlotOpening
	case PhaseRound:
		return style.SlotRound
	case PhaseRapidFire:
		return style.SlotRapidFire
	default:
		return style.SlotClosing
	}
}

func roleFor(side Side) style.Role {
	if side == SidePro {
		return style.RolePro
	}
	return style.RoleCon
}

// turnExtras carries the per-turn template values that vary by position.
type turnExtras struct {
	roundNumber      int
	opponentArgument string
	question         string
}

func (b *promptBuilder) debaterValues(side Side, history string, extras turnExtras) map[string]string {
	stance := "FOR"
	opponent := b.conModel
	if side == SideCon {
		stance = "AGAINST"
		opponent = b.proModel
	}
	round := ""
	if extras.roundNumber > 0 {
		round = strconv.Itoa(extras.roundNumber)
	}
	return map[string]string{
		"topic":            b.topic,
		"opponentName":     opponent,
		"side":             side.Label(),
		"stance":           stance,
		"roundNumber":      round,
		"opponentArgument": extras.opponentArgument,
		"question":         extras.question,
		"debateHistory":    history,
	}
}

// debaterPrompts renders the (system, user) message pair for one debater
// turn. Missing style slots fall back to the default built-in style.
func (b *promptBuilder) debaterPrompts(side Side, phase PhaseKind, history []Turn, extras turnExtras) (string, string) {
	role := roleFor(side)
	values := b.debaterValues(side, FormatHistory(history), extras)
	system := prompt.Render(b.repo.ResolveTemplate(b.styles[role], role, style.SlotSystem), values)
	user := prompt.Render(b.repo.ResolveTemplate(b.styles[role], role, phaseSlot(phase)), values)
	return system, user
}

// judgePrompts renders the (system, evaluation) pair for the judge call.
func (b *promptBuilder) judgePrompts(history []Turn) (string, string) {
	values := map[string]string{
		"topic":         b.topic,
		"debateHistory": FormatHistory(history),
	}
	js := b.styles[style.RoleJudge]
	system := prompt.Render(b.repo.ResolveTemplate(js, style.RoleJudge, style.SlotSystem), values)
	user := prompt.Render(b.repo.ResolveTemplate(js, style.RoleJudge, style.SlotEvaluation), values)
	return system, user
}

// messagePair is the two-message exchange sent for every model call.
func messagePair(system, user string) []openrouter.Message {
	return []openrouter.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}
