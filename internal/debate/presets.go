package debate

import "fmt"

// Preset is a named debate length.
type Preset struct {
	Name        string
	Description string
	Rounds      int
}

// Presets maps preset keys to round counts. "custom" is handled separately
// through Config.CustomRounds.
var Presets = map[string]Preset{
	"quick":    {Name: "Quick", Description: "2 rounds", Rounds: 2},
	"standard": {Name: "Standard", Description: "4 rounds", Rounds: 4},
	"extended": {Name: "Extended", Description: "6 rounds", Rounds: 6},
}

const (
	minCustomRounds = 1
	maxCustomRounds = 10
)

// RapidFireQuestions is the canonical ordered question bank. Every debate
// asks the first rapidFireCount of them.
var RapidFireQuestions = []string{
	"What's the single most devastating fact supporting your position?",
	"Why is your opponent's core premise fundamentally flawed?",
	"What irreversible harm comes from adopting your opponent's view?",
	"In one sentence, why is your position obviously correct?",
	"What has your opponent failed to address that proves they've lost?",
}

// Config is everything a run needs, supplied by the caller at start.
type Config struct {
	APIKey string
	Topic  string

	ProModel   string
	ConModel   string
	JudgeModel string

	ProThinking   bool
	ConThinking   bool
	JudgeThinking bool

	// Preset names a debate length; "custom" uses CustomRounds (1-10).
	Preset       string
	CustomRounds int

	// Styles may name a style per role; blanks fall back to the
	// repository's persisted defaults.
	Styles StyleSelection
}

// roundCount resolves the number of rounds from the preset or custom value.
func (c Config) roundCount() (int, error) {
	if c.Preset == "custom" {
		if c.CustomRounds < minCustomRounds || c.CustomRounds > maxCustomRounds {
			return 0, &ValidationError{Message: fmt.Sprintf(
				"custom round count must be between %d and %d, got %d",
				minCustomRounds, maxCustomRounds, c.CustomRounds)}
		}
		return c.CustomRounds, nil
	}
	p, ok := Presets[c.Preset]
	if !ok {
		return 0, &ValidationError{Message: fmt.Sprintf("unknown debate preset %q", c.Preset)}
	}
	return p.Rounds, nil
}
