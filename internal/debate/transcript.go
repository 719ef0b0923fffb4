package debate

import (
	"fmt"
	"strings"
)

// historySeparator joins transcript blocks in the judge serialization.
const historySeparator = "\n\n---\n\n"

// FormatHistory serializes turns for prompt context and the judge's
// evaluation. Each turn renders as "[SIDE - label]\ncontent" where label is
// "Round <n>" for round turns and the phase name otherwise. The exact shape
// is part of the judge prompt contract.
func FormatHistory(turns []Turn) string {
	blocks := make([]string, 0, len(turns))
	for _, t := range turns {
		label := string(t.Phase)
		if t.Phase == PhaseRound {
			label = fmt.Sprintf("Round %d", t.Round)
		}
		blocks = append(blocks, fmt.Sprintf("[%s - %s]\n%s", t.Side.Label(), label, t.Content))
	}
	return strings.Join(blocks, historySeparator)
}

// lastArgument returns the content of side's most recent turn, or "".
func lastArgument(turns []Turn, side Side) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Side == side {
			return turns[i].Content
		}
	}
	return ""
}
