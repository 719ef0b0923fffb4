package debate

import (
	"regexp"
	"strings"
)

// winnerRe matches the verdict's declaration line, tolerating markdown
// emphasis and bracketed placeholders the judge sometimes echoes.
var winnerRe = regexp.MustCompile(`(?i)THE WINNER IS:?\s*[\*\[\s]*(PRO|CON)\b`)

// ParseWinner extracts the declared winner from the judge's verdict text.
// The default judge templates end with a "THE WINNER IS: PRO|CON" line;
// user styles may not, in which case ok is false.
func ParseWinner(verdict string) (Side, bool) {
	m := winnerRe.FindStringSubmatch(verdict)
	if m == nil {
		return "", false
	}
	if strings.EqualFold(m[1], "PRO") {
		return SidePro, true
	}
	return SideCon, true
}
