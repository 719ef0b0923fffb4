package debate

import "fmt"

// Stage is the orchestrator's coarse place in the debate sequence.
type Stage int

const (
	StageOpening Stage = iota
	StageRound
	StageRapidFire
	StageClosing
	StageJudging
	StageComplete
)

// rapidFireCount is how many rapid-fire questions every debate asks.
const rapidFireCount = 3

// Position is the exact place in the phase sequence: stage plus side, with
// Round carrying the 1-based round number during StageRound and Question
// the 0-based question index during StageRapidFire.
type Position struct {
	Stage    Stage
	Side     Side
	Round    int
	Question int
}

// StartPosition is the first position of a fresh debate.
func StartPosition() Position {
	return Position{Stage: StageOpening, Side: SidePro}
}

// Next returns the successor position given the run's total round count.
// It is total: Judging advances to Complete and Complete is terminal.
func (p Position) Next(rounds int) Position {
	switch p.Stage {
	case StageOpening:
		if p.Side == SidePro {
			return Position{Stage: StageOpening, Side: SideCon}
		}
		return Position{Stage: StageRound, Side: SidePro, Round: 1}
	case StageRound:
		if p.Side == SidePro {
			return Position{Stage: StageRound, Side: SideCon, Round: p.Round}
		}
		if p.Round < rounds {
			return Position{Stage: StageRound, Side: SidePro, Round: p.Round + 1}
		}
		return Position{Stage: StageRapidFire, Side: SidePro}
	case StageRapidFire:
		if p.Side == SidePro {
			return Position{Stage: StageRapidFire, Side: SideCon, Question: p.Question}
		}
		if p.Question < rapidFireCount-1 {
			return Position{Stage: StageRapidFire, Side: SidePro, Question: p.Question + 1}
		}
		return Position{Stage: StageClosing, Side: SidePro}
	case StageClosing:
		if p.Side == SidePro {
			return Position{Stage: StageClosing, Side: SideCon}
		}
		return Position{Stage: StageJudging}
	case StageJudging:
		return Position{Stage: StageComplete}
	default:
		return Position{Stage: StageComplete}
	}
}

// phase maps a debater position to the phase its turn is recorded under.
func (p Position) phase() PhaseKind {
	switch p.Stage {
	case StageOpening:
		return PhaseOpening
	case StageRound:
		return PhaseRound
	case StageRapidFire:
		return PhaseRapidFire
	default:
		return PhaseClosing
	}
}

// Label returns the human-readable phase indicator for the position.
func (p Position) Label(rounds int) string {
	switch p.Stage {
	case StageOpening:
		return "Opening Statements"
	case StageRound:
		return fmt.Sprintf("Round %d of %d", p.Round, rounds)
	case StageRapidFire:
		return "Rapid Fire"
	case StageClosing:
		return "Closing Statements"
	case StageJudging:
		return "Judging"
	default:
		return "Complete"
	}
}
