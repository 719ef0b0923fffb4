package debate

// ResumePoint computes where a stopped run continues, given the transcript
// as it stands (possibly ending in a partial turn) and the run's total
// round count.
//
// A trailing partial turn means that exact turn is redone from scratch; a
// finalized trailing turn resumes at its successor. The rapid-fire index is
// derived from the flat count of finalized rapid-fire turns: floor(count/2)
// for the in-progress question, floor((count-1)/2) when stepping past a
// finalized con answer. An empty transcript resumes at opening/pro.
func ResumePoint(transcript []Turn, rounds int) Position {
	if len(transcript) == 0 {
		return StartPosition()
	}

	last := transcript[len(transcript)-1]
	finalized := transcript
	if last.Partial {
		finalized = transcript[:len(transcript)-1]
	}
	rfFinalized := 0
	for _, t := range finalized {
		if t.Phase == PhaseRapidFire {
			rfFinalized++
		}
	}

	if last.Partial {
		switch last.Phase {
		case PhaseOpening:
			return Position{Stage: StageOpening, Side: last.Side}
		case PhaseRound:
			round := last.Round
			if round < 1 {
				round = 1
			}
			return Position{Stage: StageRound, Side: last.Side, Round: round}
		case PhaseRapidFire:
			return Position{Stage: StageRapidFire, Side: last.Side, Question: rfFinalized / 2}
		default:
			return Position{Stage: StageClosing, Side: last.Side}
		}
	}

	switch last.Phase {
	case PhaseOpening:
		if last.Side == SidePro {
			return Position{Stage: StageOpening, Side: SideCon}
		}
		return Position{Stage: StageRound, Side: SidePro, Round: 1}
	case PhaseRound:
		if last.Side == SidePro {
			return Position{Stage: StageRound, Side: SideCon, Round: last.Round}
		}
		if last.Round < rounds {
			return Position{Stage: StageRound, Side: SidePro, Round: last.Round + 1}
		}
		return Position{Stage: StageRapidFire, Side: SidePro}
	case PhaseRapidFire:
		if last.Side == SidePro {
			return Position{Stage: StageRapidFire, Side: SideCon, Question: rfFinalized / 2}
		}
		index := (rfFinalized - 1) / 2
		if index < rapidFireCount-1 {
			return Position{Stage: StageRapidFire, Side: SidePro, Question: index + 1}
		}
		return Position{Stage: StageClosing, Side: SidePro}
	default: // closing
		if last.Side == SidePro {
			return Position{Stage: StageClosing, Side: SideCon}
		}
		return Position{Stage: StageJudging}
	}
}
