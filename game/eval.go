package game

import "strconv"

type evaluationKind uint8

const (
	estimateKind evaluationKind = iota
	winningKind
	losingKind
)

// Evaluation is the verdict on a position from one side's perspective: a
// certain win, a certain loss, or a numeric estimate in between. The zero
// value is Estimate(0).
//
// Winning is greater than every estimate and Losing is less than every
// estimate. Two estimates compare by score; two wins (or two losses) are
// equal.
type Evaluation struct {
	kind  evaluationKind
	score float64
}

// Winning means the evaluating side has already won.
func Winning() Evaluation {
	return Evaluation{kind: winningKind}
}

// Losing means the opposing side has already won.
func Losing() Evaluation {
	return Evaluation{kind: losingKind}
}

// Estimate covers every undecided position. Positive scores favor the
// evaluating side.
func Estimate(score float64) Evaluation {
	return Evaluation{kind: estimateKind, score: score}
}

func (e Evaluation) IsWinning() bool {
	return e.kind == winningKind
}

func (e Evaluation) IsLosing() bool {
	return e.kind == losingKind
}

// Score returns the numeric payload of an estimate. ok is false for Winning
// and Losing.
func (e Evaluation) Score() (score float64, ok bool) {
	if e.kind != estimateKind {
		return 0, false
	}
	return e.score, true
}

// rank places the three shapes on a line: Losing < Estimate < Winning.
func (e Evaluation) rank() int {
	switch e.kind {
	case losingKind:
		return -1
	case winningKind:
		return 1
	default:
		return 0
	}
}

// Greater reports whether e is strictly better than other.
// A NaN estimate is never strictly greater or less than another estimate.
func (e Evaluation) Greater(other Evaluation) bool {
	if e.rank() != other.rank() {
		return e.rank() > other.rank()
	}
	return e.kind == estimateKind && e.score > other.score
}

// Less reports whether e is strictly worse than other.
func (e Evaluation) Less(other Evaluation) bool {
	return other.Greater(e)
}

// Equal reports whether both evaluations have the same shape and, for
// estimates, the same score. A NaN estimate equals nothing.
func (e Evaluation) Equal(other Evaluation) bool {
	if e.kind != other.kind {
		return false
	}
	return e.kind != estimateKind || e.score == other.score
}

// Compare returns -1, 0 or +1 following the evaluation order. Evaluations
// that are neither greater nor less, such as a NaN estimate against another
// estimate, compare as 0.
func (e Evaluation) Compare(other Evaluation) int {
	switch {
	case e.Greater(other):
		return 1
	case e.Less(other):
		return -1
	default:
		return 0
	}
}

func (e Evaluation) String() string {
	switch e.kind {
	case winningKind:
		return "Winning"
	case losingKind:
		return "Losing"
	default:
		return "Estimate(" + strconv.FormatFloat(e.score, 'g', -1, 64) + ")"
	}
}
