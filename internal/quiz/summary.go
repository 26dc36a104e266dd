package quiz

// Summary holds the numbers shown on the end screen.
type Summary struct {
	Score    int
	MaxScore int
	Correct  int
	Answered int
	Total    int
	Accuracy float64
}

// BuildSummary folds a state into a Summary.
func BuildSummary(s State) Summary {
	sum := Summary{
		Score:    s.Score,
		MaxScore: s.MaxScore(),
		Correct:  s.CorrectAnswers,
		Answered: s.Answered(),
		Total:    s.Total(),
	}
	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answered)
	}
	return sum
}

// Rating is a one-line verdict for a finished session.
func (s Summary) Rating() string {
	switch {
	case s.Answered == 0:
		return "Paddle out and catch a wave!"
	case s.Accuracy == 1:
		return "Perfect set. You owned the lineup!"
	case s.Accuracy >= 0.8:
		return "Barrelled! Great session."
	case s.Accuracy >= 0.5:
		return "Solid rides. Keep paddling."
	}
	return "Wipeouts happen. Paddle back out and try again."
}
