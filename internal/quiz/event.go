package quiz

import (
	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/problemgen"
)

// Event is an input to State.Apply.
type Event interface {
	isEvent()
}

// StartGame begins a new session, abandoning any session in progress.
type StartGame struct{}

// QuestionReady delivers the question asked for by the request with Token.
type QuestionReady struct {
	Token    uint64
	Question *problemgen.Question
}

// QuestionFailed reports that no question could be produced.
type QuestionFailed struct {
	Token uint64
	Err   error
}

// SubmitAnswer checks the learner's answer against the live question.
type SubmitAnswer struct {
	Answer linsys.Answer
}

// ExplanationReady delivers the worked solution for a wrong answer.
type ExplanationReady struct {
	Token uint64
	Text  string
}

// NextQuestion leaves the feedback phase.
type NextQuestion struct{}

func (StartGame) isEvent()        {}
func (QuestionReady) isEvent()    {}
func (QuestionFailed) isEvent()   {}
func (SubmitAnswer) isEvent()     {}
func (ExplanationReady) isEvent() {}
func (NextQuestion) isEvent()     {}
