package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only
}

// LLMRequestEventData captures one call to a text-generation provider.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// Session actions.
const (
	SessionActionStart = "start"
	SessionActionEnd   = "end"
	SessionActionQuit  = "quit"
)

// SessionEventData marks the start or end of a quiz session.
type SessionEventData struct {
	SessionID       string
	Action          string
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	DurationSecs    int
}

// AnswerEventData records one submitted answer.
type AnswerEventData struct {
	SessionID     string
	QuestionIndex int
	QuestionText  string
	System        string // equations, one per line
	Source        string // llm, local or fallback
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int64
}

// AnswerEvent is a stored AnswerEventData.
type AnswerEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// SessionSummary folds the events of one session into a single row.
type SessionSummary struct {
	SessionID       string
	StartedAt       time.Time
	Completed       bool
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	DurationSecs    int
}

// PurposeUsage aggregates LLM calls per purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM token usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo is the append-only event log.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns nil when no event has the given ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// RecentSessions returns up to limit sessions, most recent first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// SessionAnswers returns the answers of one session in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEvent, error)
}
