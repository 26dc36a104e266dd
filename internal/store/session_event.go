package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.insert(ctx, tableSessionEvents,
		[]string{colSessionID, "action", "questions_served", "correct_answers", "score", "duration_secs"},
		[]any{data.SessionID, data.Action, data.QuestionsServed, data.CorrectAnswers, data.Score, data.DurationSecs},
	)
}

var answerEventColumns = []string{
	colID, colSequence, colTimestamp,
	colSessionID, "question_index", "question_text", "system", "source",
	"correct_answer", "learner_answer", "correct", "time_ms",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, tableAnswerEvents, answerEventColumns[3:], []any{
		data.SessionID, data.QuestionIndex, data.QuestionText, data.System, data.Source,
		data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs,
	})
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	b := builder()
	query, args := b.Select(answerEventColumns...).
		From(b.Table(tableAnswerEvents)).
		Where(entsql.EQ(colSessionID, sessionID)).
		OrderBy(colSequence).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.QuestionIndex, &e.QuestionText, &e.System, &e.Source,
			&e.CorrectAnswer, &e.LearnerAnswer, &e.Correct, &e.TimeMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecentSessions reads the latest start events, then folds in the matching
// end or quit events. Sessions without one are reported as not completed.
func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	b := builder()
	sel := b.Select(colSessionID, colTimestamp).
		From(b.Table(tableSessionEvents)).
		Where(entsql.EQ("action", SessionActionStart)).
		OrderBy(entsql.Desc(colSequence))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	var out []SessionSummary
	index := make(map[string]int)
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.SessionID, &s.StartedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session: %w", err)
		}
		index[s.SessionID] = len(out)
		out = append(out, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(out))
	for _, s := range out {
		ids = append(ids, s.SessionID)
	}
	query, args = b.Select(colSessionID, "action", "questions_served", "correct_answers", "score", "duration_secs").
		From(b.Table(tableSessionEvents)).
		Where(entsql.And(
			entsql.In(colSessionID, ids...),
			entsql.NEQ("action", SessionActionStart),
		)).
		OrderBy(colSequence).
		Query()

	rows, err = r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session ends: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, action string
			d          SessionEventData
		)
		if err := rows.Scan(&id, &action, &d.QuestionsServed, &d.CorrectAnswers, &d.Score, &d.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session end: %w", err)
		}
		s := &out[index[id]]
		s.Completed = action == SessionActionEnd
		s.QuestionsServed = d.QuestionsServed
		s.CorrectAnswers = d.CorrectAnswers
		s.Score = d.Score
		s.DurationSecs = d.DurationSecs
	}
	return out, rows.Err()
}
