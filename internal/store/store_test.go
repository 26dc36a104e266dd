package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{tableLLMRequestEvents, tableSessionEvents, tableAnswerEvents, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "explanation", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := nextSequence(ctx, s.db)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	inputs := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 300, Success: true, RequestBody: "[user]\nhi", ResponseBody: `{"ok":true}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explanation", InputTokens: 80, OutputTokens: 200, LatencyMs: 500, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-gen", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, in := range inputs {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("events = %d, want 3", len(all))
	}
	if all[0].ErrorMessage != "rate limited" {
		t.Errorf("expected newest first, got %+v", all[0])
	}
	if all[2].ResponseBody != `{"ok":true}` || all[2].RequestBody != "[user]\nhi" {
		t.Errorf("bodies not round-tripped: %+v", all[2])
	}
	if all[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "question-gen"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Purpose != "question-gen" {
		t.Errorf("limited = %+v", limited)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: all[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("after = %d events, want 1", len(after))
	}

	got, err := repo.GetLLMEvent(ctx, all[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Purpose != "explanation" {
		t.Errorf("get = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	qg := byPurpose[1]
	if qg.Purpose != "question-gen" || qg.Calls != 2 || qg.Failures != 1 || qg.InputTokens != 100 || qg.AvgLatencyMs != 200 {
		t.Errorf("question-gen usage = %+v", qg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 3 || byModel[0].OutputTokens != 250 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestSessionAndAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	must(repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: SessionActionStart}))
	must(repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "a", QuestionIndex: 1, QuestionText: "waves", System: "x + y = 12\n2x - y = 3",
		Source: "fallback", CorrectAnswer: "(5, 7)", LearnerAnswer: "(5, 7)", Correct: true, TimeMs: 4200,
	}))
	must(repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "a", Action: SessionActionEnd, QuestionsServed: 15, CorrectAnswers: 12, Score: 120, DurationSecs: 600,
	}))
	must(repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "b", Action: SessionActionStart}))

	sessions, err := repo.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	if sessions[0].SessionID != "b" || sessions[0].Completed {
		t.Errorf("latest session = %+v", sessions[0])
	}
	if a := sessions[1]; !a.Completed || a.Score != 120 || a.CorrectAnswers != 12 {
		t.Errorf("session a = %+v", a)
	}

	answers, err := repo.SessionAnswers(ctx, "a")
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(answers) != 1 || !answers[0].Correct || answers[0].Source != "fallback" {
		t.Errorf("answers = %+v", answers)
	}
}
