package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the migration and the query builders.
const (
	tableLLMRequestEvents = "llm_request_events"
	tableSessionEvents    = "session_events"
	tableAnswerEvents     = "answer_events"
	tableSequence         = "global_sequence"

	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
	colSessionID = "session_id"
	colNextVal   = "next_val"
)

// eventColumns returns the columns every event table starts with.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
	}
}

func eventTable(name string, extra ...*schema.Column) *schema.Table {
	cols := append(eventColumns(), extra...)
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
}

var (
	llmRequestEventsTable = eventTable(tableLLMRequestEvents,
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)

	sessionEventsTable = eventTable(tableSessionEvents,
		&schema.Column{Name: colSessionID, Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "questions_served", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)

	answerEventsTable = eventTable(tableAnswerEvents,
		&schema.Column{Name: colSessionID, Type: field.TypeString},
		&schema.Column{Name: "question_index", Type: field.TypeInt},
		&schema.Column{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "system", Type: field.TypeString},
		&schema.Column{Name: "source", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "correct_answer", Type: field.TypeString},
		&schema.Column{Name: "learner_answer", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)

	sequenceTable = func() *schema.Table {
		id := &schema.Column{Name: colID, Type: field.TypeInt}
		return &schema.Table{
			Name:       tableSequence,
			Columns:    []*schema.Column{id, {Name: colNextVal, Type: field.TypeInt64, Default: 1}},
			PrimaryKey: []*schema.Column{id},
		}
	}()

	// tables is the full set migrated by Open.
	tables = []*schema.Table{
		sequenceTable,
		llmRequestEventsTable,
		sessionEventsTable,
		answerEventsTable,
	}
)
