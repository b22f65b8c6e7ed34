package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxLimit caps a single audit log page.
	MaxLimit = 500
)

// Entry is one stored audit record.
type Entry struct {
	ID        int64           `json:"_id"`
	EventID   uuid.UUID       `json:"event_id"`
	Level     string          `json:"level"`
	Email     string          `json:"email"`
	Location  string          `json:"location"`
	ProcType  string          `json:"proc_type"`
	Log       json.RawMessage `json:"log"`
	CreatedAt time.Time       `json:"created_at"`
}

// Filters selects a created_at window. Both bounds are inclusive.
type Filters struct {
	From  time.Time
	To    time.Time
	Skip  int
	Limit int
}
