package stats

// ActivityKey groups audit records by actor and action.
type ActivityKey struct {
	Email    string `json:"email"`
	ProcType string `json:"proc_type"`
}

// ActivityCount is the number of audit records for one ActivityKey.
type ActivityCount struct {
	ID    ActivityKey `json:"_id"`
	Count int64       `json:"count"`
}

// UniqueNames lists distinct category names.
type UniqueNames struct {
	Result []string `json:"result"`
	Count  int      `json:"count"`
}
