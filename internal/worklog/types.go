package worklog

import "time"

// DateLayout is the calendar-day format used everywhere an entry date
// appears: storage, exports, and imports.
const DateLayout = "2006-01-02"

// Entry is one logged unit of work, owned by exactly one account.
type Entry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Task      string    `json:"task"`
	Hours     float64   `json:"hours"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft carries the caller-supplied fields of a new entry. ID and CreatedAt
// are assigned by the store.
type Draft struct {
	Date    string  `json:"date"`
	Task    string  `json:"task"`
	Hours   float64 `json:"hours"`
	Details string  `json:"details"`
}

// dedupKey identifies a seed entry for idempotent merging.
func (d Draft) dedupKey() string {
	return d.Task + "\x00" + d.Date + "\x00" + d.Details
}

func entryDedupKey(e Entry) string {
	return e.Task + "\x00" + e.Date + "\x00" + e.Details
}
