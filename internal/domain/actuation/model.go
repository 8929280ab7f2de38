package actuation

import "time"

// dateKeyLayout is the granularity at which actuation dates participate in
// identity. The provider reports actuation dates as calendar days; intraday
// components are not stable across fetches.
const dateKeyLayout = "2006-01-02"

// Actuation is a single procedural event recorded against a monitored process.
type Actuation struct {
	ID         string     `json:"id"`
	ProcessID  string     `json:"process_id"`
	Date       time.Time  `json:"date"`
	Type       string     `json:"type"`
	Annotation string     `json:"annotation"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsNew      bool       `json:"is_new"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Key is the dedup identity of an actuation within one process: the actuation
// date plus the free-text annotation. The provider guarantees no external
// unique id, so this pair is the identity contract. The type field is
// deliberately excluded; two records differing only in type are the same event.
type Key struct {
	Date       string
	Annotation string
}

// KeyOf computes the dedup key for an actuation.
func KeyOf(a Actuation) Key {
	return Key{
		Date:       a.Date.UTC().Format(dateKeyLayout),
		Annotation: a.Annotation,
	}
}

// KeySet is the set of dedup keys already stored for a process.
type KeySet map[Key]struct{}

// Contains reports whether the key is present in the set.
func (s KeySet) Contains(k Key) bool {
	_, ok := s[k]
	return ok
}

// Add inserts a key into the set.
func (s KeySet) Add(k Key) {
	s[k] = struct{}{}
}
