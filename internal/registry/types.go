package registry

import "time"

// Actuation is a single procedural event as reported by the registry.
type Actuation struct {
	Date       time.Time
	Type       string
	Annotation string
	StartDate  *time.Time
	EndDate    *time.Time
}

// Snapshot is the normalized view of one case as the registry reports it
// today. An empty snapshot means the docket is unknown to the provider, which
// is a valid terminal state, not an error.
type Snapshot struct {
	Docket         string
	Forum          *string
	Actuations     []Actuation
	MostRecentDate *time.Time
	MostRecentType string
	MostRecentDesc string
}

// Empty reports whether the registry knows nothing about the docket.
func (s *Snapshot) Empty() bool {
	return s == nil || (s.Forum == nil && len(s.Actuations) == 0)
}
