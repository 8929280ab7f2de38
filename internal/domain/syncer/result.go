package syncer

// SyncAttemptResult is the terminal outcome of one case's sync invocation.
// Every invocation resolves to exactly one of success or failure; no partial
// state leaks to the caller.
type SyncAttemptResult struct {
	ProcessID     string `json:"process_id"`
	Docket        string `json:"docket"`
	NewActuations int    `json:"new_actuations"`
	Err           error  `json:"-"`
	ErrDetail     string `json:"error,omitempty"`
	RegistryEmpty bool   `json:"registry_empty,omitempty"`
}

// Success reports whether the attempt reached a Done terminal state.
func (r SyncAttemptResult) Success() bool {
	return r.Err == nil
}

// BatchSyncResult aggregates the per-case outcomes of one batch run, in the
// order the cases were loaded.
type BatchSyncResult struct {
	Attempted     int                 `json:"attempted"`
	Succeeded     int                 `json:"succeeded"`
	Failed        int                 `json:"failed"`
	NewActuations int                 `json:"new_actuations"`
	Results       []SyncAttemptResult `json:"results"`
}

func (b *BatchSyncResult) append(r SyncAttemptResult) {
	b.Attempted++
	if r.Success() {
		b.Succeeded++
	} else {
		b.Failed++
	}
	b.NewActuations += r.NewActuations
	b.Results = append(b.Results, r)
}
