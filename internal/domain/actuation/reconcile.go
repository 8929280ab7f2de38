package actuation

// Reconcile compares freshly fetched actuations against the stored key set and
// returns the genuinely new ones, preserving the order of the incoming slice.
//
// The existing set is not mutated. Keys that repeat inside the incoming slice
// are emitted once: no two actuations in the result share a key, which is the
// invariant the store relies on before insert. Identical inputs always yield
// identical outputs; there is no hidden state and no I/O here.
func Reconcile(existing KeySet, incoming []Actuation) []Actuation {
	if len(incoming) == 0 {
		return nil
	}

	seen := make(KeySet, len(existing)+len(incoming))
	for k := range existing {
		seen.Add(k)
	}

	var fresh []Actuation
	for _, in := range incoming {
		key := KeyOf(in)
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		fresh = append(fresh, in)
	}
	return fresh
}
