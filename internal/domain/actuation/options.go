package actuation

// ListOptions provides filtering options for listing a process's actuations.
type ListOptions struct {
	OnlyNew bool
	Limit   int
	Offset  int
}
