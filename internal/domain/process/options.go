package process

// ListOptions provides filtering options for listing an owner's processes.
type ListOptions struct {
	Status        *Status
	MonitoredOnly bool
	Limit         int
	Offset        int
}
