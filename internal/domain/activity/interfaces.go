package activity

import "context"

// Repository provides persistence operations for activity entries.
type Repository interface {
	Log(ctx context.Context, entry *ActivityEntry) error
	List(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error)
}

// Recorder logs panel events. *Service implements it.
type Recorder interface {
	Record(ctx context.Context, panel string, recordID string, typ ActivityType, summary string)
}
