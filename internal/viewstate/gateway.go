package viewstate

import (
	"context"
	"time"
)

// Gateway is the data-access seam behind a controller.
type Gateway[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Patch(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Recorder receives timing for every gateway-backed operation.
type Recorder interface {
	Observe(panel, op string, success bool, elapsed time.Duration)
}

// EventCounter counts domain events such as alerts and rides.
type EventCounter interface {
	Event(kind string)
}

// ChangeKind names a committed mutation.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes a mutation that reached the store and the gateway.
type Change struct {
	Panel   string
	Kind    ChangeKind
	ID      string
	Summary string
}

// Observer is notified after each committed change.
type Observer func(ctx context.Context, change Change)
