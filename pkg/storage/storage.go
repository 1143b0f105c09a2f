package storage

import "context"

// Pinger reports whether the underlying datastore is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Storage defines the root interface for the entire data layer. Components
// should depend on the more granular interfaces (ApiStore, AggregateReader,
// etc.) instead of this one.
type Storage interface {
	ApiStore
	Pinger
}
