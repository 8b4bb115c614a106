// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

/*
Package event provides the in-memory domain event outbox shared by all
aggregate roots.

Every aggregate embeds a [Recorder]. Mutating operations append plain
immutable event values describing what happened; after a successful save the
persistence layer drains the list with [Recorder.Uncommitted], publishes the
events, and calls [Recorder.ClearEvents].

Events are value objects tagged by [Event.Name], never polymorphic behavior
carriers. A failed operation must record nothing: aggregates only call
[Recorder.Record] after every precondition has passed.
*/
package event

// Event is an immutable record of something that happened to an aggregate.
type Event interface {
	// Name returns the stable, snake_case event identifier
	// (e.g. "content.status_changed").
	Name() string
}

// Recorder accumulates domain events and the aggregate's optimistic
// concurrency version.
//
// # Concurrency
//
// Recorder is not safe for concurrent use. Aggregates are pure, synchronous,
// in-memory objects; request-level parallelism is the hosting layer's
// responsibility.
type Recorder struct {
	events []Event

	// Version counts state-mutating operations. The persistence adapter uses
	// it as an optimistic-concurrency token when saving the aggregate.
	Version int
}

// Record appends an event and bumps the aggregate version.
//
// Call only after the mutation has fully applied.
func (recorder *Recorder) Record(e Event) {
	recorder.events = append(recorder.events, e)
	recorder.Version++
}

// Uncommitted returns the ordered list of events recorded since the last
// [Recorder.ClearEvents].
func (recorder *Recorder) Uncommitted() []Event {
	return recorder.events
}

// ClearEvents empties the outbox. The hosting layer calls this after the
// events have been published.
func (recorder *Recorder) ClearEvents() {
	recorder.events = nil
}
