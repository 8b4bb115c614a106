// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlogforge/api/internal/core/event"
)

type stubEvent struct{ id string }

func (stubEvent) Name() string { return "stub.happened" }

/*
TestRecorder_OrderAndVersion verifies that events drain in record order and
that the version counter tracks every recorded mutation.
*/
func TestRecorder_OrderAndVersion(t *testing.T) {
	recorder := &event.Recorder{}
	assert.Empty(t, recorder.Uncommitted())
	assert.Equal(t, 0, recorder.Version)

	recorder.Record(stubEvent{id: "first"})
	recorder.Record(stubEvent{id: "second"})

	events := recorder.Uncommitted()
	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].(stubEvent).id)
	assert.Equal(t, "second", events[1].(stubEvent).id)
	assert.Equal(t, 2, recorder.Version)
}

/*
TestRecorder_ClearEvents verifies that draining the outbox preserves the
version counter.
*/
func TestRecorder_ClearEvents(t *testing.T) {
	recorder := &event.Recorder{}
	recorder.Record(stubEvent{})
	recorder.ClearEvents()

	assert.Empty(t, recorder.Uncommitted())
	assert.Equal(t, 1, recorder.Version)

	// Recording continues after a drain.
	recorder.Record(stubEvent{})
	assert.Len(t, recorder.Uncommitted(), 1)
	assert.Equal(t, 2, recorder.Version)
}
