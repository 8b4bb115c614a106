// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package content_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlogforge/api/internal/core/content"
	"github.com/vlogforge/api/internal/platform/apperr"
)

func newItem(t *testing.T) *content.Item {
	t.Helper()
	item, err := content.New("user-1", "My first vlog", nil, nil)
	require.NoError(t, err)
	item.ClearEvents()
	return item
}

// advance walks an item through a sequence of statuses, failing the test on
// any rejected step.
func advance(t *testing.T, item *content.Item, path ...content.Status) {
	t.Helper()
	for _, status := range path {
		require.NoError(t, item.UpdateStatus(status), "advancing to %s", status)
		require.Equal(t, status, item.Status)
	}
}

/*
TestNew validates creation rules and the initial Idea status.
*/
func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		ownerID string
		title   string
		wantErr bool
	}{
		{"valid", "user-1", "Episode 1", false},
		{"empty_title", "user-1", "", true},
		{"whitespace_title", "user-1", "   ", true},
		{"overlong_title", "user-1", strings.Repeat("x", content.MaxTitleLen+1), true},
		{"empty_owner", "", "Episode 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := content.New(tt.ownerID, tt.title, nil, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, content.StatusIdea, item.Status)
			assert.Equal(t, tt.ownerID, item.OwnerID)
			require.Len(t, item.Uncommitted(), 1)
			assert.Equal(t, "content.created", item.Uncommitted()[0].Name())
		})
	}
}

/*
TestUpdateStatus_FullLifecycle walks the canonical forward path from Idea to
Published, asserting the status after every step.
*/
func TestUpdateStatus_FullLifecycle(t *testing.T) {
	item := newItem(t)

	advance(t, item,
		content.StatusDraft,
		content.StatusInReview,
		content.StatusApproved,
		content.StatusScheduled,
		content.StatusPublished,
	)

	require.NotNil(t, item.PublishedAt)
	assert.Len(t, item.Uncommitted(), 5)
}

/*
TestUpdateStatus_ChangesRequestedLoop exercises the cyclic re-submission path.
*/
func TestUpdateStatus_ChangesRequestedLoop(t *testing.T) {
	item := newItem(t)

	advance(t, item,
		content.StatusDraft,
		content.StatusInReview,
		content.StatusChangesRequested,
		content.StatusDraft,
		content.StatusInReview,
		content.StatusApproved,
		content.StatusScheduled,
	)
}

/*
TestUpdateStatus_NoOp verifies that requesting the held status never mutates
the item and never appends an event, for every status.
*/
func TestUpdateStatus_NoOp(t *testing.T) {
	for _, status := range content.AllStatuses {
		t.Run(string(status), func(t *testing.T) {
			item := newItem(t)
			item.Status = status
			versionBefore := item.Version

			require.NoError(t, item.UpdateStatus(status))

			assert.Equal(t, status, item.Status)
			assert.Equal(t, versionBefore, item.Version)
			assert.Empty(t, item.Uncommitted())
		})
	}
}

/*
TestUpdateStatus_TransitionCompleteness exhaustively rejects every (from, to)
pair absent from the adjacency table, asserting the status stays unchanged.
*/
func TestUpdateStatus_TransitionCompleteness(t *testing.T) {
	for _, from := range content.AllStatuses {
		for _, to := range content.AllStatuses {
			if from == to || content.Transitions.CanTransition(from, to) {
				continue
			}

			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				item := newItem(t)
				item.Status = from

				err := item.UpdateStatus(to)

				require.Error(t, err)
				assert.Equal(t, "INVALID_TRANSITION", apperr.As(err).Code)
				assert.Equal(t, from, item.Status)
				assert.Empty(t, item.Uncommitted())
			})
		}
	}
}

/*
TestUpdateStatus_BackwardReachability verifies that every non-initial status
can step back to its immediate predecessor on the canonical path.
*/
func TestUpdateStatus_BackwardReachability(t *testing.T) {
	tests := []struct {
		from content.Status
		to   content.Status
	}{
		{content.StatusDraft, content.StatusIdea},
		{content.StatusInReview, content.StatusDraft},
		{content.StatusApproved, content.StatusInReview},
		{content.StatusChangesRequested, content.StatusInReview},
		{content.StatusScheduled, content.StatusApproved},
		{content.StatusPublished, content.StatusScheduled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			item := newItem(t)
			item.Status = tt.from

			require.NoError(t, item.UpdateStatus(tt.to))
			assert.Equal(t, tt.to, item.Status)
		})
	}
}

/*
TestUpdateStatus_SkippingStatesRejected pins that an Idea item cannot jump
straight to Published.
*/
func TestUpdateStatus_SkippingStatesRejected(t *testing.T) {
	item := newItem(t)

	err := item.UpdateStatus(content.StatusPublished)

	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", apperr.As(err).Code)
	assert.Equal(t, content.StatusIdea, item.Status)
}

/*
TestUpdateStatus_PublishedAt checks the derived timestamp lifecycle.
*/
func TestUpdateStatus_PublishedAt(t *testing.T) {
	item := newItem(t)
	advance(t, item,
		content.StatusDraft,
		content.StatusInReview,
		content.StatusApproved,
		content.StatusScheduled,
	)
	require.Nil(t, item.PublishedAt)

	advance(t, item, content.StatusPublished)
	require.NotNil(t, item.PublishedAt)

	// Moving away clears the timestamp.
	advance(t, item, content.StatusScheduled)
	assert.Nil(t, item.PublishedAt)
}

/*
TestPlatforms covers normalization, deduplication, and the size bound of the
platform tag set.
*/
func TestPlatforms(t *testing.T) {
	t.Run("case_insensitive_dedup", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.AddPlatform("YouTube"))
		item.ClearEvents()

		// Case-variant duplicate is a silent no-op.
		require.NoError(t, item.AddPlatform("youtube"))
		assert.Equal(t, []string{"youtube"}, item.Platforms)
		assert.Empty(t, item.Uncommitted())
	})

	t.Run("limit_enforced", func(t *testing.T) {
		item := newItem(t)
		for i := 0; i < content.MaxPlatforms; i++ {
			require.NoError(t, item.AddPlatform("platform-"+string(rune('a'+i))))
		}

		err := item.AddPlatform("one-too-many")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
		assert.Len(t, item.Platforms, content.MaxPlatforms)
	})

	t.Run("remove_absent_is_noop", func(t *testing.T) {
		item := newItem(t)
		item.ClearEvents()
		require.NoError(t, item.RemovePlatform("tiktok"))
		assert.Empty(t, item.Uncommitted())
	})

	t.Run("replace_normalizes_before_limit", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.ReplacePlatforms([]string{"YouTube", "youtube", " TikTok ", ""}))
		assert.Equal(t, []string{"youtube", "tiktok"}, item.Platforms)
	})

	t.Run("replace_rejects_oversized_set", func(t *testing.T) {
		item := newItem(t)
		oversized := make([]string, content.MaxPlatforms+1)
		for i := range oversized {
			oversized[i] = "platform-" + string(rune('a'+i))
		}

		err := item.ReplacePlatforms(oversized)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestSoftDelete verifies the deletion flag, the mutation guard, and restore.
*/
func TestSoftDelete(t *testing.T) {
	item := newItem(t)

	require.NoError(t, item.SoftDelete())
	assert.True(t, item.IsDeleted)
	require.NotNil(t, item.DeletedAt)

	// Every mutation is rejected while deleted.
	err := item.UpdateStatus(content.StatusDraft)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	err = item.Update("New title", nil)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	err = item.AddPlatform("youtube")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Restore lifts the guard.
	require.NoError(t, item.Restore())
	assert.False(t, item.IsDeleted)
	assert.Nil(t, item.DeletedAt)
	require.NoError(t, item.UpdateStatus(content.StatusDraft))
}

/*
TestUpdate covers the title/notes edit rules.
*/
func TestUpdate(t *testing.T) {
	item := newItem(t)

	notes := strings.Repeat("n", content.MaxNotesLen)
	require.NoError(t, item.Update("Renamed", &notes))
	assert.Equal(t, "Renamed", item.Title)

	overlong := strings.Repeat("n", content.MaxNotesLen+1)
	err := item.Update("Renamed", &overlong)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
