// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package task

import (
	"strings"
	"time"

	"github.com/vlogforge/api/internal/platform/apperr"
	"github.com/vlogforge/api/internal/platform/validate"
	"github.com/vlogforge/api/pkg/uuidv7"
)

// # Comments

// Comment is a threaded discussion entry on a task assignment.
//
// Comments exist only inside their parent [Assignment] and are editable only
// by their author.
type Comment struct {
	ID       string  `json:"id"` // UUIDv7
	AuthorID string  `json:"author_id"`
	ParentID *string `json:"parent_id,omitempty"`
	Body     string  `json:"body"`

	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

// AddComment appends a comment, optionally threaded under a parent comment.
func (assignment *Assignment) AddComment(authorID, body string, parentID *string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldActor, authorID)
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, MaxCommentLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if parentID != nil && assignment.commentByID(*parentID) == nil {
		return nil, apperr.NotFound("Comment")
	}

	if len(assignment.Comments) >= MaxComments {
		return nil, apperr.Conflict("Comment limit reached")
	}

	comment := Comment{
		ID:        uuidv7.New(),
		AuthorID:  authorID,
		ParentID:  parentID,
		Body:      strings.TrimSpace(body),
		CreatedAt: time.Now().UTC(),
	}

	assignment.Comments = append(assignment.Comments, comment)
	assignment.touch()
	assignment.appendHistory(ActionCommentAdded, "Comment added", authorID)
	assignment.Record(CommentAddedEvent{TaskID: assignment.ID, CommentID: comment.ID, AuthorID: authorID})

	return &assignment.Comments[len(assignment.Comments)-1], nil
}

// EditComment replaces a comment's body. Only the author may edit; re-saving
// the identical body is a no-op.
func (assignment *Assignment) EditComment(commentID, actorID, body string) error {
	validator := &validate.Validator{}
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, MaxCommentLen)
	if err := validator.Err(); err != nil {
		return err
	}

	comment := assignment.commentByID(commentID)
	if comment == nil {
		return apperr.NotFound("Comment")
	}

	if comment.AuthorID != actorID {
		return apperr.Forbidden("Only the comment author can edit it")
	}

	trimmed := strings.TrimSpace(body)
	if comment.Body == trimmed {
		return nil
	}

	now := time.Now().UTC()
	comment.Body = trimmed
	comment.EditedAt = &now
	assignment.touch()
	assignment.appendHistory(ActionCommentEdited, "Comment edited", actorID)
	assignment.Record(CommentEditedEvent{TaskID: assignment.ID, CommentID: commentID})

	return nil
}

// RemoveComment deletes a comment. Only the author may remove it, and a
// comment with replies cannot be removed.
func (assignment *Assignment) RemoveComment(commentID, actorID string) error {
	comment := assignment.commentByID(commentID)
	if comment == nil {
		return apperr.NotFound("Comment")
	}

	if comment.AuthorID != actorID {
		return apperr.Forbidden("Only the comment author can remove it")
	}

	if assignment.hasReplies(commentID) {
		return apperr.Conflict("Comment has replies")
	}

	kept := make([]Comment, 0, len(assignment.Comments)-1)
	for _, existing := range assignment.Comments {
		if existing.ID != commentID {
			kept = append(kept, existing)
		}
	}

	assignment.Comments = kept
	assignment.touch()
	assignment.appendHistory(ActionCommentRemoved, "Comment removed", actorID)
	assignment.Record(CommentRemovedEvent{TaskID: assignment.ID, CommentID: commentID})

	return nil
}
