// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package team

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vlogforge/api/pkg/slice"
	"github.com/vlogforge/api/pkg/uuidv7"
)

// # Invitations

// Invitation is a pending offer to join a team with a fixed role.
//
// The token is the bearer credential mailed to the invitee; it is generated
// from the OS CSPRNG, never derived from invitation data.
type Invitation struct {
	ID    string `json:"id"` // UUIDv7
	Token string `json:"-"`

	// Email is stored normalized (lower-cased, trimmed).
	Email string `json:"email"`
	Role  Role   `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	AcceptedByUserID *string    `json:"accepted_by_user_id,omitempty"`
}

// newInvitation creates an invitation with a fresh token and the default TTL.
func newInvitation(normalizedEmail string, role Role) (*Invitation, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Invitation{
		ID:        uuidv7.New(),
		Token:     token,
		Email:     normalizedEmail,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(DefaultInvitationTTL),
	}, nil
}

// Accepted reports whether the invitation has been redeemed.
func (invitation *Invitation) Accepted() bool {
	return invitation.AcceptedAt != nil
}

// Expired reports whether the invitation is past its expiry.
func (invitation *Invitation) Expired() bool {
	return time.Now().UTC().After(invitation.ExpiresAt)
}

// Outstanding reports whether the invitation still blocks a duplicate invite
// for the same email: not yet accepted and not yet expired.
func (invitation *Invitation) Outstanding() bool {
	return !invitation.Accepted() && !invitation.Expired()
}

// invitationRow is the persistence shape of an [Invitation]. The API-facing
// struct hides the token; the stored document must keep it.
type invitationRow struct {
	ID               string     `json:"id"`
	Token            string     `json:"token"`
	Email            string     `json:"email"`
	Role             Role       `json:"role"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	AcceptedByUserID *string    `json:"accepted_by_user_id,omitempty"`
}

func invitationRows(invitations []Invitation) []invitationRow {
	return slice.Map(invitations, func(invitation Invitation) invitationRow {
		return invitationRow{
			ID:               invitation.ID,
			Token:            invitation.Token,
			Email:            invitation.Email,
			Role:             invitation.Role,
			CreatedAt:        invitation.CreatedAt,
			ExpiresAt:        invitation.ExpiresAt,
			AcceptedAt:       invitation.AcceptedAt,
			AcceptedByUserID: invitation.AcceptedByUserID,
		}
	})
}

func invitationsFromRows(rows []invitationRow) []Invitation {
	return slice.Map(rows, func(row invitationRow) Invitation {
		return Invitation{
			ID:               row.ID,
			Token:            row.Token,
			Email:            row.Email,
			Role:             row.Role,
			CreatedAt:        row.CreatedAt,
			ExpiresAt:        row.ExpiresAt,
			AcceptedAt:       row.AcceptedAt,
			AcceptedByUserID: row.AcceptedByUserID,
		}
	})
}

// newToken returns a 256-bit hex token from the OS entropy source.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("team: failed to generate invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
