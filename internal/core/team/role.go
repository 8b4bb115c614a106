// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package team

// # Team Roles

// Role defines the authority level of a member within a team.
//
// Roles form a strict total order; permission checks compare rank.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.rank() >= target.rank()
}

// IsValid reports whether r is a known team role.
func (r Role) IsValid() bool {
	return r.rank() >= 0
}

// rank maps a role to its position in the privilege order.
func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleEditor:
		return 1
	case RoleViewer:
		return 0
	default:
		return -1
	}
}

// # Access Rights

// AccessRight names a capability an actor may hold inside a team.
type AccessRight string

const (
	RightViewContent        AccessRight = "ViewContent"
	RightEditContent        AccessRight = "EditContent"
	RightAssignTasks        AccessRight = "AssignTasks"
	RightInviteMembers      AccessRight = "InviteMembers"
	RightManageTeamSettings AccessRight = "ManageTeamSettings"
	RightApproveContent     AccessRight = "ApproveContent"
)

// MinimumRole returns the lowest role rank that holds the right by default.
//
// ApproveContent is the one non-ordinal right: when a team configures an
// explicit approver list, membership in that list replaces this rank check
// entirely (see [Team.HasPermission]).
func (right AccessRight) MinimumRole() Role {
	switch right {
	case RightViewContent:
		return RoleViewer
	case RightEditContent, RightAssignTasks:
		return RoleEditor
	default:
		return RoleAdmin
	}
}
