package models

import (
	"time"

	"github.com/CampusHub/campushub-roster-services/internal/visibility"
	"github.com/google/uuid"
)

// GroupsResponse holds a list of groups.
type GroupsResponse struct {
	Groups []Group `json:"groups"`
}

// GroupResponse represents a response with a single group.
type GroupResponse struct {
	Group Group `json:"group"`
}

// Group represents a group within a course.
type Group struct {
	ID            uuid.UUID        `json:"id"`
	CourseID      uuid.UUID        `json:"courseId"`
	Name          string           `json:"name"`
	IDNumber      *string          `json:"idNumber,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Visibility    visibility.Level `json:"visibility"`
	Participation bool             `json:"participation"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// GroupRequest is the payload for creating or updating a group. An empty
// visibility defaults to "all".
type GroupRequest struct {
	Name          string  `json:"name" validate:"required,max=254"`
	IDNumber      *string `json:"idNumber" validate:"omitempty,max=100"`
	Description   *string `json:"description"`
	Visibility    string  `json:"visibility" validate:"omitempty,oneof=all members own none"`
	Participation bool    `json:"participation"`
}

// GroupSummary is the reduced group view embedded in roster rows.
type GroupSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// GroupMember represents a user's membership of a group.
type GroupMember struct {
	GroupID   uuid.UUID `json:"groupId"`
	UserID    uuid.UUID `json:"userId"`
	TimeAdded time.Time `json:"timeAdded"`
}

// GroupMembersResponse represents a response with a list of group members.
type GroupMembersResponse struct {
	Members []User `json:"members"`
}

// OrphanMembership is a membership edge whose user is no longer enrolled in
// the group's course. Produced by the reconcile job.
type OrphanMembership struct {
	GroupID  uuid.UUID `json:"groupId"`
	UserID   uuid.UUID `json:"userId"`
	CourseID uuid.UUID `json:"courseId"`
}
