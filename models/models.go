package models

import "github.com/google/uuid"

// Event types published to the roster events topic.
const (
	EventUserEnrolled   = "user.enrolled"
	EventUserUnenrolled = "user.unenrolled"
	EventGroupCreated   = "group.created"
	EventGroupUpdated   = "group.updated"
	EventGroupDeleted   = "group.deleted"
	EventMemberAdded    = "member.added"
	EventMemberRemoved  = "member.removed"
)

// RosterEvent is published whenever course membership state changes.
type RosterEvent struct {
	Type      string     `json:"type"`
	CourseID  uuid.UUID  `json:"courseId"`
	GroupID   *uuid.UUID `json:"groupId,omitempty"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	RoleName  string     `json:"roleName,omitempty"`
	Timestamp int64      `json:"timestamp"`
}

// SyncMessagePayload is one message from the student information system
// feed. Actions are applied to the enrolment store by the consumer.
type SyncMessagePayload struct {
	Action          string `json:"action"`
	CourseShortName string `json:"courseShortName"`
	Username        string `json:"username"`
	RoleName        string `json:"roleName,omitempty"`
	CorrelationID   string `json:"correlationId"`
}

// Sync actions accepted from the student information system feed.
const (
	SyncActionEnrol   = "enrol"
	SyncActionUnenrol = "unenrol"
)
