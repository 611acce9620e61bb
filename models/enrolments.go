package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names assigned on enrolment. Teachers see every group in the course
// regardless of its visibility level.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Enrolment represents a user's participation in a course.
type Enrolment struct {
	CourseID    uuid.UUID `json:"courseId"`
	UserID      uuid.UUID `json:"userId"`
	RoleName    string    `json:"roleName"`
	TimeCreated time.Time `json:"timeCreated"`
}

// EnrolmentRequest is the payload for enrolling a user in a course.
type EnrolmentRequest struct {
	RoleName string `json:"roleName" validate:"required,oneof=teacher student"`
}

// Participant is one roster row: an enrolled user together with the groups
// the requesting viewer is allowed to see for them.
type Participant struct {
	UserID      uuid.UUID      `json:"userId"`
	Username    string         `json:"username"`
	DisplayName string         `json:"displayName"`
	RoleName    string         `json:"roleName"`
	Groups      []GroupSummary `json:"groups"`
	GroupsLabel string         `json:"groupsLabel"`
}

// ParticipantsResponse holds the participants roster for a course.
type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

// ImportEntry reports the outcome of one line of a bulk enrolment import.
type ImportEntry struct {
	Line     int    `json:"line"`
	Username string `json:"username"`
	RoleName string `json:"roleName,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// ImportResponse summarises a bulk enrolment import.
type ImportResponse struct {
	Enrolled int           `json:"enrolled"`
	Skipped  int           `json:"skipped"`
	Results  []ImportEntry `json:"results"`
}
