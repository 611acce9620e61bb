package models

import (
	"time"

	"github.com/google/uuid"
)

// CoursesResponse holds a list of courses.
type CoursesResponse struct {
	Courses []Course `json:"courses"`
}

// CourseResponse represents a response with a single course.
type CourseResponse struct {
	Course Course `json:"course"`
}

// Course represents a course users can be enrolled in.
type Course struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"shortName"`
	IDNumber  *string   `json:"idNumber,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CourseRequest is the payload for creating a course.
type CourseRequest struct {
	Name      string  `json:"name" validate:"required,max=254"`
	ShortName string  `json:"shortName" validate:"required,max=100"`
	IDNumber  *string `json:"idNumber" validate:"omitempty,max=100"`
}
