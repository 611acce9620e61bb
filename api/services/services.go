package services

import (
	"context"

	"github.com/CampusHub/campushub-roster-services/internal/appconfig"
	"github.com/CampusHub/campushub-roster-services/internal/events"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
)

// PlatformAdminRole grants course management rights and full group visibility
// on every course.
const PlatformAdminRole = "lms_admin"

// RosterStore is the storage surface the service layer depends on.
// *db.RosterDB satisfies it; tests substitute a mock.
type RosterStore interface {
	CreateCourse(req *models.CourseRequest) (*models.Course, error)
	GetCourse(courseID uuid.UUID) (*models.Course, error)
	GetAllCourses() ([]models.Course, error)
	GetUserCourses(userID uuid.UUID) ([]models.Course, error)
	CheckCourseExists(shortName string) (bool, error)
	DeleteCourse(courseID uuid.UUID) error

	CreateUser(req *models.UserRequest) (*models.User, error)
	GetUser(userID uuid.UUID) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsersByUsernames(usernames []string) ([]models.User, error)
	DeleteUser(userID uuid.UUID) error

	Enrol(courseID, userID uuid.UUID, roleName string) (*models.Enrolment, error)
	Unenrol(courseID, userID uuid.UUID) error
	GetEnrolment(courseID, userID uuid.UUID) (*models.Enrolment, error)
	CheckEnrolmentExists(courseID, userID uuid.UUID) (bool, error)
	GetCourseParticipants(courseID uuid.UUID) ([]models.Participant, error)

	CreateGroup(group models.Group) (*models.Group, error)
	GetGroup(groupID uuid.UUID) (*models.Group, error)
	GetCourseGroups(courseID uuid.UUID) ([]models.Group, error)
	UpdateGroup(group models.Group) (*models.Group, error)
	DeleteGroup(groupID uuid.UUID) error
	CheckGroupNameExists(courseID uuid.UUID, name string) (bool, error)

	AddGroupMember(groupID, userID uuid.UUID) error
	RemoveGroupMember(groupID, userID uuid.UUID) error
	CheckGroupMemberExists(groupID, userID uuid.UUID) (bool, error)
	GetGroupMembers(groupID uuid.UUID) ([]models.User, error)
	GetCourseMemberships(courseID uuid.UUID) ([]models.GroupMember, error)
}

// EnrolmentMailer sends notification emails on roster changes.
type EnrolmentMailer interface {
	SendEnrolmentWelcome(ctx context.Context, user models.User, course models.Course, roleName string) error
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config    *appconfig.Config
	DB        RosterStore
	Publisher events.Notifier
	Mailer    EnrolmentMailer
}
