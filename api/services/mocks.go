package services

import (
	"context"

	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRosterStore struct {
	mock.Mock
}

type MockEventPublisher struct {
	mock.Mock
}

type MockMailer struct {
	mock.Mock
}

func (m *MockRosterStore) CreateCourse(req *models.CourseRequest) (*models.Course, error) {
	args := m.Called(req)
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockRosterStore) GetCourse(courseID uuid.UUID) (*models.Course, error) {
	args := m.Called(courseID)
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockRosterStore) GetAllCourses() ([]models.Course, error) {
	args := m.Called()
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockRosterStore) GetUserCourses(userID uuid.UUID) ([]models.Course, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockRosterStore) CheckCourseExists(shortName string) (bool, error) {
	args := m.Called(shortName)
	return args.Bool(0), args.Error(1)
}

func (m *MockRosterStore) DeleteCourse(courseID uuid.UUID) error {
	args := m.Called(courseID)
	return args.Error(0)
}

func (m *MockRosterStore) CreateUser(req *models.UserRequest) (*models.User, error) {
	args := m.Called(req)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRosterStore) GetUser(userID uuid.UUID) (*models.User, error) {
	args := m.Called(userID)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRosterStore) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRosterStore) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	args := m.Called(usernames)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockRosterStore) DeleteUser(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockRosterStore) Enrol(courseID, userID uuid.UUID, roleName string) (*models.Enrolment, error) {
	args := m.Called(courseID, userID, roleName)
	return args.Get(0).(*models.Enrolment), args.Error(1)
}

func (m *MockRosterStore) Unenrol(courseID, userID uuid.UUID) error {
	args := m.Called(courseID, userID)
	return args.Error(0)
}

func (m *MockRosterStore) GetEnrolment(courseID, userID uuid.UUID) (*models.Enrolment, error) {
	args := m.Called(courseID, userID)
	return args.Get(0).(*models.Enrolment), args.Error(1)
}

func (m *MockRosterStore) CheckEnrolmentExists(courseID, userID uuid.UUID) (bool, error) {
	args := m.Called(courseID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRosterStore) GetCourseParticipants(courseID uuid.UUID) ([]models.Participant, error) {
	args := m.Called(courseID)
	return args.Get(0).([]models.Participant), args.Error(1)
}

func (m *MockRosterStore) CreateGroup(group models.Group) (*models.Group, error) {
	args := m.Called(group)
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockRosterStore) GetGroup(groupID uuid.UUID) (*models.Group, error) {
	args := m.Called(groupID)
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockRosterStore) GetCourseGroups(courseID uuid.UUID) ([]models.Group, error) {
	args := m.Called(courseID)
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockRosterStore) UpdateGroup(group models.Group) (*models.Group, error) {
	args := m.Called(group)
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockRosterStore) DeleteGroup(groupID uuid.UUID) error {
	args := m.Called(groupID)
	return args.Error(0)
}

func (m *MockRosterStore) CheckGroupNameExists(courseID uuid.UUID, name string) (bool, error) {
	args := m.Called(courseID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRosterStore) AddGroupMember(groupID, userID uuid.UUID) error {
	args := m.Called(groupID, userID)
	return args.Error(0)
}

func (m *MockRosterStore) RemoveGroupMember(groupID, userID uuid.UUID) error {
	args := m.Called(groupID, userID)
	return args.Error(0)
}

func (m *MockRosterStore) CheckGroupMemberExists(groupID, userID uuid.UUID) (bool, error) {
	args := m.Called(groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRosterStore) GetGroupMembers(groupID uuid.UUID) ([]models.User, error) {
	args := m.Called(groupID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockRosterStore) GetCourseMemberships(courseID uuid.UUID) ([]models.GroupMember, error) {
	args := m.Called(courseID)
	return args.Get(0).([]models.GroupMember), args.Error(1)
}

func (m *MockEventPublisher) Publish(event models.RosterEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() {
	m.Called()
}

func (m *MockMailer) SendEnrolmentWelcome(ctx context.Context, user models.User, course models.Course, roleName string) error {
	args := m.Called(ctx, user, course, roleName)
	return args.Error(0)
}
