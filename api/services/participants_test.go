package services

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CampusHub/campushub-roster-services/db"
	"github.com/CampusHub/campushub-roster-services/internal/visibility"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func rosterRequest(f *rosterFixture, username string, query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/courses/"+f.course.ID.String()+"/participants"+query, nil)
	r = withClaims(r, testClaims(username))
	return mux.SetURLVars(r, map[string]string{"course-id": f.course.ID.String()})
}

func expectRosterReads(store *MockRosterStore, f *rosterFixture) {
	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetCourseParticipants", f.course.ID).Return(f.participants, nil)
	store.On("GetCourseGroups", f.course.ID).Return(f.groups, nil)
	store.On("GetCourseMemberships", f.course.ID).Return(f.memberships, nil)
}

func labelsByUsername(data models.ParticipantsResponse) map[string]string {
	labels := make(map[string]string)
	for _, p := range data.Participants {
		labels[p.Username] = p.GroupsLabel
	}
	return labels
}

func TestGetParticipantsServiceStudentView(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	expectRosterReads(store, f)
	f.expectViewer(store, "student1")

	svc := newTestService(store, new(MockEventPublisher), nil)

	w := httptest.NewRecorder()
	GetParticipantsService(svc, w, rosterRequest(f, "student1", ""))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var data models.ParticipantsResponse
	decodeEnvelope(t, res.Body, &data)

	labels := labelsByUsername(data)
	assert.Equal(t, "Announcements, Breakout A", labels["student1"])
	assert.Equal(t, "Announcements, Breakout A", labels["student5"])
	for _, username := range []string{"teacher1", "student2", "student3", "student4", "student6", "student7", "student8"} {
		assert.Equal(t, visibility.NoGroupsLabel, labels[username], "unexpected label for %s", username)
	}

	// The group summaries carry ids so clients can link to the group pages
	for _, p := range data.Participants {
		if p.Username != "student1" {
			continue
		}
		assert.Len(t, p.Groups, 2)
		assert.Equal(t, f.groupsByName["Announcements"].ID, p.Groups[0].ID)
		assert.Equal(t, f.groupsByName["Breakout A"].ID, p.Groups[1].ID)
	}

	store.AssertExpectations(t)
}

func TestGetParticipantsServiceTeacherView(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	expectRosterReads(store, f)
	f.expectViewer(store, "teacher1")

	svc := newTestService(store, new(MockEventPublisher), nil)

	w := httptest.NewRecorder()
	GetParticipantsService(svc, w, rosterRequest(f, "teacher1", ""))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var data models.ParticipantsResponse
	decodeEnvelope(t, res.Body, &data)

	labels := labelsByUsername(data)
	assert.Equal(t, "Announcements, Breakout A", labels["student1"])
	assert.Equal(t, "Chess Club", labels["student2"])
	assert.Equal(t, "Debate", labels["student3"])
	assert.Equal(t, "Essay Review", labels["student4"])
	assert.Equal(t, "Announcements, Breakout A", labels["student5"])
	assert.Equal(t, "Flagged", labels["student6"])
	assert.Equal(t, "Flagged", labels["student7"])
	assert.Equal(t, visibility.NoGroupsLabel, labels["student8"])
	assert.Equal(t, visibility.NoGroupsLabel, labels["teacher1"])
}

func TestGetParticipantsServiceGroupFilter(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	expectRosterReads(store, f)
	f.expectViewer(store, "teacher1")

	svc := newTestService(store, new(MockEventPublisher), nil)

	chess := f.groupsByName["Chess Club"]
	w := httptest.NewRecorder()
	GetParticipantsService(svc, w, rosterRequest(f, "teacher1", "?group-id="+chess.ID.String()))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var data models.ParticipantsResponse
	decodeEnvelope(t, res.Body, &data)

	assert.Len(t, data.Participants, 1)
	assert.Equal(t, "student2", data.Participants[0].Username)
	assert.Equal(t, "Chess Club", data.Participants[0].GroupsLabel)
}

func TestGetParticipantsServiceHiddenGroupFilter(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	expectRosterReads(store, f)
	f.expectViewer(store, "student1")

	svc := newTestService(store, new(MockEventPublisher), nil)

	// A student filtering by a hidden group gets the same answer as for a
	// group that does not exist
	flagged := f.groupsByName["Flagged"]
	w := httptest.NewRecorder()
	GetParticipantsService(svc, w, rosterRequest(f, "student1", "?group-id="+flagged.ID.String()))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	envelope := decodeEnvelope(t, res.Body, nil)
	assert.Equal(t, models.ErrCodeNotFound, envelope.ErrorCode)
}

func TestGetParticipantsServiceNotEnrolled(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	store.On("GetCourse", f.course.ID).Return(&f.course, nil)

	outsider := models.User{ID: uuid.New(), Username: "outsider", DisplayName: "outsider", Email: "outsider@example.com"}
	store.On("GetUserByUsername", "outsider").Return(&outsider, nil)
	store.On("GetEnrolment", f.course.ID, outsider.ID).Return((*models.Enrolment)(nil), db.ErrNotFound)

	svc := newTestService(store, new(MockEventPublisher), nil)

	w := httptest.NewRecorder()
	GetParticipantsService(svc, w, rosterRequest(f, "outsider", ""))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestEnrolUserService(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	publisher := new(MockEventPublisher)
	mailer := new(MockMailer)

	newUser := models.User{ID: uuid.New(), Username: "student9", DisplayName: "student9", Email: "student9@example.com"}
	enrolment := models.Enrolment{CourseID: f.course.ID, UserID: newUser.ID, RoleName: models.RoleStudent}

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	f.expectViewer(store, "teacher1")
	store.On("GetUser", newUser.ID).Return(&newUser, nil)
	store.On("CheckEnrolmentExists", f.course.ID, newUser.ID).Return(false, nil)
	store.On("Enrol", f.course.ID, newUser.ID, models.RoleStudent).Return(&enrolment, nil)
	publisher.On("Publish", mock.Anything).Return(nil)
	mailer.On("SendEnrolmentWelcome", mock.Anything, newUser, f.course, models.RoleStudent).Return(nil)

	svc := newTestService(store, publisher, mailer)

	body := bytes.NewBufferString(`{"roleName":"student"}`)
	r := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/courses/%s/participants/%s", f.course.ID, newUser.ID), body)
	r = withClaims(r, testClaims("teacher1"))
	r = mux.SetURLVars(r, map[string]string{"course-id": f.course.ID.String(), "user-id": newUser.ID.String()})

	w := httptest.NewRecorder()
	EnrolUserService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	publisher.AssertCalled(t, "Publish", mock.MatchedBy(func(event models.RosterEvent) bool {
		return event.Type == models.EventUserEnrolled && event.UserID != nil && *event.UserID == newUser.ID
	}))
	mailer.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestEnrolUserServiceAlreadyEnrolled(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	publisher := new(MockEventPublisher)

	student1 := f.users["student1"]
	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	f.expectViewer(store, "teacher1")
	store.On("GetUser", student1.ID).Return(&student1, nil)
	store.On("CheckEnrolmentExists", f.course.ID, student1.ID).Return(true, nil)

	svc := newTestService(store, publisher, nil)

	body := bytes.NewBufferString(`{"roleName":"student"}`)
	r := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/courses/%s/participants/%s", f.course.ID, student1.ID), body)
	r = withClaims(r, testClaims("teacher1"))
	r = mux.SetURLVars(r, map[string]string{"course-id": f.course.ID.String(), "user-id": student1.ID.String()})

	w := httptest.NewRecorder()
	EnrolUserService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	envelope := decodeEnvelope(t, res.Body, nil)
	assert.Equal(t, models.ErrCodeDuplicate, envelope.ErrorCode)

	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestEnrolUserServiceStudentForbidden(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)

	student1 := f.users["student1"]
	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	f.expectViewer(store, "student1")

	svc := newTestService(store, new(MockEventPublisher), nil)

	body := bytes.NewBufferString(`{"roleName":"student"}`)
	r := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/courses/%s/participants/%s", f.course.ID, student1.ID), body)
	r = withClaims(r, testClaims("student1"))
	r = mux.SetURLVars(r, map[string]string{"course-id": f.course.ID.String(), "user-id": student1.ID.String()})

	w := httptest.NewRecorder()
	EnrolUserService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	store.AssertNotCalled(t, "Enrol", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnenrolUserService(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	publisher := new(MockEventPublisher)

	student1 := f.users["student1"]
	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	f.expectViewer(store, "teacher1")
	store.On("Unenrol", f.course.ID, student1.ID).Return(nil)
	publisher.On("Publish", mock.Anything).Return(nil)

	svc := newTestService(store, publisher, nil)

	r := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/courses/%s/participants/%s", f.course.ID, student1.ID), nil)
	r = withClaims(r, testClaims("teacher1"))
	r = mux.SetURLVars(r, map[string]string{"course-id": f.course.ID.String(), "user-id": student1.ID.String()})

	w := httptest.NewRecorder()
	UnenrolUserService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	publisher.AssertCalled(t, "Publish", mock.MatchedBy(func(event models.RosterEvent) bool {
		return event.Type == models.EventUserUnenrolled && event.UserID != nil && *event.UserID == student1.ID
	}))
}

func TestUnenrolUserServiceNotEnrolled(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	publisher := new(MockEventPublisher)

	ghostID := uuid.New()
	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	f.expectViewer(store, "teacher1")
	store.On("Unenrol", f.course.ID, ghostID).Return(db.ErrNotFound)

	svc := newTestService(store, publisher, nil)

	r := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/courses/%s/participants/%s", f.course.ID, ghostID), nil)
	r = withClaims(r, testClaims("teacher1"))
	r = mux.SetURLVars(r, map[string]string{"course-id": f.course.ID.String(), "user-id": ghostID.String()})

	w := httptest.NewRecorder()
	UnenrolUserService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestImportParticipantsService(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	publisher := new(MockEventPublisher)
	mailer := new(MockMailer)

	student9 := models.User{ID: uuid.New(), Username: "student9", DisplayName: "student9", Email: "student9@example.com"}
	student10 := models.User{ID: uuid.New(), Username: "student10", DisplayName: "student10", Email: "student10@example.com"}
	student1 := f.users["student1"]
	enrolment := models.Enrolment{CourseID: f.course.ID, UserID: student9.ID, RoleName: models.RoleStudent}

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	f.expectViewer(store, "teacher1")
	store.On("GetUsersByUsernames", mock.Anything).Return([]models.User{student9, student1, student10}, nil)
	store.On("CheckEnrolmentExists", f.course.ID, student9.ID).Return(false, nil)
	store.On("CheckEnrolmentExists", f.course.ID, student1.ID).Return(true, nil)
	store.On("Enrol", f.course.ID, student9.ID, models.RoleStudent).Return(&enrolment, nil)
	publisher.On("Publish", mock.Anything).Return(nil)
	mailer.On("SendEnrolmentWelcome", mock.Anything, student9, f.course, models.RoleStudent).Return(nil)

	svc := newTestService(store, publisher, mailer)

	csvBody := strings.Join([]string{
		"username,role",
		"student9,student",
		"ghost,student",
		"student1,student",
		"student10,banana",
	}, "\n")

	r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/courses/%s/participants/import", f.course.ID), strings.NewReader(csvBody))
	r = withClaims(r, testClaims("teacher1"))
	r = mux.SetURLVars(r, map[string]string{"course-id": f.course.ID.String()})

	w := httptest.NewRecorder()
	ImportParticipantsService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var data models.ImportResponse
	decodeEnvelope(t, res.Body, &data)

	assert.Equal(t, 1, data.Enrolled)
	assert.Equal(t, 1, data.Skipped)
	assert.Len(t, data.Results, 4)

	statuses := make(map[string]string)
	for _, entry := range data.Results {
		statuses[entry.Username] = entry.Status
	}
	assert.Equal(t, "enrolled", statuses["student9"])
	assert.Equal(t, "error", statuses["ghost"])
	assert.Equal(t, "skipped", statuses["student1"])
	assert.Equal(t, "error", statuses["student10"])

	mailer.AssertExpectations(t)
	store.AssertExpectations(t)
}
