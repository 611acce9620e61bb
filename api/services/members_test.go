package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CampusHub/campushub-roster-services/db"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func memberRequest(f *rosterFixture, username, method string, groupID uuid.UUID, userID string) *http.Request {
	url := fmt.Sprintf("/api/courses/%s/groups/%s/members", f.course.ID, groupID)
	vars := map[string]string{"course-id": f.course.ID.String(), "group-id": groupID.String()}
	if userID != "" {
		url += "/" + userID
		vars["user-id"] = userID
	}

	r := httptest.NewRequest(method, url, nil)
	r = withClaims(r, testClaims(username))
	return mux.SetURLVars(r, vars)
}

func TestGetGroupMembersServiceOwnGroup(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)

	// Put a second student alongside student4 in the own-visibility group
	essay := f.groupsByName["Essay Review"]
	student4 := f.users["student4"]
	student5 := f.users["student5"]
	memberships := append(f.memberships, models.GroupMember{
		GroupID:   essay.ID,
		UserID:    student5.ID,
		TimeAdded: time.Now().UTC(),
	})

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetGroup", essay.ID).Return(&essay, nil)
	f.expectViewer(store, "student4")
	store.On("GetCourseMemberships", f.course.ID).Return(memberships, nil)
	store.On("GetGroupMembers", essay.ID).Return([]models.User{student4, student5}, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	w := httptest.NewRecorder()
	GetGroupMembersService(svc, w, memberRequest(f, "student4", http.MethodGet, essay.ID, ""))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	// A member of an own-visibility group sees only their own row
	var data models.GroupMembersResponse
	decodeEnvelope(t, res.Body, &data)
	assert.Len(t, data.Members, 1)
	assert.Equal(t, "student4", data.Members[0].Username)
}

func TestGetGroupMembersServiceTeacherSeesAll(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)

	essay := f.groupsByName["Essay Review"]
	student4 := f.users["student4"]
	student5 := f.users["student5"]
	memberships := append(f.memberships, models.GroupMember{
		GroupID:   essay.ID,
		UserID:    student5.ID,
		TimeAdded: time.Now().UTC(),
	})

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetGroup", essay.ID).Return(&essay, nil)
	f.expectViewer(store, "teacher1")
	store.On("GetCourseMemberships", f.course.ID).Return(memberships, nil)
	store.On("GetGroupMembers", essay.ID).Return([]models.User{student4, student5}, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	w := httptest.NewRecorder()
	GetGroupMembersService(svc, w, memberRequest(f, "teacher1", http.MethodGet, essay.ID, ""))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var data models.GroupMembersResponse
	decodeEnvelope(t, res.Body, &data)
	assert.Len(t, data.Members, 2)
}

func TestGetGroupMembersServiceHiddenGroup(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)

	flagged := f.groupsByName["Flagged"]
	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetGroup", flagged.ID).Return(&flagged, nil)
	f.expectViewer(store, "student1")
	store.On("GetCourseMemberships", f.course.ID).Return(f.memberships, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	w := httptest.NewRecorder()
	GetGroupMembersService(svc, w, memberRequest(f, "student1", http.MethodGet, flagged.ID, ""))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	store.AssertNotCalled(t, "GetGroupMembers", mock.Anything)
}

func TestAddGroupMemberService(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	publisher := new(MockEventPublisher)

	chess := f.groupsByName["Chess Club"]
	student8 := f.users["student8"]

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetGroup", chess.ID).Return(&chess, nil)
	f.expectViewer(store, "teacher1")
	store.On("GetUser", student8.ID).Return(&student8, nil)
	store.On("CheckEnrolmentExists", f.course.ID, student8.ID).Return(true, nil)
	store.On("CheckGroupMemberExists", chess.ID, student8.ID).Return(false, nil)
	store.On("AddGroupMember", chess.ID, student8.ID).Return(nil)
	publisher.On("Publish", mock.Anything).Return(nil)

	svc := newTestService(store, publisher, nil)

	w := httptest.NewRecorder()
	AddGroupMemberService(svc, w, memberRequest(f, "teacher1", http.MethodPut, chess.ID, student8.ID.String()))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	publisher.AssertCalled(t, "Publish", mock.MatchedBy(func(event models.RosterEvent) bool {
		return event.Type == models.EventMemberAdded &&
			event.GroupID != nil && *event.GroupID == chess.ID &&
			event.UserID != nil && *event.UserID == student8.ID
	}))
	store.AssertExpectations(t)
}

func TestAddGroupMemberServiceNotEnrolled(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)

	chess := f.groupsByName["Chess Club"]
	outsider := models.User{ID: uuid.New(), Username: "outsider", DisplayName: "outsider", Email: "outsider@example.com"}

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetGroup", chess.ID).Return(&chess, nil)
	f.expectViewer(store, "teacher1")
	store.On("GetUser", outsider.ID).Return(&outsider, nil)
	store.On("CheckEnrolmentExists", f.course.ID, outsider.ID).Return(false, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	w := httptest.NewRecorder()
	AddGroupMemberService(svc, w, memberRequest(f, "teacher1", http.MethodPut, chess.ID, outsider.ID.String()))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	envelope := decodeEnvelope(t, res.Body, nil)
	assert.Equal(t, models.ErrCodeNotEnrolled, envelope.ErrorCode)

	store.AssertNotCalled(t, "AddGroupMember", mock.Anything, mock.Anything)
}

func TestAddGroupMemberServiceDuplicate(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)

	chess := f.groupsByName["Chess Club"]
	student2 := f.users["student2"]

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetGroup", chess.ID).Return(&chess, nil)
	f.expectViewer(store, "teacher1")
	store.On("GetUser", student2.ID).Return(&student2, nil)
	store.On("CheckEnrolmentExists", f.course.ID, student2.ID).Return(true, nil)
	store.On("CheckGroupMemberExists", chess.ID, student2.ID).Return(true, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	w := httptest.NewRecorder()
	AddGroupMemberService(svc, w, memberRequest(f, "teacher1", http.MethodPut, chess.ID, student2.ID.String()))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	envelope := decodeEnvelope(t, res.Body, nil)
	assert.Equal(t, models.ErrCodeDuplicate, envelope.ErrorCode)
}

func TestRemoveGroupMemberService(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	publisher := new(MockEventPublisher)

	chess := f.groupsByName["Chess Club"]
	student2 := f.users["student2"]

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetGroup", chess.ID).Return(&chess, nil)
	f.expectViewer(store, "teacher1")
	store.On("RemoveGroupMember", chess.ID, student2.ID).Return(nil)
	publisher.On("Publish", mock.Anything).Return(nil)

	svc := newTestService(store, publisher, nil)

	w := httptest.NewRecorder()
	RemoveGroupMemberService(svc, w, memberRequest(f, "teacher1", http.MethodDelete, chess.ID, student2.ID.String()))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	publisher.AssertCalled(t, "Publish", mock.MatchedBy(func(event models.RosterEvent) bool {
		return event.Type == models.EventMemberRemoved
	}))
}

func TestRemoveGroupMemberServiceMissing(t *testing.T) {

	f := newServiceFixture()
	store := new(MockRosterStore)
	publisher := new(MockEventPublisher)

	chess := f.groupsByName["Chess Club"]
	student8 := f.users["student8"]

	store.On("GetCourse", f.course.ID).Return(&f.course, nil)
	store.On("GetGroup", chess.ID).Return(&chess, nil)
	f.expectViewer(store, "teacher1")
	store.On("RemoveGroupMember", chess.ID, student8.ID).Return(db.ErrNotFound)

	svc := newTestService(store, publisher, nil)

	w := httptest.NewRecorder()
	RemoveGroupMemberService(svc, w, memberRequest(f, "teacher1", http.MethodDelete, chess.ID, student8.ID.String()))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}
