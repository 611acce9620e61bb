package services

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CampusHub/campushub-roster-services/db"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateCourseService(t *testing.T) {

	store := new(MockRosterStore)

	created := models.Course{
		ID:        uuid.New(),
		Name:      "Linear Algebra",
		ShortName: "MATH201",
		IDNumber:  aws.String("LA-201"),
		CreatedAt: time.Now().UTC(),
	}

	store.On("CheckCourseExists", "MATH201").Return(false, nil)
	store.On("CreateCourse", mock.Anything).Return(&created, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	body := bytes.NewBufferString(`{"name":"Linear Algebra","shortName":"MATH201","idNumber":"LA-201"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/courses", body)
	r = withClaims(r, testClaims("admin", PlatformAdminRole))

	w := httptest.NewRecorder()
	CreateCourseService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Contains(t, res.Header.Get("Location"), created.ID.String())

	var data models.CourseResponse
	decodeEnvelope(t, res.Body, &data)
	assert.Equal(t, "MATH201", data.Course.ShortName)
	if assert.NotNil(t, data.Course.IDNumber) {
		assert.Equal(t, "LA-201", *data.Course.IDNumber)
	}

	store.AssertExpectations(t)
}

func TestCreateCourseServiceForbidden(t *testing.T) {

	store := new(MockRosterStore)
	svc := newTestService(store, new(MockEventPublisher), nil)

	body := bytes.NewBufferString(`{"name":"Linear Algebra","shortName":"MATH201"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/courses", body)
	r = withClaims(r, testClaims("teacher1"))

	w := httptest.NewRecorder()
	CreateCourseService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	store.AssertNotCalled(t, "CreateCourse", mock.Anything)
}

func TestCreateCourseServiceMissingClaims(t *testing.T) {

	store := new(MockRosterStore)
	svc := newTestService(store, new(MockEventPublisher), nil)

	body := bytes.NewBufferString(`{"name":"Linear Algebra","shortName":"MATH201"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/courses", body)

	w := httptest.NewRecorder()
	CreateCourseService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateCourseServiceDuplicateShortName(t *testing.T) {

	store := new(MockRosterStore)
	store.On("CheckCourseExists", "MATH201").Return(true, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	body := bytes.NewBufferString(`{"name":"Linear Algebra","shortName":"MATH201"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/courses", body)
	r = withClaims(r, testClaims("admin", PlatformAdminRole))

	w := httptest.NewRecorder()
	CreateCourseService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	envelope := decodeEnvelope(t, res.Body, nil)
	assert.Equal(t, models.ErrCodeDuplicate, envelope.ErrorCode)
}

func TestCreateCourseServiceInvalidPayload(t *testing.T) {

	store := new(MockRosterStore)
	svc := newTestService(store, new(MockEventPublisher), nil)

	// shortName is required
	body := bytes.NewBufferString(`{"name":"Linear Algebra"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/courses", body)
	r = withClaims(r, testClaims("admin", PlatformAdminRole))

	w := httptest.NewRecorder()
	CreateCourseService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	envelope := decodeEnvelope(t, res.Body, nil)
	assert.Equal(t, models.ErrCodeValidation, envelope.ErrorCode)
}

func TestGetCoursesServiceEnrolledUser(t *testing.T) {

	store := new(MockRosterStore)

	user := models.User{ID: uuid.New(), Username: "student1", DisplayName: "student1", Email: "student1@example.com"}
	courses := []models.Course{
		{ID: uuid.New(), Name: "Linear Algebra", ShortName: "MATH201"},
		{ID: uuid.New(), Name: "Databases", ShortName: "CS305"},
	}

	store.On("GetUserByUsername", "student1").Return(&user, nil)
	store.On("GetUserCourses", user.ID).Return(courses, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r = withClaims(r, testClaims("student1"))

	w := httptest.NewRecorder()
	GetCoursesService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var data models.CoursesResponse
	decodeEnvelope(t, res.Body, &data)
	assert.Len(t, data.Courses, 2)
}

func TestGetCoursesServiceUnknownUser(t *testing.T) {

	store := new(MockRosterStore)
	store.On("GetUserByUsername", "ghost").Return((*models.User)(nil), db.ErrNotFound)

	svc := newTestService(store, new(MockEventPublisher), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r = withClaims(r, testClaims("ghost"))

	w := httptest.NewRecorder()
	GetCoursesService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var data models.CoursesResponse
	decodeEnvelope(t, res.Body, &data)
	assert.Empty(t, data.Courses)
}

func TestGetCoursesServiceAdmin(t *testing.T) {

	store := new(MockRosterStore)

	courses := []models.Course{
		{ID: uuid.New(), Name: "Linear Algebra", ShortName: "MATH201"},
	}
	store.On("GetAllCourses").Return(courses, nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r = withClaims(r, testClaims("admin", PlatformAdminRole))

	w := httptest.NewRecorder()
	GetCoursesService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var data models.CoursesResponse
	decodeEnvelope(t, res.Body, &data)
	assert.Len(t, data.Courses, 1)

	store.AssertNotCalled(t, "GetUserByUsername", mock.Anything)
}

func TestGetCourseServiceNotFound(t *testing.T) {

	store := new(MockRosterStore)

	courseID := uuid.New()
	store.On("GetCourse", courseID).Return((*models.Course)(nil), db.ErrNotFound)

	svc := newTestService(store, new(MockEventPublisher), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/courses/"+courseID.String(), nil)
	r = withClaims(r, testClaims("student1"))
	r = mux.SetURLVars(r, map[string]string{"course-id": courseID.String()})

	w := httptest.NewRecorder()
	GetCourseService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	envelope := decodeEnvelope(t, res.Body, nil)
	assert.Equal(t, models.ErrCodeNotFound, envelope.ErrorCode)
}

func TestGetCourseServiceInvalidID(t *testing.T) {

	store := new(MockRosterStore)
	svc := newTestService(store, new(MockEventPublisher), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/courses/not-a-uuid", nil)
	r = withClaims(r, testClaims("student1"))
	r = mux.SetURLVars(r, map[string]string{"course-id": "not-a-uuid"})

	w := httptest.NewRecorder()
	GetCourseService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeleteCourseService(t *testing.T) {

	store := new(MockRosterStore)

	course := models.Course{ID: uuid.New(), Name: "Linear Algebra", ShortName: "MATH201"}
	store.On("GetCourse", course.ID).Return(&course, nil)
	store.On("DeleteCourse", course.ID).Return(nil)

	svc := newTestService(store, new(MockEventPublisher), nil)

	r := httptest.NewRequest(http.MethodDelete, "/api/courses/"+course.ID.String(), nil)
	r = withClaims(r, testClaims("admin", PlatformAdminRole))
	r = mux.SetURLVars(r, map[string]string{"course-id": course.ID.String()})

	w := httptest.NewRecorder()
	DeleteCourseService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	store.AssertExpectations(t)
}
