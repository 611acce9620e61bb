package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/CampusHub/campushub-roster-services/api/middleware"
	"github.com/CampusHub/campushub-roster-services/db"
	"github.com/CampusHub/campushub-roster-services/internal/authn"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// CreateCourseService creates a new course. Only platform admins may create
// courses.
func CreateCourseService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	// Retrieve claims from the request context to identify the user
	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
		return
	}

	if !claims.HasRole(PlatformAdminRole) {
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user is not a platform admin")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "platform admin role required")
		return
	}

	// Decode the request payload into a CourseRequest struct
	var payload models.CourseRequest
	if err := decodeAndValidate(r, &payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
		return
	}

	// Short names identify courses to the student information system, so they
	// must be unique
	exists, err := svc.DB.CheckCourseExists(payload.ShortName)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to check course existence")
		HandleDBError(w, err, "")
		return
	}
	if exists {
		logger.Warn().Str("short_name", payload.ShortName).Msg("Course short name already in use")
		WriteErrResponse(w, http.StatusConflict, models.ErrCodeDuplicate, fmt.Sprintf("a course with short name %s already exists", payload.ShortName))
		return
	}

	course, err := svc.DB.CreateCourse(&payload)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create course in database")
		HandleDBError(w, err, "")
		return
	}

	logger.Info().Str("course_id", course.ID.String()).Msg("Course created successfully")

	var location = fmt.Sprintf("%s/%s", r.URL.Path, course.ID)
	WriteResponse(w, http.StatusCreated, models.Response{Success: 1, Data: models.CourseResponse{Course: *course}}, location)

}

// GetCoursesService retrieves the courses visible to the authenticated user.
// Platform admins see every course, everyone else sees their enrolments.
func GetCoursesService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
		return
	}

	var courses []models.Course
	var err error

	if claims.HasRole(PlatformAdminRole) {
		courses, err = svc.DB.GetAllCourses()
	} else {
		var user *models.User
		user, err = svc.DB.GetUserByUsername(claims.Username)
		if errors.Is(err, db.ErrNotFound) {
			// Callers with no roster record simply have no courses
			WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.CoursesResponse{Courses: []models.Course{}}})
			return
		}
		if err == nil {
			courses, err = svc.DB.GetUserCourses(user.ID)
		}
	}

	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve courses from database")
		HandleDBError(w, err, "")
		return
	}

	// Ensure courses is not nil, return an empty slice if no courses are found
	if courses == nil {
		courses = []models.Course{}
	}

	logger.Info().Int("course_count", len(courses)).Msg("Successfully retrieved courses")
	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.CoursesResponse{Courses: courses}})

}

// GetCourseService retrieves a single course for an enrolled user or admin.
func GetCourseService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
		return
	}

	// Parse the course ID from the URL path
	courseID, err := uuid.Parse(mux.Vars(r)["course-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid course ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "course-id must be a valid UUID")
		return
	}

	course, err := svc.DB.GetCourse(courseID)
	if err != nil {
		logger.Warn().Err(err).Str("course_id", courseID.String()).Msg("Could not retrieve course")
		HandleDBError(w, err, "course not found")
		return
	}

	_, status, err := resolveViewer(svc, claims, courseID)
	if err != nil {
		logger.Warn().Err(err).Str("course_id", courseID.String()).Msg("Viewer not authorized for course")
		WriteErrResponse(w, status, models.ErrCodeForbidden, err.Error())
		return
	}

	logger.Info().Str("course_id", course.ID.String()).Msg("Successfully retrieved course")
	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.CourseResponse{Course: *course}})

}

// DeleteCourseService deletes a course with its enrolments and groups. Only
// platform admins may delete courses.
func DeleteCourseService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
		return
	}

	if !claims.HasRole(PlatformAdminRole) {
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user is not a platform admin")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "platform admin role required")
		return
	}

	courseID, err := uuid.Parse(mux.Vars(r)["course-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid course ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "course-id must be a valid UUID")
		return
	}

	if _, err := svc.DB.GetCourse(courseID); err != nil {
		logger.Warn().Err(err).Str("course_id", courseID.String()).Msg("Could not retrieve course")
		HandleDBError(w, err, "course not found")
		return
	}

	if err := svc.DB.DeleteCourse(courseID); err != nil {
		logger.Error().Err(err).Str("course_id", courseID.String()).Msg("Failed to delete course")
		HandleDBError(w, err, "")
		return
	}

	logger.Info().Str("course_id", courseID.String()).Msg("Course deleted successfully")
	WriteResponse(w, http.StatusNoContent, nil)

}
