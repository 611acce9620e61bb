package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/CampusHub/campushub-roster-services/api/middleware"
	"github.com/CampusHub/campushub-roster-services/internal/authn"
	"github.com/CampusHub/campushub-roster-services/internal/visibility"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// CreateGroupService creates a group in a course. Only course teachers and
// platform admins may manage groups.
func CreateGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
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

	viewer, status, err := resolveViewer(svc, claims, courseID)
	if err != nil {
		logger.Warn().Err(err).Str("course_id", courseID.String()).Msg("Viewer not authorized for course")
		WriteErrResponse(w, status, models.ErrCodeForbidden, err.Error())
		return
	}
	if !viewer.isTeacher() {
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user cannot manage groups")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "only teachers can manage groups")
		return
	}

	var payload models.GroupRequest
	if err := decodeAndValidate(r, &payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
		return
	}

	group, errCode, err := groupFromRequest(courseID, payload)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid group settings")
		WriteErrResponse(w, http.StatusBadRequest, errCode, err.Error())
		return
	}

	// Group names label roster rows, so they must be unique within a course
	exists, err := svc.DB.CheckGroupNameExists(courseID, group.Name)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to check group name")
		HandleDBError(w, err, "")
		return
	}
	if exists {
		logger.Warn().Str("name", group.Name).Msg("Group name already in use")
		WriteErrResponse(w, http.StatusConflict, models.ErrCodeDuplicate, fmt.Sprintf("a group named %s already exists in this course", group.Name))
		return
	}

	created, err := svc.DB.CreateGroup(group)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create group in database")
		HandleDBError(w, err, "")
		return
	}

	logger.Info().Str("group_id", created.ID.String()).Msg("Group created successfully")

	event := models.RosterEvent{
		Type:      models.EventGroupCreated,
		CourseID:  courseID,
		GroupID:   &created.ID,
		Timestamp: time.Now().Unix(),
	}
	if err := svc.Publisher.Publish(event); err != nil {
		logger.Error().Err(err).Msg("Failed to publish group event")
	}

	var location = fmt.Sprintf("%s/%s", r.URL.Path, created.ID)
	WriteResponse(w, http.StatusCreated, models.Response{Success: 1, Data: models.GroupResponse{Group: *created}}, location)

}

// GetGroupsService lists the course groups the viewer is allowed to see.
// Students never receive hidden groups; teachers and admins receive all of
// them.
func GetGroupsService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
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

	viewer, status, err := resolveViewer(svc, claims, courseID)
	if err != nil {
		logger.Warn().Err(err).Str("course_id", courseID.String()).Msg("Viewer not authorized for course")
		WriteErrResponse(w, status, models.ErrCodeForbidden, err.Error())
		return
	}

	groups, err := svc.DB.GetCourseGroups(courseID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve groups from database")
		HandleDBError(w, err, "")
		return
	}

	memberships, err := svc.DB.GetCourseMemberships(courseID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve group memberships from database")
		HandleDBError(w, err, "")
		return
	}

	listable := visibility.FilterListable(viewer.asViewer(), toVisibilityGroups(groups), toVisibilityMemberships(memberships))
	visibleIDs := lo.SliceToMap(listable, func(g visibility.Group) (uuid.UUID, struct{}) { return g.ID, struct{}{} })
	visible := lo.Filter(groups, func(g models.Group, _ int) bool {
		_, ok := visibleIDs[g.ID]
		return ok
	})

	logger.Info().Int("group_count", len(visible)).Msg("Successfully retrieved groups")
	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.GroupsResponse{Groups: visible}})

}

// GetGroupService retrieves a single group. Groups the viewer cannot see are
// reported as missing so their existence does not leak.
func GetGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
		return
	}

	group, viewer, ok := loadGroupForViewer(svc, w, r, claims)
	if !ok {
		return
	}

	memberships, err := svc.DB.GetCourseMemberships(group.CourseID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve group memberships from database")
		HandleDBError(w, err, "")
		return
	}

	vGroup := visibility.Group{ID: group.ID, Name: group.Name, Level: group.Visibility}
	if !visibility.VisibleToViewer(viewer.asViewer(), vGroup, toVisibilityMemberships(memberships)) {
		logger.Warn().Str("group_id", group.ID.String()).Msg("Group not visible to viewer")
		WriteErrResponse(w, http.StatusNotFound, models.ErrCodeNotFound, "group not found")
		return
	}

	logger.Info().Str("group_id", group.ID.String()).Msg("Successfully retrieved group")
	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.GroupResponse{Group: *group}})

}

// UpdateGroupService updates a group's name, description and visibility.
func UpdateGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
		return
	}

	group, viewer, ok := loadGroupForViewer(svc, w, r, claims)
	if !ok {
		return
	}
	if !viewer.isTeacher() {
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user cannot manage groups")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "only teachers can manage groups")
		return
	}

	var payload models.GroupRequest
	if err := decodeAndValidate(r, &payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
		return
	}

	updated, errCode, err := groupFromRequest(group.CourseID, payload)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid group settings")
		WriteErrResponse(w, http.StatusBadRequest, errCode, err.Error())
		return
	}
	updated.ID = group.ID
	updated.CreatedAt = group.CreatedAt

	if updated.Name != group.Name {
		exists, err := svc.DB.CheckGroupNameExists(group.CourseID, updated.Name)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to check group name")
			HandleDBError(w, err, "")
			return
		}
		if exists {
			logger.Warn().Str("name", updated.Name).Msg("Group name already in use")
			WriteErrResponse(w, http.StatusConflict, models.ErrCodeDuplicate, fmt.Sprintf("a group named %s already exists in this course", updated.Name))
			return
		}
	}

	saved, err := svc.DB.UpdateGroup(updated)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to update group in database")
		HandleDBError(w, err, "group not found")
		return
	}

	logger.Info().Str("group_id", saved.ID.String()).Msg("Group updated successfully")

	event := models.RosterEvent{
		Type:      models.EventGroupUpdated,
		CourseID:  saved.CourseID,
		GroupID:   &saved.ID,
		Timestamp: time.Now().Unix(),
	}
	if err := svc.Publisher.Publish(event); err != nil {
		logger.Error().Err(err).Msg("Failed to publish group event")
	}

	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.GroupResponse{Group: *saved}})

}

// DeleteGroupService deletes a group and its memberships.
func DeleteGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
		return
	}

	group, viewer, ok := loadGroupForViewer(svc, w, r, claims)
	if !ok {
		return
	}
	if !viewer.isTeacher() {
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user cannot manage groups")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "only teachers can manage groups")
		return
	}

	if err := svc.DB.DeleteGroup(group.ID); err != nil {
		logger.Error().Err(err).Str("group_id", group.ID.String()).Msg("Failed to delete group")
		HandleDBError(w, err, "group not found")
		return
	}

	logger.Info().Str("group_id", group.ID.String()).Msg("Group deleted successfully")

	event := models.RosterEvent{
		Type:      models.EventGroupDeleted,
		CourseID:  group.CourseID,
		GroupID:   &group.ID,
		Timestamp: time.Now().Unix(),
	}
	if err := svc.Publisher.Publish(event); err != nil {
		logger.Error().Err(err).Msg("Failed to publish group event")
	}

	WriteResponse(w, http.StatusNoContent, nil)

}

// groupFromRequest builds a Group from a validated request payload. The
// second return value is the error code for invalid settings.
func groupFromRequest(courseID uuid.UUID, payload models.GroupRequest) (models.Group, string, error) {
	level := visibility.All
	if payload.Visibility != "" {
		parsed, err := visibility.ParseLevel(payload.Visibility)
		if err != nil {
			return models.Group{}, models.ErrCodeValidation, err
		}
		level = parsed
	}

	// Participation requires members to see their own group, so hidden
	// levels cannot take activity submissions
	if payload.Participation && !level.AllowsParticipation() {
		return models.Group{}, models.ErrCodeValidation, fmt.Errorf("participation groups cannot use visibility %q", level)
	}

	return models.Group{
		CourseID:      courseID,
		Name:          payload.Name,
		IDNumber:      payload.IDNumber,
		Description:   payload.Description,
		Visibility:    level,
		Participation: payload.Participation,
	}, "", nil
}

// loadGroupForViewer parses the course and group IDs, loads the group and
// resolves the viewer. It writes the error response itself when it returns
// ok=false. Groups reached through the wrong course path are missing, not
// forbidden.
func loadGroupForViewer(svc *Service, w http.ResponseWriter, r *http.Request, claims authn.Claims) (*models.Group, *courseViewer, bool) {

	logger := zerolog.Ctx(r.Context())

	courseID, err := uuid.Parse(mux.Vars(r)["course-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid course ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "course-id must be a valid UUID")
		return nil, nil, false
	}

	groupID, err := uuid.Parse(mux.Vars(r)["group-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid group ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "group-id must be a valid UUID")
		return nil, nil, false
	}

	if _, err := svc.DB.GetCourse(courseID); err != nil {
		logger.Warn().Err(err).Str("course_id", courseID.String()).Msg("Could not retrieve course")
		HandleDBError(w, err, "course not found")
		return nil, nil, false
	}

	group, err := svc.DB.GetGroup(groupID)
	if err != nil {
		logger.Warn().Err(err).Str("group_id", groupID.String()).Msg("Could not retrieve group")
		HandleDBError(w, err, "group not found")
		return nil, nil, false
	}
	if group.CourseID != courseID {
		logger.Warn().Str("group_id", groupID.String()).Msg("Group does not belong to course")
		WriteErrResponse(w, http.StatusNotFound, models.ErrCodeNotFound, "group not found")
		return nil, nil, false
	}

	viewer, status, err := resolveViewer(svc, claims, courseID)
	if err != nil {
		logger.Warn().Err(err).Str("course_id", courseID.String()).Msg("Viewer not authorized for course")
		WriteErrResponse(w, status, models.ErrCodeForbidden, err.Error())
		return nil, nil, false
	}

	return group, viewer, true
}
