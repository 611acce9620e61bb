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

// GetGroupMembersService lists the members of a group that the viewer may
// see. In an "own" visibility group a student sees only themselves.
func GetGroupMembersService(svc *Service, w http.ResponseWriter, r *http.Request) {

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
	vMemberships := toVisibilityMemberships(memberships)

	vGroup := visibility.Group{ID: group.ID, Name: group.Name, Level: group.Visibility}
	if !visibility.VisibleToViewer(viewer.asViewer(), vGroup, vMemberships) {
		logger.Warn().Str("group_id", group.ID.String()).Msg("Group not visible to viewer")
		WriteErrResponse(w, http.StatusNotFound, models.ErrCodeNotFound, "group not found")
		return
	}

	members, err := svc.DB.GetGroupMembers(group.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve group members from database")
		HandleDBError(w, err, "")
		return
	}

	memberIDs := lo.Map(members, func(u models.User, _ int) uuid.UUID { return u.ID })
	visibleIDs := visibility.VisibleMembers(viewer.asViewer(), vGroup, memberIDs, vMemberships)
	visibleSet := lo.SliceToMap(visibleIDs, func(id uuid.UUID) (uuid.UUID, struct{}) { return id, struct{}{} })
	members = lo.Filter(members, func(u models.User, _ int) bool {
		_, ok := visibleSet[u.ID]
		return ok
	})

	logger.Info().Int("member_count", len(members)).Msg("Successfully retrieved group members")
	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.GroupMembersResponse{Members: members}})

}

// AddGroupMemberService adds an enrolled user to a group. Only course
// teachers and platform admins may manage membership.
func AddGroupMemberService(svc *Service, w http.ResponseWriter, r *http.Request) {

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
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user cannot manage group members")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "only teachers can manage group members")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["user-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "user-id must be a valid UUID")
		return
	}

	user, err := svc.DB.GetUser(userID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Could not retrieve user")
		HandleDBError(w, err, "user not found")
		return
	}

	// Group membership is scoped to the course roster
	enrolled, err := svc.DB.CheckEnrolmentExists(group.CourseID, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to check enrolment")
		HandleDBError(w, err, "")
		return
	}
	if !enrolled {
		logger.Warn().Str("user_id", userID.String()).Msg("User not enrolled in course")
		WriteErrResponse(w, http.StatusConflict, models.ErrCodeNotEnrolled, fmt.Sprintf("user %s is not enrolled in this course", user.Username))
		return
	}

	exists, err := svc.DB.CheckGroupMemberExists(group.ID, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to check group membership")
		HandleDBError(w, err, "")
		return
	}
	if exists {
		logger.Warn().Str("user_id", userID.String()).Msg("User already a group member")
		WriteErrResponse(w, http.StatusConflict, models.ErrCodeDuplicate, fmt.Sprintf("user %s is already a member of this group", user.Username))
		return
	}

	if err := svc.DB.AddGroupMember(group.ID, userID); err != nil {
		logger.Error().Err(err).Msg("Failed to add group member")
		HandleDBError(w, err, "")
		return
	}

	logger.Info().Str("group_id", group.ID.String()).Str("user_id", userID.String()).Msg("Group member added successfully")

	event := models.RosterEvent{
		Type:      models.EventMemberAdded,
		CourseID:  group.CourseID,
		GroupID:   &group.ID,
		UserID:    &userID,
		Timestamp: time.Now().Unix(),
	}
	if err := svc.Publisher.Publish(event); err != nil {
		logger.Error().Err(err).Msg("Failed to publish membership event")
	}

	WriteResponse(w, http.StatusNoContent, nil)

}

// RemoveGroupMemberService removes a user from a group.
func RemoveGroupMemberService(svc *Service, w http.ResponseWriter, r *http.Request) {

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
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user cannot manage group members")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "only teachers can manage group members")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["user-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "user-id must be a valid UUID")
		return
	}

	if err := svc.DB.RemoveGroupMember(group.ID, userID); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to remove group member")
		HandleDBError(w, err, "membership not found")
		return
	}

	logger.Info().Str("group_id", group.ID.String()).Str("user_id", userID.String()).Msg("Group member removed successfully")

	event := models.RosterEvent{
		Type:      models.EventMemberRemoved,
		CourseID:  group.CourseID,
		GroupID:   &group.ID,
		UserID:    &userID,
		Timestamp: time.Now().Unix(),
	}
	if err := svc.Publisher.Publish(event); err != nil {
		logger.Error().Err(err).Msg("Failed to publish membership event")
	}

	WriteResponse(w, http.StatusNoContent, nil)

}
