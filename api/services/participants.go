package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
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

// GetParticipantsService retrieves the course roster. Each participant row
// carries the groups the viewer is allowed to see for that participant, so
// two viewers of the same roster can receive different group columns.
func GetParticipantsService(svc *Service, w http.ResponseWriter, r *http.Request) {

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

	participants, err := svc.DB.GetCourseParticipants(courseID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve participants from database")
		HandleDBError(w, err, "")
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

	vGroups := toVisibilityGroups(groups)
	vMemberships := toVisibilityMemberships(memberships)

	// Optionally restrict the roster to members of one group. A group the
	// viewer cannot see is reported as missing, not forbidden.
	if groupParam := r.URL.Query().Get("group-id"); groupParam != "" {
		groupID, err := uuid.Parse(groupParam)
		if err != nil {
			logger.Warn().Err(err).Msg("Invalid group ID filter")
			WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "group-id must be a valid UUID")
			return
		}

		group, found := lo.Find(vGroups, func(g visibility.Group) bool { return g.ID == groupID })
		if !found || !visibility.VisibleToViewer(viewer.asViewer(), group, vMemberships) {
			logger.Warn().Str("group_id", groupID.String()).Msg("Group filter does not match a visible group")
			WriteErrResponse(w, http.StatusNotFound, models.ErrCodeNotFound, "group not found")
			return
		}

		memberSet := make(map[uuid.UUID]struct{})
		for _, m := range memberships {
			if m.GroupID == groupID {
				memberSet[m.UserID] = struct{}{}
			}
		}
		participants = lo.Filter(participants, func(p models.Participant, _ int) bool {
			_, ok := memberSet[p.UserID]
			return ok
		})
	}

	targets := lo.Map(participants, func(p models.Participant, _ int) uuid.UUID { return p.UserID })
	roster := visibility.Roster(viewer.asViewer(), targets, vGroups, vMemberships)

	for i := range participants {
		visible := roster[participants[i].UserID]
		participants[i].Groups = toGroupSummaries(visible)
		participants[i].GroupsLabel = visibility.Label(visible)
	}

	logger.Info().Int("participant_count", len(participants)).Msg("Successfully retrieved participants")
	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.ParticipantsResponse{Participants: participants}})

}

// EnrolUserService enrols a user in a course with the requested role. Only
// course teachers and platform admins may change the roster.
func EnrolUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

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

	userID, err := uuid.Parse(mux.Vars(r)["user-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "user-id must be a valid UUID")
		return
	}

	course, err := svc.DB.GetCourse(courseID)
	if err != nil {
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
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user cannot manage the roster")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "only teachers can manage the roster")
		return
	}

	user, err := svc.DB.GetUser(userID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Could not retrieve user")
		HandleDBError(w, err, "user not found")
		return
	}

	var payload models.EnrolmentRequest
	if err := decodeAndValidate(r, &payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
		return
	}

	exists, err := svc.DB.CheckEnrolmentExists(courseID, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to check enrolment")
		HandleDBError(w, err, "")
		return
	}
	if exists {
		logger.Warn().Str("user_id", userID.String()).Msg("User already enrolled")
		WriteErrResponse(w, http.StatusConflict, models.ErrCodeDuplicate, fmt.Sprintf("user %s is already enrolled", user.Username))
		return
	}

	enrolment, err := svc.DB.Enrol(courseID, userID, payload.RoleName)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to enrol user")
		HandleDBError(w, err, "")
		return
	}

	logger.Info().Str("course_id", courseID.String()).Str("user_id", userID.String()).Str("role", enrolment.RoleName).Msg("User enrolled successfully")

	// The enrolment is committed at this point, so event and email failures
	// are logged rather than surfaced to the caller
	event := models.RosterEvent{
		Type:      models.EventUserEnrolled,
		CourseID:  courseID,
		UserID:    &userID,
		RoleName:  enrolment.RoleName,
		Timestamp: time.Now().Unix(),
	}
	if err := svc.Publisher.Publish(event); err != nil {
		logger.Error().Err(err).Msg("Failed to publish enrolment event")
	}

	// Email is optional; deployments without SES leave the mailer unset
	if svc.Mailer != nil {
		if err := svc.Mailer.SendEnrolmentWelcome(r.Context(), *user, *course, enrolment.RoleName); err != nil {
			logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to send enrolment email")
		}
	}

	WriteResponse(w, http.StatusNoContent, nil)

}

// UnenrolUserService removes a user from a course. Their memberships in the
// course's groups are removed in the same transaction.
func UnenrolUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

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

	userID, err := uuid.Parse(mux.Vars(r)["user-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "user-id must be a valid UUID")
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
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user cannot manage the roster")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "only teachers can manage the roster")
		return
	}

	if err := svc.DB.Unenrol(courseID, userID); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to unenrol user")
		HandleDBError(w, err, "enrolment not found")
		return
	}

	logger.Info().Str("course_id", courseID.String()).Str("user_id", userID.String()).Msg("User unenrolled successfully")

	event := models.RosterEvent{
		Type:      models.EventUserUnenrolled,
		CourseID:  courseID,
		UserID:    &userID,
		Timestamp: time.Now().Unix(),
	}
	if err := svc.Publisher.Publish(event); err != nil {
		logger.Error().Err(err).Msg("Failed to publish unenrolment event")
	}

	WriteResponse(w, http.StatusNoContent, nil)

}

// ImportParticipantsService bulk enrols users from a CSV body of
// username,role lines. Rows that cannot be enrolled are reported per line
// without aborting the rest of the import.
func ImportParticipantsService(svc *Service, w http.ResponseWriter, r *http.Request) {

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

	course, err := svc.DB.GetCourse(courseID)
	if err != nil {
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
		logger.Warn().Str("username", claims.Username).Msg("Access denied: user cannot manage the roster")
		WriteErrResponse(w, http.StatusForbidden, models.ErrCodeForbidden, "only teachers can manage the roster")
		return
	}

	reader := csv.NewReader(r.Body)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	type importRow struct {
		line     int
		username string
		roleName string
	}

	var rows []importRow
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn().Err(err).Int("line", line).Msg("Malformed CSV line")
			WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, fmt.Sprintf("malformed CSV on line %d: %v", line, err))
			return
		}

		// Tolerate an optional header line
		if line == 1 && strings.EqualFold(record[0], "username") {
			continue
		}

		rows = append(rows, importRow{
			line:     line,
			username: strings.TrimSpace(record[0]),
			roleName: strings.ToLower(strings.TrimSpace(record[1])),
		})
	}

	usernames := lo.Map(rows, func(row importRow, _ int) string { return row.username })
	users, err := svc.DB.GetUsersByUsernames(usernames)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to look up users for import")
		HandleDBError(w, err, "")
		return
	}
	usersByName := lo.KeyBy(users, func(u models.User) string { return u.Username })

	response := models.ImportResponse{Results: []models.ImportEntry{}}
	for _, row := range rows {
		entry := models.ImportEntry{Line: row.line, Username: row.username, RoleName: row.roleName}

		user, found := usersByName[row.username]
		switch {
		case !found:
			entry.Status = "error"
			entry.Error = "unknown user"
		case row.roleName != models.RoleTeacher && row.roleName != models.RoleStudent:
			entry.Status = "error"
			entry.Error = fmt.Sprintf("invalid role %q", row.roleName)
		default:
			exists, err := svc.DB.CheckEnrolmentExists(courseID, user.ID)
			if err != nil {
				entry.Status = "error"
				entry.Error = err.Error()
				break
			}
			if exists {
				entry.Status = "skipped"
				entry.Error = "already enrolled"
				response.Skipped++
				break
			}

			enrolment, err := svc.DB.Enrol(courseID, user.ID, row.roleName)
			if err != nil {
				entry.Status = "error"
				entry.Error = err.Error()
				break
			}

			entry.Status = "enrolled"
			response.Enrolled++

			event := models.RosterEvent{
				Type:      models.EventUserEnrolled,
				CourseID:  courseID,
				UserID:    &user.ID,
				RoleName:  enrolment.RoleName,
				Timestamp: time.Now().Unix(),
			}
			if err := svc.Publisher.Publish(event); err != nil {
				logger.Error().Err(err).Str("username", user.Username).Msg("Failed to publish enrolment event")
			}

			if svc.Mailer != nil {
				if err := svc.Mailer.SendEnrolmentWelcome(r.Context(), user, *course, enrolment.RoleName); err != nil {
					logger.Error().Err(err).Str("username", user.Username).Msg("Failed to send enrolment email")
				}
			}
		}

		response.Results = append(response.Results, entry)
	}

	logger.Info().Int("enrolled", response.Enrolled).Int("skipped", response.Skipped).Msg("Participant import finished")
	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: response})

}
