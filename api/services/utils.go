package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/CampusHub/campushub-roster-services/db"
	"github.com/CampusHub/campushub-roster-services/internal/authn"
	"github.com/CampusHub/campushub-roster-services/internal/visibility"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

var validate = validator.New()

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return // **Return immediately to avoid multiple WriteHeader calls**
		}
	}
}

// WriteErrResponse writes an error envelope with the given code and details.
func WriteErrResponse(w http.ResponseWriter, statusCode int, errCode, details string) {
	WriteResponse(w, statusCode, models.Response{
		Success:      0,
		ErrorCode:    errCode,
		ErrorDetails: details,
	})
}

// HandleDBError maps a storage failure onto the response envelope. Missing
// rows become 404s and pq errors surface their code name.
func HandleDBError(w http.ResponseWriter, err error, notFoundDetails string) {
	if errors.Is(err, db.ErrNotFound) {
		WriteErrResponse(w, http.StatusNotFound, models.ErrCodeNotFound, notFoundDetails)
		return
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		WriteErrResponse(w, http.StatusInternalServerError, pqErr.Code.Name(), pqErr.Message)
		return
	}

	WriteErrResponse(w, http.StatusInternalServerError, "", err.Error())
}

// decodeAndValidate decodes the JSON request body and applies the payload's
// validation tags.
func decodeAndValidate(r *http.Request, payload interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return err
	}
	return validate.Struct(payload)
}

// courseViewer is the authenticated caller resolved against one course.
type courseViewer struct {
	user      models.User
	enrolment *models.Enrolment
	isAdmin   bool
}

// isTeacher reports whether the viewer can manage the course roster and see
// every group regardless of visibility.
func (v *courseViewer) isTeacher() bool {
	return v.isAdmin || (v.enrolment != nil && v.enrolment.RoleName == models.RoleTeacher)
}

// asViewer projects the resolved caller into the visibility filter's form.
func (v *courseViewer) asViewer() visibility.Viewer {
	return visibility.Viewer{UserID: v.user.ID, CanSeeAllGroups: v.isTeacher()}
}

// resolveViewer loads the caller's user record and their enrolment in the
// course. Platform admins resolve without either; everyone else must be
// enrolled. The returned status is zero on success.
func resolveViewer(svc *Service, claims authn.Claims, courseID uuid.UUID) (*courseViewer, int, error) {
	viewer := &courseViewer{isAdmin: claims.HasRole(PlatformAdminRole)}

	user, err := svc.DB.GetUserByUsername(claims.Username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			if viewer.isAdmin {
				return viewer, 0, nil
			}
			return nil, http.StatusForbidden, fmt.Errorf("no roster user matches username %s", claims.Username)
		}
		return nil, http.StatusInternalServerError, err
	}
	viewer.user = *user

	enrolment, err := svc.DB.GetEnrolment(courseID, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			if viewer.isAdmin {
				return viewer, 0, nil
			}
			return nil, http.StatusForbidden, fmt.Errorf("user %s is not enrolled in this course", claims.Username)
		}
		return nil, http.StatusInternalServerError, err
	}
	viewer.enrolment = enrolment

	return viewer, 0, nil
}

// toVisibilityGroups projects stored groups into the filter's snapshot form.
func toVisibilityGroups(groups []models.Group) []visibility.Group {
	return lo.Map(groups, func(g models.Group, _ int) visibility.Group {
		return visibility.Group{ID: g.ID, Name: g.Name, Level: g.Visibility}
	})
}

// toVisibilityMemberships projects stored memberships into the filter's form.
func toVisibilityMemberships(memberships []models.GroupMember) []visibility.Membership {
	return lo.Map(memberships, func(m models.GroupMember, _ int) visibility.Membership {
		return visibility.Membership{GroupID: m.GroupID, UserID: m.UserID}
	})
}

// toGroupSummaries converts filtered groups into the API summary form.
func toGroupSummaries(groups []visibility.Group) []models.GroupSummary {
	return lo.Map(groups, func(g visibility.Group, _ int) models.GroupSummary {
		return models.GroupSummary{ID: g.ID, Name: g.Name}
	})
}
