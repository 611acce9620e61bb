package handlers

import (
	"net/http"

	services "github.com/CampusHub/campushub-roster-services/api/services"
)

// @Summary List course participants
// @Description List every enrolled user in a course together with the groups the caller is allowed to see. Group names are joined into a label, with "No groups" shown for participants with no visible memberships. Pass group-id to restrict the roster to members of one visible group.
// @Tags participants
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param group-id query string false "Restrict to members of this group" example(9d0c1a52-6a0f-4f2b-9b5e-5f7a1c3d2e4b)
// @Success 200 {object} models.ParticipantsResponse
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Failure 500 {object} string
// @Router /courses/{course-id}/participants [get]
func GetParticipants(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetParticipantsService(svc, w, r)
	}
}

// @Summary Enrol a user in a course
// @Description Enrol an existing user in a course with the given role. Restricted to course teachers and platform administrators. Sends the welcome email and publishes an enrolment event on success.
// @Tags participants
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param user-id path string true "User ID" example(1a2b3c4d-0f9e-4d3c-8b7a-6e5f4d3c2b1a)
// @Success 204
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Failure 409 {object} string
// @Router /courses/{course-id}/participants/{user-id} [put]
func EnrolUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.EnrolUserService(svc, w, r)
	}
}

// @Summary Unenrol a user from a course
// @Description Remove a user's enrolment and their group memberships in the course. Restricted to course teachers and platform administrators.
// @Tags participants
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param user-id path string true "User ID" example(1a2b3c4d-0f9e-4d3c-8b7a-6e5f4d3c2b1a)
// @Success 204
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Router /courses/{course-id}/participants/{user-id} [delete]
func UnenrolUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.UnenrolUserService(svc, w, r)
	}
}

// @Summary Bulk enrol users from CSV
// @Description Enrol users from a CSV body of username,role lines. Each line is reported individually so a bad line does not abort the import. Restricted to course teachers and platform administrators.
// @Tags participants
// @Accept text/csv
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Success 200 {object} models.ImportResponse
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Router /courses/{course-id}/participants/import [post]
func ImportParticipants(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.ImportParticipantsService(svc, w, r)
	}
}
