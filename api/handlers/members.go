package handlers

import (
	"net/http"

	services "github.com/CampusHub/campushub-roster-services/api/services"
)

// @Summary List group members visible to the caller
// @Description List the members of a group, filtered by the caller's visibility. In an own-members group a non-teacher sees only themselves. Hidden groups return 404.
// @Tags groups
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param group-id path string true "Group ID" example(9d0c1a52-6a0f-4f2b-9b5e-5f7a1c3d2e4b)
// @Success 200 {object} models.GroupMembersResponse
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Router /courses/{course-id}/groups/{group-id}/members [get]
func GetGroupMembers(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetGroupMembersService(svc, w, r)
	}
}

// @Summary Add a user to a group
// @Description Add an enrolled user to a group. Users not enrolled in the course are rejected with 409. Restricted to course teachers and platform administrators.
// @Tags groups
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param group-id path string true "Group ID" example(9d0c1a52-6a0f-4f2b-9b5e-5f7a1c3d2e4b)
// @Param user-id path string true "User ID" example(1a2b3c4d-0f9e-4d3c-8b7a-6e5f4d3c2b1a)
// @Success 204
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Failure 409 {object} string
// @Router /courses/{course-id}/groups/{group-id}/members/{user-id} [put]
func AddGroupMember(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.AddGroupMemberService(svc, w, r)
	}
}

// @Summary Remove a user from a group
// @Description Remove a user's membership of a group. Restricted to course teachers and platform administrators.
// @Tags groups
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param group-id path string true "Group ID" example(9d0c1a52-6a0f-4f2b-9b5e-5f7a1c3d2e4b)
// @Param user-id path string true "User ID" example(1a2b3c4d-0f9e-4d3c-8b7a-6e5f4d3c2b1a)
// @Success 204
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Router /courses/{course-id}/groups/{group-id}/members/{user-id} [delete]
func RemoveGroupMember(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.RemoveGroupMemberService(svc, w, r)
	}
}
