package handlers

import (
	"net/http"

	services "github.com/CampusHub/campushub-roster-services/api/services"
)

// @Summary Create a group in a course
// @Description Create a group with a visibility level of all, members, own or none. Participation groups must use a level that lets members see their own membership. Restricted to course teachers and platform administrators.
// @Tags groups
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param request body models.GroupRequest true "Group definition"
// @Success 201 {object} models.GroupResponse
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Failure 409 {object} string
// @Router /courses/{course-id}/groups [post]
func CreateGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateGroupService(svc, w, r)
	}
}

// @Summary List groups visible to the caller
// @Description List the course groups the caller is allowed to see. Teachers and platform administrators see every group, other participants only the groups their visibility level exposes.
// @Tags groups
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Success 200 {object} models.GroupsResponse
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Router /courses/{course-id}/groups [get]
func GetGroups(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetGroupsService(svc, w, r)
	}
}

// @Summary Get a single group
// @Description Get one group by id. Groups hidden from the caller return 404 rather than 403 so their existence is not revealed.
// @Tags groups
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param group-id path string true "Group ID" example(9d0c1a52-6a0f-4f2b-9b5e-5f7a1c3d2e4b)
// @Success 200 {object} models.GroupResponse
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Router /courses/{course-id}/groups/{group-id} [get]
func GetGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetGroupService(svc, w, r)
	}
}

// @Summary Update a group
// @Description Update a group's name, description, visibility or participation flag. Restricted to course teachers and platform administrators.
// @Tags groups
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param group-id path string true "Group ID" example(9d0c1a52-6a0f-4f2b-9b5e-5f7a1c3d2e4b)
// @Param request body models.GroupRequest true "Group definition"
// @Success 200 {object} models.GroupResponse
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Failure 409 {object} string
// @Router /courses/{course-id}/groups/{group-id} [put]
func UpdateGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.UpdateGroupService(svc, w, r)
	}
}

// @Summary Delete a group
// @Description Delete a group and its memberships. Restricted to course teachers and platform administrators.
// @Tags groups
// @Accept json
// @Produce json
// @Param course-id path string true "Course ID" example(4561dbc7-f2f9-4b9e-827e-3d0b32a7fc68)
// @Param group-id path string true "Group ID" example(9d0c1a52-6a0f-4f2b-9b5e-5f7a1c3d2e4b)
// @Success 204
// @Failure 400 {object} string
// @Failure 401 {object} string
// @Failure 403 {object} string
// @Failure 404 {object} string
// @Router /courses/{course-id}/groups/{group-id} [delete]
func DeleteGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.DeleteGroupService(svc, w, r)
	}
}
