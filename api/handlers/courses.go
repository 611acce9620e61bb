package handlers

import (
	"net/http"

	services "github.com/CampusHub/campushub-roster-services/api/services"
	_ "github.com/lib/pq"
)

func CreateCourse(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateCourseService(svc, w, r)
	}
}

func GetCourses(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetCoursesService(svc, w, r)
	}
}

func GetCourse(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetCourseService(svc, w, r)
	}
}

func DeleteCourse(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.DeleteCourseService(svc, w, r)
	}
}
