package cmd

import (
	"fmt"
	"net/http"
	"path"

	"github.com/CampusHub/campushub-roster-services/api/handlers"
	"github.com/CampusHub/campushub-roster-services/api/middleware"
	"github.com/CampusHub/campushub-roster-services/api/services"
	docs "github.com/CampusHub/campushub-roster-services/docs"
	awsclient "github.com/CampusHub/campushub-roster-services/internal/aws"
	"github.com/CampusHub/campushub-roster-services/internal/events"
	"github.com/CampusHub/campushub-roster-services/internal/notify"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title CampusHub Roster Services API
// @version v1
// @description This is the API for the CampusHub Roster Services.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer rosterDB.Close()

		// Initialize event publisher
		publisher, err := events.NewEventPublisher(appCfg.Pulsar.URL, appCfg.Pulsar.TopicProducer)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event publisher")
		}
		defer publisher.Close()

		service := &services.Service{
			Config:    appCfg,
			DB:        rosterDB,
			Publisher: publisher,
		}

		// Deployments without SES run without welcome emails
		if appCfg.Email.ServiceEmail != "" {
			awsCfg, err := awsclient.LoadAWSConfig(appCfg.AWS.Region)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to load AWS config for SES")
			}
			service.Mailer = notify.NewMailer(awsclient.NewSESClient(awsCfg), appCfg)
		}

		// Create routes
		r := mux.NewRouter()

		// Register the routes
		api := r.PathPrefix(appCfg.BasePath).Subrouter()

		// Apply the middleware to the API routes
		api.Use(middleware.WithLogger)
		api.Use(middleware.JWTAuth)

		// Course routes
		api.HandleFunc("/courses", handlers.CreateCourse(service)).Methods(http.MethodPost)
		api.HandleFunc("/courses", handlers.GetCourses(service)).Methods(http.MethodGet)
		api.HandleFunc("/courses/{course-id}", handlers.GetCourse(service)).Methods(http.MethodGet)
		api.HandleFunc("/courses/{course-id}", handlers.DeleteCourse(service)).Methods(http.MethodDelete)

		// User routes
		api.HandleFunc("/users", handlers.CreateUser(service)).Methods(http.MethodPost)
		api.HandleFunc("/users/{user-id}", handlers.GetUser(service)).Methods(http.MethodGet)
		api.HandleFunc("/users/{user-id}", handlers.DeleteUser(service)).Methods(http.MethodDelete)

		// Participant routes. The import route is registered before the
		// {user-id} routes so "import" is never read as a user id.
		api.HandleFunc("/courses/{course-id}/participants/import", handlers.ImportParticipants(service)).Methods(http.MethodPost)
		api.HandleFunc("/courses/{course-id}/participants", handlers.GetParticipants(service)).Methods(http.MethodGet)
		api.HandleFunc("/courses/{course-id}/participants/{user-id}", handlers.EnrolUser(service)).Methods(http.MethodPut)
		api.HandleFunc("/courses/{course-id}/participants/{user-id}", handlers.UnenrolUser(service)).Methods(http.MethodDelete)

		// Group routes
		api.HandleFunc("/courses/{course-id}/groups", handlers.CreateGroup(service)).Methods(http.MethodPost)
		api.HandleFunc("/courses/{course-id}/groups", handlers.GetGroups(service)).Methods(http.MethodGet)
		api.HandleFunc("/courses/{course-id}/groups/{group-id}", handlers.GetGroup(service)).Methods(http.MethodGet)
		api.HandleFunc("/courses/{course-id}/groups/{group-id}", handlers.UpdateGroup(service)).Methods(http.MethodPut)
		api.HandleFunc("/courses/{course-id}/groups/{group-id}", handlers.DeleteGroup(service)).Methods(http.MethodDelete)

		// Group member routes
		api.HandleFunc("/courses/{course-id}/groups/{group-id}/members", handlers.GetGroupMembers(service)).Methods(http.MethodGet)
		api.HandleFunc("/courses/{course-id}/groups/{group-id}/members/{user-id}", handlers.AddGroupMember(service)).Methods(http.MethodPut)
		api.HandleFunc("/courses/{course-id}/groups/{group-id}/members/{user-id}", handlers.RemoveGroupMember(service)).Methods(http.MethodDelete)

		// Docs
		docs.SwaggerInfo.Host = appCfg.Host
		docs.SwaggerInfo.BasePath = appCfg.BasePath
		r.PathPrefix(appCfg.DocsPath).Handler(httpSwagger.Handler(
			httpSwagger.URL(path.Join(appCfg.DocsPath, "/doc.json")),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("none"),
			httpSwagger.DomID("swagger-ui"),
		)).Methods(http.MethodGet)

		// The LMS frontend calls this API from the browser
		handler := cors.New(cors.Options{
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler(r)

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", host, port),
			handler); err != nil {

			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")

}
