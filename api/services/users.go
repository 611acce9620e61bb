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

// CreateUserService registers a new user. Only platform admins may create
// users directly; everyone else arrives through the student information
// system sync.
func CreateUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

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

	var payload models.UserRequest
	if err := decodeAndValidate(r, &payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
		return
	}

	// Usernames come from the identity provider and must be unique
	existing, err := svc.DB.GetUserByUsername(payload.Username)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		logger.Error().Err(err).Msg("Failed to check username")
		HandleDBError(w, err, "")
		return
	}
	if existing != nil {
		logger.Warn().Str("username", payload.Username).Msg("Username already in use")
		WriteErrResponse(w, http.StatusConflict, models.ErrCodeDuplicate, fmt.Sprintf("a user with username %s already exists", payload.Username))
		return
	}

	user, err := svc.DB.CreateUser(&payload)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create user in database")
		HandleDBError(w, err, "")
		return
	}

	logger.Info().Str("user_id", user.ID.String()).Msg("User created successfully")

	var location = fmt.Sprintf("%s/%s", r.URL.Path, user.ID)
	WriteResponse(w, http.StatusCreated, models.Response{Success: 1, Data: models.UserResponse{User: *user}}, location)

}

// GetUserService retrieves a single user by ID.
func GetUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	_, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteErrResponse(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing claims")
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

	logger.Info().Str("user_id", user.ID.String()).Msg("Successfully retrieved user")
	WriteResponse(w, http.StatusOK, models.Response{Success: 1, Data: models.UserResponse{User: *user}})

}

// DeleteUserService removes a user along with their enrolments and group
// memberships. Only platform admins may delete users.
func DeleteUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

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

	userID, err := uuid.Parse(mux.Vars(r)["user-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user ID")
		WriteErrResponse(w, http.StatusBadRequest, models.ErrCodeValidation, "user-id must be a valid UUID")
		return
	}

	if _, err := svc.DB.GetUser(userID); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Could not retrieve user")
		HandleDBError(w, err, "user not found")
		return
	}

	if err := svc.DB.DeleteUser(userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete user")
		HandleDBError(w, err, "")
		return
	}

	logger.Info().Str("user_id", userID.String()).Msg("User deleted successfully")
	WriteResponse(w, http.StatusNoContent, nil)

}
