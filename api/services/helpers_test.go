package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/CampusHub/campushub-roster-services/api/middleware"
	"github.com/CampusHub/campushub-roster-services/internal/appconfig"
	"github.com/CampusHub/campushub-roster-services/internal/authn"
	"github.com/CampusHub/campushub-roster-services/internal/visibility"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// testClaims builds gateway claims for a username with optional realm roles.
func testClaims(username string, roles ...string) authn.Claims {
	claims := authn.Claims{Username: username}
	claims.RealmAccess.Roles = roles
	return claims
}

// withClaims attaches claims to the request context the way the JWT
// middleware does.
func withClaims(r *http.Request, claims authn.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ClaimsKey, claims)
	return r.WithContext(ctx)
}

func newTestService(store *MockRosterStore, publisher *MockEventPublisher, mailer *MockMailer) *Service {
	svc := &Service{Config: &appconfig.Config{}, DB: store, Publisher: publisher}
	if mailer != nil {
		svc.Mailer = mailer
	}
	return svc
}

// decodeEnvelope unmarshals a response envelope and decodes its data payload
// into out when provided.
func decodeEnvelope(t *testing.T, body io.Reader, out interface{}) models.Response {
	t.Helper()

	raw, err := io.ReadAll(body)
	assert.NoError(t, err)

	var envelope struct {
		Success      int             `json:"success"`
		ErrorCode    string          `json:"error_code"`
		ErrorDetails string          `json:"error_details"`
		Data         json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &envelope))

	if out != nil && len(envelope.Data) > 0 {
		assert.NoError(t, json.Unmarshal(envelope.Data, out))
	}

	return models.Response{
		Success:      envelope.Success,
		ErrorCode:    envelope.ErrorCode,
		ErrorDetails: envelope.ErrorDetails,
	}
}

// rosterFixture is a course with one teacher, eight students and six groups
// covering every visibility level.
type rosterFixture struct {
	course       models.Course
	users        map[string]models.User
	enrolments   map[string]models.Enrolment
	groups       []models.Group
	groupsByName map[string]models.Group
	memberships  []models.GroupMember
	participants []models.Participant
}

func newServiceFixture() *rosterFixture {
	f := &rosterFixture{
		course: models.Course{
			ID:        uuid.New(),
			Name:      "Linear Algebra",
			ShortName: "MATH201",
			IDNumber:  aws.String("LA-201"),
			CreatedAt: time.Now().UTC(),
		},
		users:        make(map[string]models.User),
		enrolments:   make(map[string]models.Enrolment),
		groupsByName: make(map[string]models.Group),
	}

	addUser := func(username, roleName string) {
		user := models.User{
			ID:          uuid.New(),
			Username:    username,
			DisplayName: username,
			Email:       username + "@example.com",
		}
		f.users[username] = user
		f.enrolments[username] = models.Enrolment{
			CourseID: f.course.ID,
			UserID:   user.ID,
			RoleName: roleName,
		}
		f.participants = append(f.participants, models.Participant{
			UserID:      user.ID,
			Username:    username,
			DisplayName: username,
			RoleName:    roleName,
		})
	}

	addUser("teacher1", models.RoleTeacher)
	for _, username := range []string{"student1", "student2", "student3", "student4", "student5", "student6", "student7", "student8"} {
		addUser(username, models.RoleStudent)
	}

	addGroup := func(name string, level visibility.Level, participation bool) {
		group := models.Group{
			ID:            uuid.New(),
			CourseID:      f.course.ID,
			Name:          name,
			Visibility:    level,
			Participation: participation,
			CreatedAt:     time.Now().UTC(),
		}
		f.groups = append(f.groups, group)
		f.groupsByName[name] = group
	}

	addGroup("Announcements", visibility.All, true)
	addGroup("Breakout A", visibility.All, true)
	addGroup("Chess Club", visibility.Members, true)
	addGroup("Debate", visibility.Members, true)
	addGroup("Essay Review", visibility.Own, false)
	addGroup("Flagged", visibility.None, false)

	addMember := func(groupName, username string) {
		f.memberships = append(f.memberships, models.GroupMember{
			GroupID:   f.groupsByName[groupName].ID,
			UserID:    f.users[username].ID,
			TimeAdded: time.Now().UTC(),
		})
	}

	addMember("Announcements", "student1")
	addMember("Breakout A", "student1")
	addMember("Announcements", "student5")
	addMember("Breakout A", "student5")
	addMember("Chess Club", "student2")
	addMember("Debate", "student3")
	addMember("Essay Review", "student4")
	addMember("Flagged", "student6")
	addMember("Flagged", "student7")

	return f
}

// expectViewer primes the store calls resolveViewer makes for the username.
func (f *rosterFixture) expectViewer(store *MockRosterStore, username string) {
	user := f.users[username]
	enrolment := f.enrolments[username]
	store.On("GetUserByUsername", username).Return(&user, nil)
	store.On("GetEnrolment", f.course.ID, user.ID).Return(&enrolment, nil)
}
