package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/CampusHub/campushub-roster-services/internal/appconfig"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEmailClient struct {
	mock.Mock
}

func (m *mockEmailClient) SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	args := m.Called(ctx, input, opts)
	return args.Get(0).(*sesv2.SendEmailOutput), args.Error(1)
}

func newTestMailer(client EmailClient) *Mailer {
	cfg := &appconfig.Config{}
	cfg.Email.ServiceEmail = "roster@example.com"
	cfg.Email.HelpdeskEmail = "helpdesk@example.com"
	return NewMailer(client, cfg)
}

func TestSendEnrolmentWelcome(t *testing.T) {

	client := new(mockEmailClient)
	client.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(&sesv2.SendEmailOutput{}, nil)

	mailer := newTestMailer(client)

	user := models.User{ID: uuid.New(), Username: "student1", DisplayName: "Student One", Email: "student1@example.com"}
	course := models.Course{ID: uuid.New(), Name: "Linear Algebra", ShortName: "MATH201"}

	err := mailer.SendEnrolmentWelcome(context.Background(), user, course, models.RoleStudent)
	assert.NoError(t, err)

	client.AssertCalled(t, "SendEmail", mock.Anything, mock.MatchedBy(func(input *sesv2.SendEmailInput) bool {
		return input.FromEmailAddress != nil && *input.FromEmailAddress == "roster@example.com" &&
			len(input.Destination.ToAddresses) == 1 &&
			input.Destination.ToAddresses[0] == "student1@example.com" &&
			strings.Contains(*input.Content.Simple.Subject.Data, "Linear Algebra")
	}), mock.Anything)
}

func TestSendEnrolmentWelcomeSendFailure(t *testing.T) {

	client := new(mockEmailClient)
	client.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).
		Return((*sesv2.SendEmailOutput)(nil), errors.New("ses unavailable"))

	mailer := newTestMailer(client)

	user := models.User{ID: uuid.New(), Username: "student1", DisplayName: "Student One", Email: "student1@example.com"}
	course := models.Course{ID: uuid.New(), Name: "Linear Algebra", ShortName: "MATH201"}

	err := mailer.SendEnrolmentWelcome(context.Background(), user, course, models.RoleStudent)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "student1@example.com")
}
