// Package notify sends roster notification emails through AWS SES.
package notify

import (
	"context"
	"fmt"

	"github.com/CampusHub/campushub-roster-services/internal/appconfig"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailClient is the part of the SES v2 API the mailer depends on.
type EmailClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer builds and sends roster emails from the configured service address.
type Mailer struct {
	Client        EmailClient
	ServiceEmail  string
	HelpdeskEmail string
}

// NewMailer creates a Mailer using the email addresses from the service
// configuration.
func NewMailer(client EmailClient, cfg *appconfig.Config) *Mailer {
	return &Mailer{
		Client:        client,
		ServiceEmail:  cfg.Email.ServiceEmail,
		HelpdeskEmail: cfg.Email.HelpdeskEmail,
	}
}

// SendEnrolmentWelcome emails a newly enrolled user their course details.
func (m *Mailer) SendEnrolmentWelcome(ctx context.Context, user models.User, course models.Course, roleName string) error {
	subject := fmt.Sprintf("You have been enrolled in %s", course.Name)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"You have been enrolled in %s (%s) as a %s.\r\n\r\n"+
			"If you believe this is a mistake, contact %s.\r\n",
		user.DisplayName, course.Name, course.ShortName, roleName, m.HelpdeskEmail,
	)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.ServiceEmail),
		Destination: &types.Destination{
			ToAddresses: []string{user.Email},
		},
		ReplyToAddresses: []string{m.HelpdeskEmail},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := m.Client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("could not send enrolment email to %s: %w", user.Email, err)
	}

	return nil
}
