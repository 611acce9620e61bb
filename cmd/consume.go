package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CampusHub/campushub-roster-services/db"
	"github.com/CampusHub/campushub-roster-services/internal/events"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Run the Pulsar consumer to process enrolment messages from the student information system",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer rosterDB.Close()

		// Initialize the sync consumer
		consumer, err := events.NewSyncConsumer(appCfg.Pulsar.URL, appCfg.Pulsar.TopicConsumer, appCfg.Pulsar.Subscription)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize sync consumer")
		}
		defer consumer.Close()

		// Consume messages
		for {
			msg, err := consumer.ReceiveMessage(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("Error receiving message")
				continue
			}

			log.Debug().Str("payload", string(msg.Payload())).Msg("Received sync message")

			var payload models.SyncMessagePayload
			if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
				// Redelivery cannot fix a malformed payload; nacking moves
				// it to the DLQ once the delivery limit is reached
				log.Error().Err(err).Msg("Error unmarshaling sync message")
				consumer.Nack(msg)
				continue
			}

			if err := applySyncMessage(payload); err != nil {
				log.Error().Err(err).Str("correlation_id", payload.CorrelationID).Msg("Failed to apply sync message")
				consumer.Nack(msg)
				continue
			}

			consumer.Ack(msg)
		}

	},
}

// applySyncMessage applies one student information system action to the
// enrolment store. Actions that were already applied succeed again so
// redelivered messages are harmless.
func applySyncMessage(payload models.SyncMessagePayload) error {
	course, err := rosterDB.GetCourseByShortName(payload.CourseShortName)
	if err != nil {
		return fmt.Errorf("course %s: %w", payload.CourseShortName, err)
	}

	user, err := rosterDB.GetUserByUsername(payload.Username)
	if err != nil {
		return fmt.Errorf("user %s: %w", payload.Username, err)
	}

	switch payload.Action {
	case models.SyncActionEnrol:
		exists, err := rosterDB.CheckEnrolmentExists(course.ID, user.ID)
		if err != nil {
			return err
		}
		if exists {
			log.Debug().Str("username", payload.Username).Str("course", payload.CourseShortName).Msg("Already enrolled, skipping")
			return nil
		}

		roleName := payload.RoleName
		if roleName == "" {
			roleName = models.RoleStudent
		}
		if _, err := rosterDB.Enrol(course.ID, user.ID, roleName); err != nil {
			return err
		}
		log.Info().Str("username", payload.Username).Str("course", payload.CourseShortName).Msg("Enrolled user from sync feed")

	case models.SyncActionUnenrol:
		if err := rosterDB.Unenrol(course.ID, user.ID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				log.Debug().Str("username", payload.Username).Str("course", payload.CourseShortName).Msg("Not enrolled, skipping")
				return nil
			}
			return err
		}
		log.Info().Str("username", payload.Username).Str("course", payload.CourseShortName).Msg("Unenrolled user from sync feed")

	default:
		return fmt.Errorf("unknown sync action %q", payload.Action)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}
