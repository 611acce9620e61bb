package cmd

import (
	"time"

	"github.com/CampusHub/campushub-roster-services/internal/events"
	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Prune group memberships whose user is no longer enrolled in the course",
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

		// Memberships go stale when an external writer unenrols a user
		// without going through this service
		orphans, err := rosterDB.GetOrphanMemberships()
		if err != nil {
			log.Fatal().Err(err).Msg("Error fetching orphan memberships")
		}

		log.Info().Int("orphan_count", len(orphans)).Msg("Starting reconciliation process...")

		for _, orphan := range orphans {
			log.Info().Str("group_id", orphan.GroupID.String()).Str("user_id", orphan.UserID.String()).Msg("Pruning orphan membership")

			if err := rosterDB.RemoveGroupMember(orphan.GroupID, orphan.UserID); err != nil {
				log.Error().Err(err).Str("group_id", orphan.GroupID.String()).Str("user_id", orphan.UserID.String()).Msg("Failed to prune orphan membership")
				continue
			}

			event := models.RosterEvent{
				Type:      models.EventMemberRemoved,
				CourseID:  orphan.CourseID,
				GroupID:   &orphan.GroupID,
				UserID:    &orphan.UserID,
				Timestamp: time.Now().Unix(),
			}
			if err := publisher.Publish(event); err != nil {
				log.Error().Err(err).Msg("Failed to publish member event")
			}
		}

		log.Info().Msg("Reconciliation process completed.")
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
