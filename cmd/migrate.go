package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "init-db-migrate",
	Short: "Initialize tables and run database migrations",
	Long:  `This job ensures tables exist and then runs goose migrations.`,
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()

		// Set up the database
		defer rosterDB.Close()

		log.Info().Msg("Initializing tables...")
		if err := rosterDB.InitTables(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tables")
		}

		// Run the migrations
		log.Info().Msgf("Running migrations...")
		if err := rosterDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
