/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/CampusHub/campushub-roster-services/db"
	"github.com/CampusHub/campushub-roster-services/internal/appconfig"
	awsclient "github.com/CampusHub/campushub-roster-services/internal/aws"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	host       string
	port       int

	appCfg   *appconfig.Config
	rosterDB *db.RosterDB
)

var rootCmd = &cobra.Command{
	Use:   "roster-services",
	Short: "Roster Services",
	Long:  `Roster Services is a CLI tool for managing course participants, groups and group visibility.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"path to the config file")
}

// commonSetUp loads the config, sets up logging and opens the roster
// database. Every command that touches the database starts here.
func commonSetUp() {
	setLogging(logLevel)

	var err error
	appCfg, err = appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	connStr := appCfg.Database.Source
	if appCfg.Database.SecretName != "" {
		awsCfg, err := awsclient.LoadAWSConfig(appCfg.AWS.Region)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load AWS config")
		}

		sm := awsclient.NewSecretsManagerClient(awsCfg)
		connStr, err = awsclient.GetDatabaseConnectionString(context.Background(), sm, appCfg.Database.SecretName)
		if err != nil {
			log.Fatal().Err(err).Str("secret", appCfg.Database.SecretName).Msg("failed to fetch database credentials")
		}
	}

	if err := os.Setenv("DATABASE_URL", connStr); err != nil {
		fmt.Println("Error setting environment variable:", err)
		os.Exit(1)
	}

	rosterDB, err = db.NewRosterDB(&log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize RosterDB")
	}
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
