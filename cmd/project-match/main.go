// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the project-match CLI. The serve
// command runs the HTTP API; the remaining commands compose the same views
// from the terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/project-match/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the project-match CLI.
var rootCmd = &cobra.Command{
	Use:   "project-match",
	Short: "Match researchers to funded projects and record their decisions",
	Long: `project-match serves researcher profiles built from a directory of
academicians, a catalog of EU projects, and an externally computed set of
researcher-project match scores. Researchers accept, reject, or defer each
suggestion; accepted projects link collaborators into a graph.

Data is read from JSON or YAML files in the data directory at startup.
Decisions, announcements and access logs are written back through the
configured persistence backend (file or sqlite).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./project-match.yaml or ~/.config/project-match/project-match.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the source files")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	setDefaults(types.DefaultConfig())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("project-match")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "project-match"))
		}
	}

	viper.SetEnvPrefix("PROJECT_MATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that environment overrides
// and Unmarshal see it even when no config file exists.
func setDefaults(d types.Config) {
	viper.SetDefault("data.dir", d.Data.Dir)
	viper.SetDefault("data.files.researchers", d.Data.Files.Researchers)
	viper.SetDefault("data.files.projects", d.Data.Files.Projects)
	viper.SetDefault("data.files.matches", d.Data.Files.Matches)
	viper.SetDefault("data.files.decisions", d.Data.Files.Decisions)
	viper.SetDefault("data.files.logs", d.Data.Files.Logs)
	viper.SetDefault("data.files.announcements", d.Data.Files.Announcements)
	viper.SetDefault("data.files.messages", d.Data.Files.Messages)
	viper.SetDefault("data.photo_path", d.Data.PhotoPath)
	viper.SetDefault("data.header_token", d.Data.HeaderToken)

	viper.SetDefault("persistence.backend", string(d.Persistence.Backend))
	viper.SetDefault("persistence.sqlite_path", d.Persistence.SQLitePath)

	viper.SetDefault("server.host", d.Server.Host)
	viper.SetDefault("server.port", d.Server.Port)

	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
