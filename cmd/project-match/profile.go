// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/project-match/internal/graph"
	"github.com/pdiddy/project-match/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile <name>",
	Short: "Print a researcher's composed profile as JSON",
	Long: `Profile looks the researcher up by case-insensitive full name and lists
every matched project, highest score first, with its decision state and
accepted collaborators.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background())
		if err != nil {
			return err
		}
		defer a.Close()

		name := strings.Join(args, " ")
		return printJSON(profile.Compose(a.store, name, profile.Options{
			PhotoPath: a.cfg.Data.PhotoPath,
			Logger:    a.logger,
		}))
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph <name>",
	Short: "Print a researcher's collaboration graph as JSON",
	Long: `Graph links the researcher to everyone who accepted one of the projects
the researcher accepted. An unknown researcher yields an empty graph.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background())
		if err != nil {
			return err
		}
		defer a.Close()

		return printJSON(graph.Build(a.store, strings.Join(args, " "), graph.Options{PhotoPath: a.cfg.Data.PhotoPath}))
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(graphCmd)
}
