// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/project-match/internal/ledger"
	"github.com/pdiddy/project-match/pkg/types"
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Record a researcher's decision on a project",
	Long: `Decide upserts one decision: the first existing record for the same
researcher and project is updated in place, otherwise a new record is
appended. The full decision set is then persisted.`,
	RunE: runDecide,
}

func runDecide(cmd *cobra.Command, args []string) error {
	researcher, _ := cmd.Flags().GetString("researcher")
	project, _ := cmd.Flags().GetString("project")
	title, _ := cmd.Flags().GetString("title")
	decision, _ := cmd.Flags().GetString("decision")
	note, _ := cmd.Flags().GetString("note")
	rating, _ := cmd.Flags().GetString("rating")

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := ledger.New(a.store, a.saver, a.logger).Upsert(ctx, types.DecisionInput{
		Academician:  researcher,
		ProjectID:    project,
		ProjectTitle: title,
		Decision:     decision,
		Note:         note,
		Rating:       rating,
	})
	if err != nil {
		return err
	}
	return printJSON(d)
}

func init() {
	decideCmd.Flags().String("researcher", "", "researcher name exactly as stored in the matches")
	decideCmd.Flags().String("project", "", "project id")
	decideCmd.Flags().String("title", "", "project title recorded on a new decision")
	decideCmd.Flags().String("decision", string(types.DecisionWaiting), "accepted, rejected or waiting")
	decideCmd.Flags().String("note", "", "free-text note")
	decideCmd.Flags().String("rating", "", "rating 0-5; empty means unrated")
	rootCmd.AddCommand(decideCmd)
}
