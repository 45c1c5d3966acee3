// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/project-match/internal/admin"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Print or export the administrator summary",
	Long: `Admin aggregates matches per researcher (project count, best score,
average non-zero rating) and bundles the raw decisions, access logs and
announcements. Output is YAML or JSON, to stdout or to --output.`,
	RunE: runAdmin,
}

func runAdmin(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	summary := admin.Summarize(a.store, admin.Options{PhotoPath: a.cfg.Data.PhotoPath})

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml":
		err = admin.ExportYAML(w, summary)
	case "json":
		err = admin.ExportJSON(w, summary)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d researchers to %s\n", len(summary.Academicians), output)
	}
	return nil
}

func init() {
	adminCmd.Flags().String("format", "yaml", "output format: yaml or json")
	adminCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(adminCmd)
}
