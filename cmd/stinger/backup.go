package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HerbHall/stinger/internal/backup"
)

func newBackupCmd(opts *rootOptions) *cobra.Command {
	var db, output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive a SQLite catalog database and the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if db == "" {
				db = opts.catalogPath
			}
			if db == "" || !isDatabasePath(db) {
				return errors.New("--db (or --catalog) must name a .db or .sqlite file")
			}
			if output == "" {
				output = fmt.Sprintf("stinger-backup-%s.tar.gz", time.Now().Format("20060102-150405"))
			}
			if err := backup.Backup(cmd.Context(), db, opts.configPath, output); err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "catalog database to back up (default: --catalog)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stinger-backup-{timestamp}.tar.gz)")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	var (
		input   string
		dataDir string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore a backup archive into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return errors.New("--input is required")
			}
			files, err := backup.Restore(cmd.Context(), input, dataDir, force)
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "backup archive to restore (required)")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "target directory for restored files")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}
