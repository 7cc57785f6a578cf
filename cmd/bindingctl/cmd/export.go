package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/saeid-a/BindingStudio/internal/services"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a profile to <name>-binding-profile.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			profile, err := store.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("load profile %d: %w", id, err)
			}

			filename, payload, err := services.NewExportService(nil).Export(profile)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, filename)
			if err := os.WriteFile(path, payload, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the export to")
	return cmd
}
