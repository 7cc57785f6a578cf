package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/saeid-a/BindingStudio/internal/config"
	"github.com/saeid-a/BindingStudio/internal/repository"
	"github.com/spf13/cobra"
)

// openStore is replaced in tests.
var openStore = func(ctx context.Context) (repository.Store, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return repository.Open(ctx, cfg)
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bindingctl",
		Short: "Snowboard binding layout tool",
		Long: `Render binding layouts and work with stored binding profiles.

Profile commands use the same STORE_DRIVER, DB_URL and SQLITE_PATH settings
as the server.

Examples:
  bindingctl scene --front-angle 15 --back-angle -6 --stance goofy
  bindingctl render --stance-width 54 --setback 2 -o layout.png
  bindingctl profiles list
  bindingctl export 3 --dir ./exports`,
		SilenceUsage: true,
	}

	root.AddCommand(newSceneCmd(), newRenderCmd(), newProfilesCmd(), newExportCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
