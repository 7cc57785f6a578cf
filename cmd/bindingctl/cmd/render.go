package cmd

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/render"
	"github.com/saeid-a/BindingStudio/internal/services"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		flags     paramFlags
		output    string
		assetPath string
		profileID string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a binding layout to a PNG file",
		Long: `Render a binding layout to an 800x400 PNG.

Parameters come from flags, or from a stored profile with --profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asset, err := loadAsset(assetPath)
			if err != nil {
				return err
			}
			renderer, err := render.NewRenderer(asset)
			if err != nil {
				return err
			}
			svc := services.NewRenderService(renderer, nil, nil)
			params, layout := flags.inputs(cmd)

			var png []byte
			if profileID != "" {
				png, err = renderProfile(cmd.Context(), svc, profileID, layout)
			} else {
				png, err = svc.Image(cmd.Context(), params, layout)
			}
			if err != nil {
				return describeError(err)
			}

			if err := os.WriteFile(output, png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(png))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "binding-layout.png", "output file")
	cmd.Flags().StringVar(&assetPath, "asset", "", "binding image to use for raster shapes (default: built-in)")
	cmd.Flags().StringVar(&profileID, "profile", "", "render a stored profile by id")
	return cmd
}

func renderProfile(ctx context.Context, svc *services.RenderService, rawID string, layout geometry.LayoutInput) ([]byte, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	profile, err := store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load profile %d: %w", id, err)
	}
	return svc.ProfileImage(ctx, profile, layout)
}

func loadAsset(path string) (image.Image, error) {
	if path == "" {
		return render.DefaultAsset()
	}
	return render.LoadAsset(path)
}
