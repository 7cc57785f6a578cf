package cmd

import (
	"encoding/json"

	"github.com/saeid-a/BindingStudio/internal/services"
	"github.com/spf13/cobra"
)

func newSceneCmd() *cobra.Command {
	var flags paramFlags

	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Print the computed scene as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, layout := flags.inputs(cmd)
			scene, err := services.NewRenderService(nil, nil, nil).Scene(params, layout)
			if err != nil {
				return describeError(err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(scene)
		},
	}
	flags.register(cmd)
	return cmd
}
