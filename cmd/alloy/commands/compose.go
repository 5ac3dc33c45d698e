package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/alloy/internal/app"
)

func (c *CLI) newComposeCmd() *cobra.Command {
	var opts app.ComposeOptions

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build the environment closure from the manifest and lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Compose(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ManifestPath, "manifest", "m", "alloy.yaml", "Path to the project manifest")
	cmd.Flags().StringVarP(&opts.LockPath, "lock", "l", "alloy.lock.yaml", "Path to the lock description")
	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "catalog.yaml", "Path to the recipe catalog")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "alloy.env", "Path for the composed closure")
	cmd.Flags().IntVarP(&opts.Parallelism, "parallelism", "j", 0, "Maximum concurrent builds (0 = CPU count)")

	return cmd
}
