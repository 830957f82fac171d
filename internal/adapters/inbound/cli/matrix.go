package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/iceready/internal/adapters/outbound/tui"
	"github.com/abdidvp/iceready/internal/domain/rules"
)

func newMatrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Show the native/managed/external Iceberg feature comparison",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFeatureMatrix(rules.FeatureMatrix))
			return nil
		},
	}
}
