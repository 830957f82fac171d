package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/iceready/internal/adapters/outbound/config"
	"github.com/abdidvp/iceready/internal/adapters/outbound/snowflake"
	"github.com/abdidvp/iceready/internal/application"
)

func newDatabasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List databases visible to the configured session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			collector, err := snowflake.Connect(cfg.Connection)
			if err != nil {
				return fmt.Errorf("connecting to snowflake: %w", err)
			}
			defer collector.Close()

			svc := application.NewAuditService(collector, nil, cfg)
			names, err := svc.Databases(cmd.Context())
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
