package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const configFileName = ".iceready.yaml"

const configTemplate = `# IceReady configuration
# Password is read from SNOWFLAKE_PASSWORD, never from this file.

connection:
  account: my-account
  user: my-user
  role: SYSADMIN
  warehouse: COMPUTE_WH
  # database: ANALYTICS

# Cortex model used for the executive summary.
model: mistral-large2

# Parallel table evaluations per audit run.
workers: 4

# How many blocker categories to rank in the summary.
top_blockers: 3

# exclude_schemas:
#   - STAGING
`

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .iceready.yaml configuration file",
		Long:  "Create a .iceready.yaml with connection placeholders and sensible defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			if err := os.WriteFile(dest, []byte(configTemplate), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .iceready.yaml")

	return cmd
}
