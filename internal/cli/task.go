package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// taskCommand prints the prompt GET /task serves.
func (c *CLI) taskCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Show the current drawing prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(cfg.Prompt)
			}
			printTask(cfg.Prompt)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the task as JSON, as GET /task returns it")

	return cmd
}
