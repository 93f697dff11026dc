package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var planFull bool

var planCmd = &cobra.Command{
	Use:   "plan <profile>",
	Short: "Print the multi-day activity planning for a profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		var result any
		if planFull {
			result, err = app.Planner.Full(cmd.Context(), args[0])
		} else {
			result, err = app.Planner.Week(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	planCmd.Flags().BoolVar(&planFull, "full", false, "include current recommendations merged with today's plan")
	rootCmd.AddCommand(planCmd)
}
