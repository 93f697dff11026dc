package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file-or-dir>...",
	Short: "Import tide table JSON files into the local tide database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		total := 0
		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			var n int
			if info.IsDir() {
				n, err = app.Tides.ImportDir(path)
			} else {
				n, err = app.Tides.ImportFile(path)
			}
			if err != nil {
				return fmt.Errorf("importing %s: %w", path, err)
			}
			total += n
		}

		fmt.Printf("Imported %d tide events\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
