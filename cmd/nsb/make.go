package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/nsb/internal/document"
)

var makeForce bool

var makeCmd = &cobra.Command{
	Use:   "make <rows> <output>",
	Short: "Write a blank question table",
	Long: fmt.Sprintf(`Write an empty question table with the given number of rows.

Columns: %v

Examples:
  nsb make 90 round1.yaml
  nsb make 150 set.json`, document.Template),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := strconv.Atoi(args[0])
		if err != nil || rows < 0 {
			return fmt.Errorf("rows must be a whole number, got %q", args[0])
		}
		path := args[1]

		if _, err := os.Stat(path); err == nil && !makeForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := document.Save(cmd.Context(), path, document.Blank(rows)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", rows, path)
		return nil
	},
}

func init() {
	makeCmd.Flags().BoolVar(&makeForce, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(makeCmd)
}
