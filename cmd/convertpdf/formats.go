package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkcoder/mit-convertpdf/pkg/types"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported input formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range types.Formats() {
			fmt.Println(f)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
