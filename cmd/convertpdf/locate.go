// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkcoder/mit-convertpdf/internal/convert"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Show the converter executable that will be used",
	Long: `Locate resolves the LibreOffice executable the same way convert does:
an explicit --converter (or converter.path in the config file) is validated,
otherwise the platform candidate list is probed in order. On failure the
error names every candidate that was tried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := convert.New(converterConfig(cmd))
		if err != nil {
			return err
		}
		fmt.Println(orch.ConverterPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
