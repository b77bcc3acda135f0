// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeclass/internal/identifier"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <url>...",
	Short: "Print the DOI or arXiv cache key extracted from each URL",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, u := range args {
			id := identifier.Extract(u)
			fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", id.Kind(), id, u)
		}
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}
