package main

import (
	"fmt"

	garmentd "github.com/seamly/garmentd"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of garmentd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("garmentd version %s\n", garmentd.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
