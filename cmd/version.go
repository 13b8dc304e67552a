// File: cmd/version.go
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is the application version.
// This value is intended to be set at build time using ldflags.
// Example: go build -ldflags "-X github.com/salman3757/passgauge/cmd.Version=1.0.0"
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the passgauge version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("passgauge %s\n", Version)
		},
	}
}
