// Package versioncmd implements the `cart version` command.
package versioncmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomarketplace/internal/buildinfo"
)

// New creates the version command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "cart "+buildinfo.Summary())
			return nil
		},
	}
}
