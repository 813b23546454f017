package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level hci-ledger command.
var RootCmd = &cobra.Command{
	Use:           "hci-ledger",
	Short:         "HCI asset ledger CLI",
	Long:          "Command line interface for the HCI asset inventory ledger API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
