package procurement

import (
	"fmt"

	"github.com/crucial707/hci-ledger/cmd/cli/client"
	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/spf13/cobra"
)

func InitProcurement(rootCmd *cobra.Command) {
	procurementCmd := &cobra.Command{
		Use:   "procurement",
		Short: "Request new equipment",
	}
	procurementCmd.AddCommand(requestCmd())
	rootCmd.AddCommand(procurementCmd)
}

func requestCmd() *cobra.Command {
	var requestedBy, item, justification, costCenter string

	cmd := &cobra.Command{
		Use:   "request",
		Short: "File a procurement request",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"requestedBy":   requestedBy,
				"itemName":      item,
				"justification": justification,
				"costCenter":    costCenter,
			}
			var req models.ProcurementRequest
			if err := client.Post("/procurement", payload, &req); err != nil {
				return err
			}
			fmt.Printf("Procurement request %s is %s.\n", req.ID, req.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&requestedBy, "by", "", "requester")
	cmd.Flags().StringVar(&item, "item", "", "item name")
	cmd.Flags().StringVar(&justification, "why", "", "justification")
	cmd.Flags().StringVar(&costCenter, "cost-center", "", "cost center")

	return cmd
}
