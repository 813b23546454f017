package maintenance

import (
	"fmt"
	"net/url"

	"github.com/crucial707/hci-ledger/cmd/cli/client"
	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/spf13/cobra"
)

func InitMaintenance(rootCmd *cobra.Command) {
	maintenanceCmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Schedule asset maintenance",
	}
	maintenanceCmd.AddCommand(addCmd())
	rootCmd.AddCommand(maintenanceCmd)
}

func addCmd() *cobra.Command {
	var scheduledFor, taskType, vendor, cost string

	cmd := &cobra.Command{
		Use:   "add [assetId]",
		Short: "Schedule a maintenance task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"scheduledFor": scheduledFor,
				"type":         taskType,
				"vendor":       vendor,
				"cost":         cost,
			}
			var task models.MaintenanceTask
			if err := client.Post("/assets/"+url.PathEscape(args[0])+"/maintenance", payload, &task); err != nil {
				return err
			}
			fmt.Printf("Maintenance %s %s for %s on %s.\n", task.ID, task.Status, task.AssetID, task.ScheduledFor)
			return nil
		},
	}

	cmd.Flags().StringVar(&scheduledFor, "date", "", "scheduled date")
	cmd.Flags().StringVar(&taskType, "type", "", "task type, e.g. Preventive")
	cmd.Flags().StringVar(&vendor, "vendor", "", "vendor")
	cmd.Flags().StringVar(&cost, "cost", "", "estimated cost")

	return cmd
}
