package loans

import (
	"fmt"
	"net/url"

	"github.com/crucial707/hci-ledger/cmd/cli/client"
	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/spf13/cobra"
)

// InitLoans registers checkout, checkin and reserve on the root command.
func InitLoans(rootCmd *cobra.Command) {
	rootCmd.AddCommand(checkoutCmd(), checkinCmd(), reserveCmd())
}

func assetPath(assetID, action string) string {
	return "/assets/" + url.PathEscape(assetID) + "/" + action
}

func checkoutCmd() *cobra.Command {
	var borrowedBy, photo, days string

	cmd := &cobra.Command{
		Use:   "checkout [assetId]",
		Short: "Lend an available asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"borrowedBy":     borrowedBy,
				"conditionPhoto": photo,
				"durationDays":   days,
			}
			var co models.Checkout
			if err := client.Post(assetPath(args[0], "checkout"), payload, &co); err != nil {
				return err
			}
			fmt.Printf("%s checked out to %s, due %s.\n", co.AssetID, co.BorrowedBy, co.DueAt.Format("2006-01-02 15:04 MST"))
			return nil
		},
	}

	cmd.Flags().StringVar(&borrowedBy, "by", "", "borrower")
	cmd.Flags().StringVar(&photo, "photo", "", "condition photo reference (required)")
	cmd.Flags().StringVar(&days, "days", "", "loan length in days (default 1)")

	return cmd
}

func checkinCmd() *cobra.Command {
	var conditionScore, notes string

	cmd := &cobra.Command{
		Use:   "checkin [assetId]",
		Short: "Return a checked-out asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"conditionScore": conditionScore,
				"repairNotes":    notes,
			}
			var asset models.Asset
			if err := client.Post(assetPath(args[0], "checkin"), payload, &asset); err != nil {
				return err
			}
			fmt.Printf("%s checked in, condition %g.\n", asset.AssetID, asset.ConditionScore)
			return nil
		},
	}

	cmd.Flags().StringVar(&conditionScore, "condition", "", "condition score after return (default: unchanged)")
	cmd.Flags().StringVar(&notes, "notes", "", "repair notes")

	return cmd
}

func reserveCmd() *cobra.Command {
	var reservedBy, start, end, buffer string

	cmd := &cobra.Command{
		Use:   "reserve [assetId]",
		Short: "Reserve an asset for a time window",
		Long: `Reserve an asset. When the window, padded by the buffer, overlaps an
existing reservation the new one is stored on the waitlist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"reservedBy":    reservedBy,
				"startAt":       start,
				"endAt":         end,
				"bufferMinutes": buffer,
			}
			var res models.Reservation
			if err := client.Post(assetPath(args[0], "reservations"), payload, &res); err != nil {
				return err
			}
			if res.Waitlisted {
				fmt.Printf("Reservation %s waitlisted: the window conflicts with an existing reservation.\n", res.ID)
				return nil
			}
			fmt.Printf("Reservation %s confirmed.\n", res.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&reservedBy, "by", "", "who the reservation is for")
	cmd.Flags().StringVar(&start, "start", "", "start time (RFC 3339 or 2006-01-02T15:04)")
	cmd.Flags().StringVar(&end, "end", "", "end time")
	cmd.Flags().StringVar(&buffer, "buffer", "", "buffer minutes on each side (server default when empty)")

	return cmd
}
