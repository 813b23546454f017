package assets

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/crucial707/hci-ledger/cmd/cli/client"
	"github.com/crucial707/hci-ledger/cmd/cli/output"
	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Assets
// ==========================
func InitAssets(rootCmd *cobra.Command) {

	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
	}

	assetsCmd.AddCommand(
		addAssetCmd(),
		listAssetsCmd(),
		getAssetCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

// ==========================
// ADD
// ==========================
func addAssetCmd() *cobra.Command {
	var (
		category, model, location string
		project, costCenter       string
		tags, conditionScore      string
	)

	cmd := &cobra.Command{
		Use:   "add [assetId]",
		Short: "Register a new asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"assetId":         args[0],
				"category":        category,
				"model":           model,
				"location":        location,
				"assignedProject": project,
				"costCenter":      costCenter,
				"tags":            tags,
				"conditionScore":  conditionScore,
			}

			var asset models.Asset
			if err := client.Post("/assets", payload, &asset); err != nil {
				return err
			}
			fmt.Printf("Asset %s added (%s).\n", asset.AssetID, asset.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "asset category")
	cmd.Flags().StringVar(&model, "model", "", "make and model")
	cmd.Flags().StringVar(&location, "location", "", "storage location")
	cmd.Flags().StringVar(&project, "project", "", "assigned project")
	cmd.Flags().StringVar(&costCenter, "cost-center", "", "cost center")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&conditionScore, "condition", "", "condition score (default 5)")

	return cmd
}

// ==========================
// LIST
// ==========================
func listAssetsCmd() *cobra.Command {
	var status string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/assets"
			if status != "" {
				path += "?status=" + url.QueryEscape(status)
			}

			var assets []models.Asset
			if err := client.Get(path, &assets); err != nil {
				return err
			}
			if jsonOut {
				return output.PrintJSON(assets)
			}

			rows := make([][]interface{}, 0, len(assets))
			for _, a := range assets {
				rows = append(rows, []interface{}{
					a.AssetID, a.Category, a.Model, a.Location, a.Status, a.ConditionScore, strings.Join(a.Tags, ", "),
				})
			}
			output.RenderTable([]string{"ID", "Category", "Model", "Location", "Status", "Condition", "Tags"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (available, checked_out)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON instead of a table")

	return cmd
}

// ==========================
// GET
// ==========================
func getAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [assetId]",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var asset models.Asset
			if err := client.Get("/assets/"+url.PathEscape(args[0]), &asset); err != nil {
				return err
			}
			return output.PrintJSON(asset)
		},
	}
}
