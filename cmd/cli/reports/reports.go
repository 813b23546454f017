package reports

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/hci-ledger/cmd/cli/client"
	"github.com/crucial707/hci-ledger/cmd/cli/output"
	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/spf13/cobra"
)

// ExportFilename matches the name the API suggests for downloads.
const ExportFilename = "inventory-export.json"

// InitReports registers overdue, audit and export on the root command.
func InitReports(rootCmd *cobra.Command) {
	rootCmd.AddCommand(overdueCmd(), auditCmd(), exportCmd())
}

// ==========================
// OVERDUE
// ==========================
func overdueCmd() *cobra.Command {
	var at string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List overdue checkouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/overdue"
			if at != "" {
				path += "?now=" + url.QueryEscape(at)
			}
			var list []models.OverdueCheckout
			if err := client.Get(path, &list); err != nil {
				return err
			}
			if jsonOut {
				return output.PrintJSON(list)
			}
			if len(list) == 0 {
				fmt.Println("No overdue checkouts.")
				return nil
			}

			rows := make([][]interface{}, 0, len(list))
			for _, co := range list {
				rows = append(rows, []interface{}{co.AssetID, co.BorrowedBy, co.DueAt.Format(time.RFC3339)})
			}
			output.RenderTable([]string{"Asset", "Borrowed By", "Due"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "evaluate at this time instead of now (RFC 3339)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON instead of a table")

	return cmd
}

// ==========================
// AUDIT
// ==========================
func auditCmd() *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent audit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []models.AuditEntry
			if err := client.Get("/audit?limit="+strconv.Itoa(limit), &entries); err != nil {
				return err
			}
			if jsonOut {
				return output.PrintJSON(entries)
			}

			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []interface{}{e.Timestamp.Format(time.RFC3339), e.Action, formatDetails(e.Details)})
			}
			output.RenderTable([]string{"Time", "Action", "Details"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 25, "number of entries")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON instead of a table")

	return cmd
}

// formatDetails renders details as sorted key=value pairs.
func formatDetails(details map[string]any) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, details[k]))
	}
	return strings.Join(parts, " ")
}

// ==========================
// EXPORT
// ==========================
func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the full ledger snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client.Raw("GET", "/export", nil, false)
			if err != nil {
				return err
			}
			if out == "-" {
				fmt.Println(string(body))
				return nil
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return err
			}
			fmt.Printf("Snapshot written to %s.\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", ExportFilename, `file to write, or "-" for stdout`)

	return cmd
}
