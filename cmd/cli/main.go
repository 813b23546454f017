package main

import (
	"fmt"
	"os"

	"github.com/crucial707/hci-ledger/cmd/cli/assets"
	"github.com/crucial707/hci-ledger/cmd/cli/auth"
	"github.com/crucial707/hci-ledger/cmd/cli/loans"
	"github.com/crucial707/hci-ledger/cmd/cli/maintenance"
	"github.com/crucial707/hci-ledger/cmd/cli/procurement"
	"github.com/crucial707/hci-ledger/cmd/cli/reports"
	"github.com/crucial707/hci-ledger/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	assets.InitAssets(rootCmd)
	loans.InitLoans(rootCmd)
	maintenance.InitMaintenance(rootCmd)
	procurement.InitProcurement(rootCmd)
	reports.InitReports(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
