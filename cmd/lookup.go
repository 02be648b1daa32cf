package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// lookupCmd checks one SKU against the live distributor feed.
var lookupCmd = &cobra.Command{
	Use:   "lookup <sku>",
	Short: "Look up one SKU in the distributor feed",
	Long: `Pulls the distributor inventory feed and prints the live quantities
and cost for one SKU. Matching is case-insensitive.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, logg, err := newSyncService()
		if err != nil {
			log.Fatalf("Failed to initialize lookup: %v", err)
		}
		defer logg.Sync()

		result, err := service.Lookup(cmd.Context(), args[0])
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		if result == nil {
			fmt.Printf("SKU %q not present in the distributor feed\n", args[0])
			return
		}

		out, marshalErr := json.MarshalIndent(result, "", "  ")
		if marshalErr != nil {
			log.Fatalf("Failed to render lookup result: %v", marshalErr)
		}
		fmt.Println(string(out))
	},
}

func init() {
	RootCmd.AddCommand(lookupCmd)
}
