package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/lucid/internal/audit"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func resetProjectLogState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

func init() {
	projectLogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	projectLogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	projectLogCmd.Flags().StringVar(&logUser, "by", "", "filter by user name")
	projectLogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	projectLogCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	projectLogCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	projectLogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

var projectLogCmd = &cobra.Command{
	Use:   "log [CODE]",
	Short: "View the registry audit log",
	Long: `Displays who changed the project registry and when.

Examples:
  lucid project log                           # View full log
  lucid project log PRJ01                     # One project
  lucid project log -n 10 --reverse           # Ten most recent
  lucid project log --operation create,delete # Filter by operation
  lucid project log --since 2024-01-01        # Filter by date`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		opts := workflows.LogOptions{
			Runtime:    rt,
			Limit:      logLimit,
			Reverse:    logReverse,
			User:       logUser,
			Operations: logOperation,
			Since:      logSince,
			Until:      logUntil,
		}
		if len(args) == 1 {
			opts.Code = args[0]
		}

		result, err := workflows.Log(context.Background(), opts)
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}

		Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
		Logger.Debugf("After filtering: %d entries", len(result.Entries))

		if logJSON {
			return outputLogJSON(result.Entries)
		}

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Println("No audit log entries found.")
			} else {
				fmt.Println("No audit log entries found matching the filters.")
			}
			return nil
		}

		outputLogDefault(result.Entries)
		return nil
	},
}

func outputLogJSON(entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-16s  %-8s  %-10s  %s\n", datetime, e.User, e.Operation, e.Code, details)
	}
}
