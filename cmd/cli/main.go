package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loanledger-cli",
		Short: "LoanLedger CLI tool",
		Long:  `A command line interface for interacting with the LoanLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LoanLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Replay commands
	replayCmd := &cobra.Command{
		Use:   "replay [account-id]",
		Short: "Replay an account's ledger and persist the result",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/accounts/"+args[0]+"/replay", nil)
		},
	}
	rootCmd.AddCommand(replayCmd)

	// Batch commands
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Payout batch operations",
	}

	var batchDate string

	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Run the daily payout batch",
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/payouts/daily/run", batchBody(batchDate))
		},
	}
	dailyCmd.Flags().StringVar(&batchDate, "date", "", "Batch date (YYYY-MM-DD, defaults to today)")

	annualCmd := &cobra.Command{
		Use:   "annual",
		Short: "Run the annual top-up batch",
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/payouts/annual/run", batchBody(batchDate))
		},
	}
	annualCmd.Flags().StringVar(&batchDate, "date", "", "Batch date (YYYY-MM-DD, defaults to today)")

	var statusDate string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the daily batch status",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/payouts/status"
			if statusDate != "" {
				path += "?date=" + statusDate
			}
			get(path)
		},
	}
	statusCmd.Flags().StringVar(&statusDate, "date", "", "Batch date (YYYY-MM-DD, defaults to today)")

	batchCmd.AddCommand(dailyCmd, annualCmd, statusCmd)
	rootCmd.AddCommand(batchCmd)

	// Reconciliation commands
	reconcileCmd := &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Reconcile one account, or all accounts when no ID is given",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				get("/api/v1/accounts/" + args[0] + "/reconciliation")
				return
			}
			get("/api/v1/reconciliation")
		},
	}
	rootCmd.AddCommand(reconcileCmd)

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	getAccountCmd := &cobra.Command{
		Use:   "get [account-id]",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/accounts/" + args[0])
		},
	}

	var analyticsPeriod int
	analyticsCmd := &cobra.Command{
		Use:   "analytics [account-id]",
		Short: "Show an account's balance projection",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/accounts/%s/analytics?period=%d", args[0], analyticsPeriod))
		},
	}
	analyticsCmd.Flags().IntVar(&analyticsPeriod, "period", 24, "Projection period in months (6, 12 or 24)")

	accountCmd.AddCommand(getAccountCmd, analyticsCmd)
	rootCmd.AddCommand(accountCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func batchBody(date string) []byte {
	if date == "" {
		return nil
	}
	body, _ := json.Marshal(map[string]string{"date": date})
	return body
}

func post(path string, body []byte) {
	client := &http.Client{Timeout: timeout}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
