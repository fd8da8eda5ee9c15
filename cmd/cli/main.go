package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	actorID string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dormledger-cli",
		Short: "DormLedger CLI tool",
		Long:  `A command line interface for interacting with the DormLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the DormLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", "", "Actor ID sent with mutating requests")

	var semesterID string

	clearanceCmd := &cobra.Command{
		Use:   "clearance <dorm-id>",
		Short: "Show the clearance worklist for a dorm",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showClearance(args[0], semesterID)
		},
	}
	clearanceCmd.Flags().StringVar(&semesterID, "semester", "", "Semester ID (defaults to the active semester)")

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots <dorm-id>",
		Short: "Show per-semester carry-forward snapshots for a dorm",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showSnapshots(args[0])
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <dorm-id> <rows.json>",
		Short: "Reconcile a legacy export file into the ledger",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runImport(args[0], args[1])
		},
	}

	rootCmd.AddCommand(clearanceCmd, snapshotsCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func showClearance(dormID, semesterID string) {
	endpoint := baseURL + "/api/v1/dorms/" + url.PathEscape(dormID) + "/clearance"
	if semesterID != "" {
		endpoint += "?semester_id=" + url.QueryEscape(semesterID)
	}

	body := getJSON(endpoint)

	var result struct {
		SemesterID string `json:"semester_id"`
		Rows       []struct {
			OccupantID   string `json:"occupant_id"`
			Name         string `json:"name"`
			Room         string `json:"room"`
			TotalBalance string `json:"total_balance"`
			IsCleared    bool   `json:"is_cleared"`
		} `json:"rows"`
		OccupantsCleared    int `json:"occupants_cleared"`
		OccupantsNotCleared int `json:"occupants_not_cleared"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearance for dorm %s (semester %s): %d cleared, %d owing\n",
		dormID, result.SemesterID, result.OccupantsCleared, result.OccupantsNotCleared)
	for _, row := range result.Rows {
		status := "OWES " + row.TotalBalance
		if row.IsCleared {
			status = "cleared"
		}
		fmt.Printf("  %-12s %-20s room %-6s %s\n", row.OccupantID, row.Name, row.Room, status)
	}
}

func showSnapshots(dormID string) {
	body := getJSON(baseURL + "/api/v1/dorms/" + url.PathEscape(dormID) + "/snapshots")

	var result struct {
		Snapshots []struct {
			SemesterID      string `json:"semester_id"`
			Label           string `json:"label"`
			Inflow          string `json:"inflow"`
			ApprovedExpense string `json:"approved_expense"`
			Net             string `json:"net"`
			HandoverIn      string `json:"handover_in"`
			ClosingCash     string `json:"closing_cash"`
		} `json:"snapshots"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-12s %-16s %10s %10s %10s %10s %10s\n",
		"SEMESTER", "LABEL", "INFLOW", "EXPENSE", "NET", "HANDOVER", "CLOSING")
	for _, s := range result.Snapshots {
		fmt.Printf("%-12s %-16s %10s %10s %10s %10s %10s\n",
			s.SemesterID, s.Label, s.Inflow, s.ApprovedExpense, s.Net, s.HandoverIn, s.ClosingCash)
	}
}

func runImport(dormID, path string) {
	if actorID == "" {
		fmt.Println("--actor is required for imports")
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	// The file holds the request body minus actor attribution, which
	// travels in the header like every other mutating call.
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		fmt.Printf("Invalid JSON in %s: %v\n", path, err)
		os.Exit(1)
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	endpoint := baseURL + "/api/v1/dorms/" + url.PathEscape(dormID) + "/imports"
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", actorID)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Import FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var summary struct {
		RowsReceived      int `json:"rows_received"`
		RowsDropped       int `json:"rows_dropped"`
		GroupsFormed      int `json:"groups_formed"`
		SkippedDuplicates int `json:"skipped_duplicates"`
		EntriesCreated    int `json:"entries_created"`
		ExpensesCreated   int `json:"expenses_created"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Import finished: %d rows in, %d dropped, %d groups, %d duplicates skipped, %d entries + %d expenses created\n",
		summary.RowsReceived, summary.RowsDropped, summary.GroupsFormed,
		summary.SkippedDuplicates, summary.EntriesCreated, summary.ExpensesCreated)
}

func getJSON(endpoint string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(endpoint)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}
