package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/extracto/internal/adapter/http/dto"
)

func statusCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the statement a running server is serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: opts.timeout}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet,
				strings.TrimRight(opts.baseURL, "/")+"/api/v1/statement", nil)
			if err != nil {
				return err
			}

			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				var errResp dto.ErrorResponse
				if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
					return fmt.Errorf("server returned %d: %s", resp.StatusCode, errResp.Error)
				}
				return fmt.Errorf("server returned %d", resp.StatusCode)
			}

			var stmt dto.StatementResponse
			if err := json.NewDecoder(resp.Body).Decode(&stmt); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Statement:   "), stmt.ID)
			fmt.Fprintf(w, "%s %s (%s, %q)\n", labelStyle.Render("Source:      "), stmt.Source, stmt.Encoding, stmt.Delimiter)
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Loaded at:   "), stmt.LoadedAt.Format(time.RFC3339))
			fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Transactions:"), stmt.TransactionCount)
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Opening:     "), stmt.OpeningBalance.StringFixed(2))
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Balance:     "), stmt.FinalBalance.StringFixed(2))
			fmt.Fprintf(w, "%d rows read, %d kept, %d dropped, %d amounts coerced\n",
				stmt.Report.TotalRows, stmt.Report.Kept, stmt.Report.Dropped, stmt.Report.CoercedAmounts)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the extracto server")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	return cmd
}
