package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewAlertsCommand constructs the `alerts` command group.
func NewAlertsCommand(baseURL BaseURLFunc) *cobra.Command {
	alertsCmd := &cobra.Command{Use: "alerts", Short: "Low-stock alert operations"}
	alertsCmd.AddCommand(newAlertsWatchCommand(baseURL))
	return alertsCmd
}

// newAlertsWatchCommand streams low-stock alerts over SSE and prints one
// JSON object per event.
func newAlertsWatchCommand(baseURL BaseURLFunc) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream low-stock alerts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			threshold, _ := cmd.Flags().GetInt64("threshold")
			filter, _ := cmd.Flags().GetString("filter")
			limit, _ := cmd.Flags().GetInt("limit")

			q := url.Values{}
			if threshold > 0 {
				q.Set("threshold", strconv.FormatInt(threshold, 10))
			}
			if filter != "" {
				q.Set("filter", filter)
			}
			u := baseURL() + "/v1/alerts/subscribe"
			if len(q) > 0 {
				u += "?" + q.Encode()
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, u, nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("subscribe failed: %s", resp.Status)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			rd := bufio.NewReader(resp.Body)
			seen := 0
			for {
				line, err := rd.ReadString('\n')
				if err != nil {
					// Stream end (server shutdown or ctx cancel) is a
					// normal exit for watch.
					return nil
				}
				line = strings.TrimSpace(line)
				if !strings.HasPrefix(line, "data: ") {
					continue
				}
				var v any
				if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &v); err != nil {
					continue
				}
				_ = enc.Encode(v)
				seen++
				if limit > 0 && seen >= limit {
					return nil
				}
			}
		},
	}
	watchCmd.Flags().Int64("threshold", 0, "Alert threshold (0 = server default)")
	watchCmd.Flags().String("filter", "", "CEL filter over product_id, name, quantity, message")
	watchCmd.Flags().Int("limit", 0, "Stop after N alerts (0 = infinite)")
	return watchCmd
}
