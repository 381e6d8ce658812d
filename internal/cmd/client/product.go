// Package client contains Cobra CLI commands for the stockd HTTP API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewProductCommand constructs the `product` command group and subcommands.
func NewProductCommand(baseURL BaseURLFunc) *cobra.Command {
	productCmd := &cobra.Command{Use: "product", Short: "Product operations"}

	productCmd.AddCommand(
		newProductAddCommand(baseURL),
		newProductGetCommand(baseURL),
		newProductListCommand(baseURL),
		newProductUpdateCommand(baseURL),
		newProductRemoveCommand(baseURL),
	)

	return productCmd
}

func newProductAddCommand(baseURL BaseURLFunc) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			qty, _ := cmd.Flags().GetInt64("quantity")
			body, _ := json.Marshal(map[string]any{"name": name, "quantity": qty})
			return postJSON(cmd, baseURL()+"/v1/products/create", body)
		},
	}
	addCmd.Flags().String("name", "", "Product name")
	addCmd.Flags().Int64("quantity", 0, "Initial quantity")
	return addCmd
}

func newProductGetCommand(baseURL BaseURLFunc) *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Get a product by id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			return getAndPrint(cmd, baseURL()+"/v1/products/get?id="+url.QueryEscape(id))
		},
	}
	getCmd.Flags().String("id", "", "Product id")
	return getCmd
}

func newProductListCommand(baseURL BaseURLFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			offset, _ := cmd.Flags().GetInt("offset")
			limit, _ := cmd.Flags().GetInt("limit")
			q := url.Values{}
			if offset > 0 {
				q.Set("offset", strconv.Itoa(offset))
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			u := baseURL() + "/v1/products/list"
			if len(q) > 0 {
				u += "?" + q.Encode()
			}
			return getAndPrint(cmd, u)
		},
	}
	listCmd.Flags().Int("offset", 0, "Skip the first N products")
	listCmd.Flags().Int("limit", 0, "Return at most N products (0 = all)")
	return listCmd
}

func newProductUpdateCommand(baseURL BaseURLFunc) *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Apply a signed delta to a product's quantity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			delta, _ := cmd.Flags().GetInt64("delta")
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			body, _ := json.Marshal(map[string]any{"id": id, "delta": delta})
			return postJSON(cmd, baseURL()+"/v1/products/update", body)
		},
	}
	updateCmd.Flags().String("id", "", "Product id")
	updateCmd.Flags().Int64("delta", 0, "Signed quantity change")
	return updateCmd
}

func newProductRemoveCommand(baseURL BaseURLFunc) *cobra.Command {
	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			body, _ := json.Marshal(map[string]string{"id": id})
			return postJSON(cmd, baseURL()+"/v1/products/remove", body)
		},
	}
	removeCmd.Flags().String("id", "", "Product id")
	return removeCmd
}

func postJSON(cmd *cobra.Command, u string, body []byte) error {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(cmd, resp)
}

func getAndPrint(cmd *cobra.Command, u string) error {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(cmd, resp)
}
