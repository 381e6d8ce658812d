package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the stockd client.
// It registers the product and alerts command groups.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "stockd",
		Short: "stockd client commands",
	}
	root.AddCommand(NewProductCommand(baseURL))
	root.AddCommand(NewAlertsCommand(baseURL))
	return root
}
