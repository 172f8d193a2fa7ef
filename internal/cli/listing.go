package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/marketplace/internal/sqlite"
	"github.com/mesh-intelligence/marketplace/pkg/types"
)

func newListingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Add, browse and search listings",
	}
	cmd.AddCommand(
		newListingAddCmd(a),
		newListingListCmd(a),
		newListingSearchCmd(a),
	)
	return cmd
}

func newListingAddCmd(a *app) *cobra.Command {
	var (
		creds                           credentials
		name, category, price, describe string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a listing owned by the logged-in user",
		Example: `  marketplace listing add -u bob --name Chair --category Furniture \
      --price '$25.00' --description 'Wooden chair'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := types.ParsePrice(price)
			if err != nil {
				return err
			}
			return a.withSession(cmd, creds, func(ctx context.Context, b *sqlite.Backend, s session) error {
				id, err := b.CreateListing(ctx, s.UserID, name, category, value, describe)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, &types.Listing{
						ID: id, OwnerID: s.UserID, Name: name, Category: category,
						Price: value, Description: describe,
					})
				}
				fmt.Fprintf(out, "Item added successfully (listing %d)\n", id)
				return nil
			})
		},
	}
	creds.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "item name")
	cmd.Flags().StringVar(&category, "category", "", "item category")
	cmd.Flags().StringVar(&price, "price", "", "price, e.g. 25, $25.00 or 1,200.50")
	cmd.Flags().StringVar(&describe, "description", "", "item description")
	return cmd
}

func newListingListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMarketplace(cmd, func(ctx context.Context, b *sqlite.Backend) error {
				listings, err := b.ListAllListings(ctx)
				if err != nil {
					return err
				}
				return a.printListings(cmd.OutOrStdout(), listings)
			})
		},
	}
}

func newListingSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find listings whose name, category or description contain keyword",
		Long: "Search matches keyword anywhere in the name, category or description,\n" +
			"ignoring ASCII case. An empty keyword matches every listing.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keyword string
			if len(args) == 1 {
				keyword = args[0]
			}
			return a.withMarketplace(cmd, func(ctx context.Context, b *sqlite.Backend) error {
				listings, err := b.SearchListings(ctx, keyword)
				if err != nil {
					return err
				}
				return a.printListings(cmd.OutOrStdout(), listings)
			})
		},
	}
}
