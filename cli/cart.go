package cli

import (
	"fmt"

	"storefront/cart"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type cartView struct {
	Session string          `json:"session"`
	Lines   []cart.Line     `json:"lines"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

func newCartCmd() *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the session cart",
	}

	var quantity int
	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := catalogService().AddToCart(cmd.Context(), currentCart(), id, quantity); err != nil {
				return err
			}
			fmt.Printf("added %d x %d\n", quantity, id)
			return nil
		},
	}
	addCmd.Flags().IntVar(&quantity, "quantity", 1, "units to add")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return catalogService().RemoveFromCart(currentCart(), id)
		},
	}

	var output string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show cart lines and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			sid := currentCart()
			view := cartView{Session: sid}
			err := catalogService().Carts().Do(sid, func(c *cart.Cart) error {
				view.Lines = c.Lines()
				view.Total = c.Total()
				view.Average = c.Average()
				return nil
			})
			if err != nil {
				return err
			}
			if output == "json" {
				printJSON(view)
				return nil
			}
			for _, l := range view.Lines {
				fmt.Printf("%d | %s | %d | %s\n", l.Product.ID, l.Product.Name, l.Quantity, l.Subtotal().StringFixed(2))
			}
			fmt.Printf("total: %s average: %s\n", view.Total.StringFixed(2), view.Average.StringFixed(2))
			return nil
		},
	}
	showCmd.Flags().StringVar(&output, "output", "", "output format")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogService().Carts().Do(currentCart(), func(c *cart.Cart) error {
				c.Clear()
				return nil
			})
		},
	}

	cartCmd.AddCommand(addCmd, removeCmd, showCmd, clearCmd)
	return cartCmd
}
