package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tradehub/marketplace-backend/internal/pricing"
	"github.com/tradehub/marketplace-backend/pkg/enums"
)

// serviceFactory returns the engine plus a cleanup func for the resources behind it.
type serviceFactory func(ctx context.Context) (pricing.Service, func(), error)

func newRootCmd(factory serviceFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "pricectl",
		Short:         "Inspect marketplace prices from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCalculateCmd(factory),
		newBulkCmd(factory),
		newInfoCmd(factory),
	)
	return root
}

func newCalculateCmd(factory serviceFactory) *cobra.Command {
	var (
		productID   string
		quantity    int
		paymentType string
		buyerID     string
		categoryID  string
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Price a quantity of one product",
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := uuid.Parse(productID)
			if err != nil {
				return fmt.Errorf("invalid --product: %w", err)
			}
			payment, err := enums.ParsePaymentType(paymentType)
			if err != nil {
				return err
			}
			buyer, err := optionalUUID("buyer", buyerID)
			if err != nil {
				return err
			}
			category, err := optionalUUID("category", categoryID)
			if err != nil {
				return err
			}

			return withService(cmd, factory, func(ctx context.Context, svc pricing.Service) (any, error) {
				return svc.Calculate(ctx, pricing.CalculationRequest{
					ProductID:   pid,
					Quantity:    quantity,
					PaymentType: payment,
					BuyerID:     buyer,
					CategoryID:  category,
				})
			})
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "product id")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "units to price")
	cmd.Flags().StringVar(&paymentType, "payment-type", string(enums.PaymentTypeCash), "CASH or CREDIT")
	cmd.Flags().StringVar(&buyerID, "buyer", "", "buyer id for customer group discounts")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id for volume discounts")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func newBulkCmd(factory serviceFactory) *cobra.Command {
	var (
		productIDs  []string
		quantities  []int
		paymentType string
		buyerID     string
	)
	cmd := &cobra.Command{
		Use:     "bulk",
		Short:   "Price several products in one batch",
		Example: "pricectl bulk --product <id> --quantity 10 --product <id> --quantity 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uuid.UUID, 0, len(productIDs))
			for _, raw := range productIDs {
				id, err := uuid.Parse(raw)
				if err != nil {
					return fmt.Errorf("invalid --product %q: %w", raw, err)
				}
				ids = append(ids, id)
			}
			payment, err := enums.ParsePaymentType(paymentType)
			if err != nil {
				return err
			}
			buyer, err := optionalUUID("buyer", buyerID)
			if err != nil {
				return err
			}

			return withService(cmd, factory, func(ctx context.Context, svc pricing.Service) (any, error) {
				return svc.CalculateBulk(ctx, pricing.BulkCalculationRequest{
					ProductIDs:  ids,
					Quantities:  quantities,
					PaymentType: payment,
					BuyerID:     buyer,
				})
			})
		},
	}
	cmd.Flags().StringSliceVar(&productIDs, "product", nil, "product id (repeatable)")
	cmd.Flags().IntSliceVar(&quantities, "quantity", nil, "units per product, paired by position (repeatable)")
	cmd.Flags().StringVar(&paymentType, "payment-type", string(enums.PaymentTypeCash), "CASH or CREDIT")
	cmd.Flags().StringVar(&buyerID, "buyer", "", "buyer id for customer group discounts")
	return cmd
}

func newInfoCmd(factory serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "info <product-id>",
		Short: "Show a product's base price and category discounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %w", err)
			}
			return withService(cmd, factory, func(ctx context.Context, svc pricing.Service) (any, error) {
				return svc.ProductPriceInfo(ctx, pid)
			})
		},
	}
}

func withService(cmd *cobra.Command, factory serviceFactory, run func(context.Context, pricing.Service) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, cleanup, err := factory(ctx)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	out, err := run(ctx, svc)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func optionalUUID(flag, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return &id, nil
}
