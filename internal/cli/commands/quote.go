package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gamevault/backoffice/internal/integration/entrypoint/dto"
)

func NewQuoteCmd(provider Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price rentals, trades and orders",
	}

	cmd.AddCommand(newRentalQuoteCmd(provider))
	cmd.AddCommand(newTradeQuoteCmd(provider))
	cmd.AddCommand(newOrderQuoteCmd(provider))

	return cmd
}

type rentalQuoteCmd struct {
	provider Provider
	gameID   string
	price    string
	days     int
}

func newRentalQuoteCmd(provider Provider) *cobra.Command {
	rq := &rentalQuoteCmd{provider: provider}
	cmd := &cobra.Command{
		Use:   "rental",
		Short: "Quote a rental by catalog game or price",
		RunE:  rq.run,
	}

	cmd.Flags().StringVar(&rq.gameID, "game-id", "", "Catalog game to rent")
	cmd.Flags().StringVar(&rq.price, "price", "", "Game price when renting outside the catalog")
	cmd.Flags().IntVar(&rq.days, "days", 0, "Rental length in days")

	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func (rq *rentalQuoteCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req := dto.RentalQuoteRequest{GameID: rq.gameID, Days: rq.days}
	if rq.price != "" {
		price, err := decimal.NewFromString(rq.price)
		if err != nil {
			return fmt.Errorf("invalid --price %q: %w", rq.price, err)
		}
		req.GamePrice = &price
	}

	input, err := req.ToQuoteRentalInput()
	if err != nil {
		return err
	}

	inj, err := rq.provider(ctx)
	if err != nil {
		return err
	}

	output, err := inj.QuoteRental.Execute(ctx, input)
	if err != nil {
		return err
	}
	return writeJSON(cmd, dto.ToRentalQuoteResponse(output))
}

type fileQuoteCmd struct {
	provider Provider
	file     string
}

func newTradeQuoteCmd(provider Provider) *cobra.Command {
	fq := &fileQuoteCmd{provider: provider}
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Value a trade read as JSON from --file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var req dto.TradeQuoteRequest
			if err := readInput(cmd, fq.file, &req); err != nil {
				return err
			}
			input, err := req.ToQuoteTradeInput()
			if err != nil {
				return err
			}

			inj, err := fq.provider(ctx)
			if err != nil {
				return err
			}
			output, err := inj.QuoteTrade.Execute(ctx, input)
			if err != nil {
				return err
			}
			return writeJSON(cmd, dto.ToTradeQuoteResponse(output))
		},
	}

	cmd.Flags().StringVarP(&fq.file, "file", "f", "-", "Trade request JSON, - for stdin")
	return cmd
}

func newOrderQuoteCmd(provider Provider) *cobra.Command {
	fq := &fileQuoteCmd{provider: provider}
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Price an order read as JSON from --file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var req dto.OrderQuoteRequest
			if err := readInput(cmd, fq.file, &req); err != nil {
				return err
			}
			input, err := req.ToQuoteOrderInput()
			if err != nil {
				return err
			}

			inj, err := fq.provider(ctx)
			if err != nil {
				return err
			}
			output, err := inj.QuoteOrder.Execute(ctx, input)
			if err != nil {
				return err
			}
			return writeJSON(cmd, dto.ToOrderQuoteResponse(output))
		},
	}

	cmd.Flags().StringVarP(&fq.file, "file", "f", "-", "Order request JSON, - for stdin")
	return cmd
}
