package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/confio/tfi/x/pair/keeper"
)

const (
	FlagPools             = "pools"
	FlagTotalShare        = "total-share"
	FlagSlippageTolerance = "slippage-tolerance"
)

// NewQuoteCmd groups the offline pricing commands.
func NewQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price swaps and liquidity operations against given reserves",
	}
	cmd.AddCommand(
		newQuoteSwapCmd(),
		newQuoteReverseCmd(),
		newQuoteProvideCmd(),
		newQuoteWithdrawCmd(),
	)
	return cmd
}

func newQuoteSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap [offer-pool] [ask-pool] [offer-amount]",
		Short: "Return, spread and commission for selling offer-amount",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args...)
			if err != nil {
				return err
			}
			cfg := configFromCmd(cmd)
			quote, err := keeper.ComputeSwap(amounts[0], amounts[1], amounts[2], cfg.Commission)
			if err != nil {
				return err
			}
			return printResult(cmd, cfg, []field{
				{"return_amount", quote.ReturnAmount},
				{"spread_amount", quote.SpreadAmount},
				{"commission_amount", quote.CommissionAmount},
			})
		},
	}
}

func newQuoteReverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse [offer-pool] [ask-pool] [ask-amount]",
		Short: "Offer needed to receive ask-amount after commission",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args...)
			if err != nil {
				return err
			}
			cfg := configFromCmd(cmd)
			quote, err := keeper.ComputeOfferAmount(amounts[0], amounts[1], amounts[2], cfg.Commission)
			if err != nil {
				return err
			}
			return printResult(cmd, cfg, []field{
				{"offer_amount", quote.OfferAmount},
				{"spread_amount", quote.SpreadAmount},
				{"commission_amount", quote.CommissionAmount},
			})
		},
	}
}

func newQuoteProvideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provide [deposit-0] [deposit-1]",
		Short: "Shares minted for a deposit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deposits, err := parseAmounts(args...)
			if err != nil {
				return err
			}
			rawPools, err := cmd.Flags().GetStringSlice(FlagPools)
			if err != nil {
				return err
			}
			if len(rawPools) != 2 {
				return fmt.Errorf("--%s needs exactly two amounts, got %d", FlagPools, len(rawPools))
			}
			pools, err := parseAmounts(rawPools...)
			if err != nil {
				return err
			}
			rawTotal, err := cmd.Flags().GetString(FlagTotalShare)
			if err != nil {
				return err
			}
			total, err := parseAmounts(rawTotal)
			if err != nil {
				return err
			}

			d := [2]math.Int{deposits[0], deposits[1]}
			p := [2]math.Int{pools[0], pools[1]}
			if !total[0].IsZero() {
				tolerance, err := slippageFlag(cmd)
				if err != nil {
					return err
				}
				if err := keeper.AssertSlippageTolerance(tolerance, d, p); err != nil {
					return err
				}
			}

			share, err := keeper.ComputeShare(d, p, total[0])
			if err != nil {
				return err
			}
			return printResult(cmd, configFromCmd(cmd), []field{{"share", share}})
		},
	}
	cmd.Flags().StringSlice(FlagPools, []string{"0", "0"}, "reserves before the deposit")
	cmd.Flags().String(FlagTotalShare, "0", "outstanding liquidity shares")
	cmd.Flags().String(FlagSlippageTolerance, "", "maximum deviation from the pool ratio")
	return cmd
}

func newQuoteWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw [share] [total-share] [pool-0] [pool-1]",
		Short: "Assets refunded for burning share",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args...)
			if err != nil {
				return err
			}
			refund, err := keeper.ComputeRefund(amounts[0], amounts[1], [2]math.Int{amounts[2], amounts[3]})
			if err != nil {
				return err
			}
			return printResult(cmd, configFromCmd(cmd), []field{
				{"refund_0", refund[0]},
				{"refund_1", refund[1]},
			})
		},
	}
}

func slippageFlag(cmd *cobra.Command) (*math.LegacyDec, error) {
	raw, err := cmd.Flags().GetString(FlagSlippageTolerance)
	if err != nil || raw == "" {
		return nil, err
	}
	tolerance, err := math.LegacyNewDecFromStr(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", FlagSlippageTolerance, raw, err)
	}
	return &tolerance, nil
}

func parseAmounts(args ...string) ([]math.Int, error) {
	out := make([]math.Int, len(args))
	for i, arg := range args {
		v, ok := math.NewIntFromString(strings.TrimSpace(arg))
		if !ok {
			return nil, fmt.Errorf("invalid amount %q", arg)
		}
		checked, err := keeper.CheckAmount(v)
		if err != nil {
			return nil, err
		}
		out[i] = checked
	}
	return out, nil
}

type field struct {
	key   string
	value math.Int
}

func printResult(cmd *cobra.Command, cfg Config, fields []field) error {
	cfg.Logger.Debug("computed quote", "command", cmd.Name(), "commission", cfg.Commission.String())

	out := cmd.OutOrStdout()
	if cfg.Output == OutputJSON {
		obj := make(map[string]math.Int, len(fields))
		for _, f := range fields {
			obj[f.key] = f.value
		}
		bz, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(bz))
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(out, "%s: %s\n", f.key, f.value); err != nil {
			return err
		}
	}
	return nil
}
