package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newLocationsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "Print the known locations, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			cfg, err := setup(opts, &level)
			if err != nil {
				return err
			}

			est, _, err := loadEstimator(cfg)
			if err != nil {
				return err
			}

			names, err := est.LocationNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newPredictCmd(opts *rootOptions) *cobra.Command {
	var (
		location        string
		sqft, bhk, bath float64
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Print the estimated price of one property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			cfg, err := setup(opts, &level)
			if err != nil {
				return err
			}

			est, _, err := loadEstimator(cfg)
			if err != nil {
				return err
			}

			price, err := est.EstimatedPrice(cmd.Context(), location, sqft, bhk, bath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", price)
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Location name (case-insensitive)")
	cmd.Flags().Float64Var(&sqft, "sqft", 0, "Total square footage")
	cmd.Flags().Float64Var(&bhk, "bhk", 0, "Number of bedrooms")
	cmd.Flags().Float64Var(&bath, "bath", 0, "Number of bathrooms")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("sqft")
	_ = cmd.MarkFlagRequired("bhk")
	_ = cmd.MarkFlagRequired("bath")

	return cmd
}
