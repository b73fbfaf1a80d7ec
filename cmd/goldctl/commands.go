package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/suPer8Hu/goldsmith-storefront/internal/app"
	"github.com/suPer8Hu/goldsmith-storefront/internal/media"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
	"github.com/suPer8Hu/goldsmith-storefront/internal/seed"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			if _, err := e.openDB(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter profile and catalogue",
		Long: `Inserts the goldsmith profile when none exists and the catalogue items
when the catalogue is empty. Existing rows are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			data, err := seedData(file)
			if err != nil {
				return err
			}
			gdb, err := e.openDB(cmd.Context())
			if err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), gdb, data, e.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile inserted: %t, items inserted: %d\n", res.Profile, res.Items)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML file (default: built-in data)")
	return cmd
}

func seedData(file string) (*seed.Data, error) {
	if file == "" {
		return seed.Default()
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return seed.Parse(raw)
}

func newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Inspect or override the gold price",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Fetch the current quote (live, stored or default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := priceService(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, svc.Current(cmd.Context()))
		},
	}

	var manual pricing.ManualQuote
	set := &cobra.Command{
		Use:   "set",
		Short: "Store a manual quote verbatim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := priceService(cmd)
			if err != nil {
				return err
			}
			q, err := svc.UpdateManually(cmd.Context(), manual)
			if err != nil {
				return err
			}
			return printJSON(cmd, q)
		},
	}
	set.Flags().Float64Var(&manual.Gold24K, "24k", 0, "24K price per gram")
	set.Flags().Float64Var(&manual.Gold22K, "22k", 0, "22K price per gram")
	set.Flags().Float64Var(&manual.Gold18K, "18k", 0, "18K price per gram")
	set.Flags().Float64Var(&manual.Silver, "silver", 0, "silver price per gram")
	for _, name := range []string{"24k", "22k", "18k", "silver"} {
		_ = set.MarkFlagRequired(name)
	}

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List stored quotes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := priceService(cmd)
			if err != nil {
				return err
			}
			quotes, err := svc.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd, quotes)
		},
	}
	history.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of quotes")

	cmd.AddCommand(get, set, history)
	return cmd
}

func priceService(cmd *cobra.Command) (*pricing.Service, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, err
	}
	gdb, err := e.openDB(cmd.Context())
	if err != nil {
		return nil, err
	}
	return pricing.NewService(pricing.NewRepo(gdb), app.PriceSource(e.cfg, nil, e.log), e.log), nil
}

func newCalcCmd() *cobra.Command {
	var (
		weight, labour float64
		purity         string
		gst, offline   bool
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Price an item at the current quote",
		Long: `Runs the price calculator. With --offline the built-in default quote is
used and no database or provider is contacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if weight < 0 || labour < 0 {
				return errors.New("--weight and --labour must not be negative")
			}
			if offline {
				return printJSON(cmd, pricing.Calculate(pricing.DefaultQuote(time.Now().UTC()), weight, purity, labour, gst))
			}
			svc, err := priceService(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, svc.Calculate(cmd.Context(), weight, purity, labour, gst))
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in grams")
	cmd.Flags().StringVar(&purity, "purity", pricing.Purity22K, "purity grade (24K, 22K, 18K)")
	cmd.Flags().Float64Var(&labour, "labour", pricing.DefaultLabourPerGram, "labour cost per gram")
	cmd.Flags().BoolVar(&gst, "gst", true, "include GST")
	cmd.Flags().BoolVar(&offline, "offline", false, "use the default quote")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func newSignUploadCmd() *cobra.Command {
	var resourceType, folder string
	cmd := &cobra.Command{
		Use:   "sign-upload",
		Short: "Issue signed direct-upload credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			signer := app.Signer(e.cfg)
			if signer == nil {
				return media.ErrNotConfigured
			}
			creds, err := signer.Sign(resourceType, folder, time.Now())
			if err != nil {
				return err
			}
			return printJSON(cmd, creds)
		},
	}
	cmd.Flags().StringVar(&resourceType, "resource-type", "image", "image or video")
	cmd.Flags().StringVar(&folder, "folder", media.DefaultFolder, "destination folder")
	return cmd
}
