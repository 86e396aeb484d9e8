package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gioe/quotient/internal/irt"
	"github.com/gioe/quotient/internal/itembank"
	"github.com/gioe/quotient/internal/store"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Validate and inspect item banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an item bank JSON file against the content blueprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		reg, err := cfg.Registry()
		if err != nil {
			return fmt.Errorf("build registry: %w", err)
		}

		bank, err := itembank.Load(args[0], reg)
		if err != nil {
			return fmt.Errorf("validate bank: %w", err)
		}
		fmt.Printf("OK: %s (%d items)\n", bank.Name, len(bank.Items))
		return nil
	},
}

var bankStatsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Summarize item parameters per domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		reg, err := cfg.Registry()
		if err != nil {
			return fmt.Errorf("build registry: %w", err)
		}

		bank, err := itembank.Load(args[0], reg)
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}
		printBankStats(bank)
		return nil
	},
}

var bankImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an item bank into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		reg, err := cfg.Registry()
		if err != nil {
			return fmt.Errorf("build registry: %w", err)
		}

		bank, err := itembank.Load(args[0], reg)
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.ItemRepo().Upsert(context.Background(), bank.Items); err != nil {
			return fmt.Errorf("import items: %w", err)
		}
		fmt.Printf("Imported %d items from %s\n", len(bank.Items), bank.Name)
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankStatsCmd)
	bankCmd.AddCommand(bankImportCmd)
}

// domainStats accumulates per-domain parameter summaries.
type domainStats struct {
	count       int
	minB, maxB  float64
	sumA        float64
	infoAtZero  float64
	infoAtMinus float64
	infoAtPlus  float64
}

func printBankStats(bank *itembank.Bank) {
	byDomain := make(map[string]*domainStats)
	for _, it := range bank.Items {
		ds, ok := byDomain[it.Tag]
		if !ok {
			ds = &domainStats{minB: it.B, maxB: it.B}
			byDomain[it.Tag] = ds
		}
		ds.count++
		if it.B < ds.minB {
			ds.minB = it.B
		}
		if it.B > ds.maxB {
			ds.maxB = it.B
		}
		ds.sumA += it.A
		ds.infoAtMinus += irt.Information(-2, it.A, it.B)
		ds.infoAtZero += irt.Information(0, it.A, it.B)
		ds.infoAtPlus += irt.Information(2, it.A, it.B)
	}

	tags := make([]string, 0, len(byDomain))
	for tag := range byDomain {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	fmt.Printf("%s: %d items, %d domains\n\n", bank.Name, len(bank.Items), len(tags))
	fmt.Printf("%-22s  %5s  %6s  %12s  %21s\n", "Domain", "Items", "MeanA", "B range", "Info @ -2 / 0 / +2")
	for _, tag := range tags {
		ds := byDomain[tag]
		fmt.Printf("%-22s  %5d  %6.2f  %5.2f..%5.2f  %6.1f %6.1f %6.1f\n",
			tag, ds.count, ds.sumA/float64(ds.count), ds.minB, ds.maxB,
			ds.infoAtMinus, ds.infoAtZero, ds.infoAtPlus)
	}
}
