package cli

import (
	"context"
	"fmt"

	"github.com/ppiankov/supplycheck/internal/pipeline"
	"github.com/spf13/cobra"
)

// verifyCmd runs the same check as the root command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Fetch the master data and verify the supply type mapping",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgViper)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.RunTimeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(errOut, "Cards:    %s\n", cfg.Sources.CardsURL)
		fmt.Fprintf(errOut, "Supplies: %s\n", cfg.Sources.SuppliesURL)
		fmt.Fprintf(errOut, "Timeout:  %v (per request %v)\n", cfg.HTTP.RunTimeout, cfg.HTTP.Timeout)
		fmt.Fprintln(errOut)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, out)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer()
	if err := renderer.RenderSummary(out, report); err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintln(errOut)
		renderer.RenderDiagnostics(errOut, report)
	}

	if !report.Verified() {
		return ErrVerificationFailed
	}
	return nil
}
