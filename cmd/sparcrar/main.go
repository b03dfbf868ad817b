package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sparcrar/adapters/mrt"
	"sparcrar/app"
	"sparcrar/domain/physics"
	"sparcrar/domain/rar"
	"sparcrar/internal/config"
	"sparcrar/internal/errors"
	"sparcrar/internal/figures"
	"sparcrar/internal/logging"
	"sparcrar/internal/report"
	"sparcrar/internal/solver"
)

type runOptions struct {
	dataFile   string
	outputDir  string
	logLevel   string
	noFigures  bool
	exportXLSX bool
	exportHTML bool
}

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

// exitMessage prefixes coded errors with their code; flag and usage errors
// from cobra are printed as is.
func exitMessage(err error) string {
	if errors.IsAppError(err) {
		return fmt.Sprintf("error [%s]: %v", errors.GetCode(err), err)
	}
	return fmt.Sprintf("error: %v", err)
}

func newRootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "sparcrar",
		Short: "Two-horizon entropy sharing model against the SPARC RAR",
		Long: `Evaluate f(a) = a/(a + cH0/6) against the SPARC Radial Acceleration Relation.

The dataset is read from RAR_DATA_FILE (or --data) if set, then from
<program dir>/data/RAR.mrt and <program dir>/../data/RAR.mrt.

Environment:
  RAR_DATA_FILE     extra dataset path tried first
  RAR_OUTPUT_DIR    figure and export directory (default: program dir)
  RAR_LOG_LEVEL     debug|info|warn|error (default: info)
  RAR_SKIP_FIGURES  skip figure rendering
  RAR_EXPORT_XLSX   write sparc_rar_results.xlsx
  RAR_EXPORT_HTML   write sparc_rar_summary.md and .html`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataFile, "data", "", "Dataset path tried before the default locations")
	cmd.Flags().StringVar(&opts.outputDir, "out", "", "Directory for figures and exports")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.noFigures, "no-figures", false, "Skip figure rendering")
	cmd.Flags().BoolVar(&opts.exportXLSX, "xlsx", false, "Export results to an xlsx workbook")
	cmd.Flags().BoolVar(&opts.exportHTML, "html", false, "Export a markdown and HTML summary")

	cmd.AddCommand(newSolveCmd(), newGeometryCmd())
	return cmd
}

func loadConfig(cmd *cobra.Command, opts runOptions) (*config.Config, error) {
	cfg, err := config.Load(config.ProgramDir())
	if err != nil {
		return nil, err
	}
	if opts.dataFile != "" {
		cfg.Data.File = opts.dataFile
	}
	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(opts.logLevel)
	}
	if cmd.Flags().Changed("no-figures") {
		cfg.Output.SkipFigures = opts.noFigures
	}
	if cmd.Flags().Changed("xlsx") {
		cfg.Output.ExportXLSX = opts.exportXLSX
	}
	if cmd.Flags().Changed("html") {
		cfg.Output.ExportHTML = opts.exportHTML
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func candidates(cfg *config.Config) []string {
	var paths []string
	if cfg.Data.File != "" {
		paths = append(paths, cfg.Data.File)
	}
	return append(paths, mrt.DefaultCandidates(cfg.Data.BaseDir)...)
}

func runAnalysis(cmd *cobra.Command, opts runOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	loader := mrt.NewReader(candidates(cfg), logger)
	renderer := figures.NewRenderer(cfg.Output.Dir, logger)
	svc := app.NewAnalysisService(loader, renderer, logger)

	_, err = svc.Run(cmd.Context(), app.AnalysisRequest{
		OutputDir:   cfg.Output.Dir,
		SkipFigures: cfg.Output.SkipFigures,
		ExportXLSX:  cfg.Output.ExportXLSX,
		ExportHTML:  cfg.Output.ExportHTML,
	}, cmd.OutOrStdout())
	if err != nil {
		logger.Error("analysis failed", zap.String("code", errors.GetCode(err)), zap.Error(err))
		return err
	}
	return nil
}

func newSolveCmd() *cobra.Command {
	var gbar float64
	var model string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve g_bar = f(g_obs)·g_obs for a single baryonic acceleration",
		Long: `Invert the implicit model equation for one g_bar and print the outcome.

Example: sparcrar solve --gbar 1e-11 --model this-work`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ratioByName(model)
			if err != nil {
				return err
			}
			return printSolve(cmd.OutOrStdout(), gbar, f)
		},
	}

	cmd.Flags().Float64Var(&gbar, "gbar", 1e-11, "Baryonic acceleration in m/s²")
	cmd.Flags().StringVar(&model, "model", "this-work", "Model: this-work or bare")
	return cmd
}

func ratioByName(name string) (rar.Ratio, error) {
	c := physics.Standard()
	switch strings.ToLower(name) {
	case "this-work":
		return rar.ThisWork(c), nil
	case "bare":
		return rar.Bare(c), nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown model %q (want this-work or bare)", name))
	}
}

func printSolve(w io.Writer, gbar float64, f rar.Ratio) error {
	out := solver.Solve(gbar, f)
	if _, err := fmt.Fprintf(w, "model:      %s\ng_bar:      %.6e m/s²\ng_obs:      %.6e m/s²\npath:       %s\niterations: %d\n",
		f.Name(), out.Gbar, out.Value, out.Path, out.Iterations); err != nil {
		return err
	}
	if out.Reason != nil {
		_, err := fmt.Fprintf(w, "reason:     %v\n", out.Reason)
		return err
	}
	return nil
}

func newGeometryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geometry",
		Short: "Verify the 1/6 geometric factor by numerical integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			check, err := physics.VerifyGeometricFactor()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Analytical: 1/6 = %.6f\nNumerical:        %.6f\nAgreement:        %d decimals\n",
				check.Analytical, check.Numerical, report.Digits(check.Analytical, check.Numerical))
			return err
		},
	}
}
