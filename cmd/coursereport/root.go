package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/claes/coursereport/internal/config"
	"github.com/claes/coursereport/internal/model"
	"github.com/claes/coursereport/internal/report"
	"github.com/claes/coursereport/internal/scan"
	"github.com/claes/coursereport/internal/store"
)

type options struct {
	path    string
	config  string
	output  string
	quiet   bool
	verbose bool
	now     func() time.Time
}

func newRootCmd() *cobra.Command {
	o := &options{now: time.Now}
	cmd := &cobra.Command{
		Use:   "coursereport",
		Short: "Generate a printable HTML progress report for a course repository",
		Long: `coursereport scans a course repository laid out as
"Course N: Title/Week M/<assignment>/" and writes a single self-contained,
print-friendly HTML report listing every notebook and script it finds.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, o)
		},
	}
	cmd.PersistentFlags().StringVarP(&o.path, "path", "p", "", "root directory to scan (default: current directory)")
	cmd.PersistentFlags().StringVarP(&o.config, "config", "c", "", "YAML config file (default: "+config.FileName+" in the scan root, if present)")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVarP(&o.output, "output", "o", config.Default().Output, "output HTML file path, relative to the scan root unless absolute")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "do not print the summary or progress spinner")

	cmd.AddCommand(newServeCmd(o))
	return cmd
}

// resolve returns the scan root and the effective configuration.
func (o *options) resolve(cmd *cobra.Command) (string, config.Config, error) {
	root := o.path
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", config.Config{}, errors.Wrap(err, "working directory")
		}
		root = wd
	}
	var cfg config.Config
	var err error
	if o.config != "" {
		cfg, err = config.Load(o.config, false)
	} else {
		cfg, err = config.Load(filepath.Join(root, config.FileName), true)
	}
	if err != nil {
		return "", cfg, err
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.Output = o.output
	}
	return root, cfg, nil
}

func runGenerate(cmd *cobra.Command, o *options) error {
	root, cfg, err := o.resolve(cmd)
	if err != nil {
		return err
	}
	sc, err := scan.Open(root,
		scan.WithLogger(slog.Default()),
		scan.WithDescriptionLimit(cfg.DescriptionLimit))
	if err != nil {
		return err
	}

	spin := func(func()) error { return nil }
	if !o.quiet && isatty.IsTerminal(os.Stderr.Fd()) {
		spin = func(action func()) error {
			return spinner.New().Title(fmt.Sprintf("Scanning %s...", sc.Root())).Action(action).Run()
		}
	}
	cat, scanErr := scanOnce(sc.Scan, spin)
	if scanErr != nil {
		return scanErr
	}

	opts := cfg.ReportOptions()
	opts.GeneratedAt = o.now()
	body, err := report.RenderBytes(cat, opts)
	if err != nil {
		return err
	}

	out := cfg.Output
	if !filepath.IsAbs(out) {
		out = filepath.Join(sc.Root(), out)
	}
	if err := store.WriteFileAtomic(out, body, 0o644); err != nil {
		return errors.Wrapf(err, "write report %s", out)
	}
	slog.Debug("report written", "path", out, "bytes", len(body), "issues", len(cat.Issues))

	if !o.quiet {
		printSummary(cmd.OutOrStdout(), cat, out, len(body))
	}
	return nil
}

// scanOnce runs scanFn under spin and returns after exactly one completed
// scan. spin may return before its action starts or while it is running.
func scanOnce(scanFn func() (*model.Catalog, error), spin func(action func()) error) (*model.Catalog, error) {
	var (
		cat  *model.Catalog
		err  error
		once sync.Once
	)
	action := func() {
		once.Do(func() { cat, err = scanFn() })
	}
	if serr := spin(action); serr != nil {
		slog.Debug("spinner unavailable", "err", serr)
	}
	action()
	return cat, err
}

func printSummary(w io.Writer, cat *model.Catalog, out string, size int) {
	if len(cat.Courses) == 0 {
		fmt.Fprintf(w, "No courses found in %s.\n", cat.Root)
	} else {
		fmt.Fprintln(w, summaryTable(cat))
	}
	if len(cat.Issues) > 0 {
		fmt.Fprintf(w, "%d file(s) could not be read; see the report for details.\n", len(cat.Issues))
	}
	fmt.Fprintf(w, "Report saved to: %s (%s)\n", out, humanBytes(size))
}
