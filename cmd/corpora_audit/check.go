package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhitt/corpora-audit/internal/config"
	"github.com/mwhitt/corpora-audit/internal/observability"
	"github.com/mwhitt/corpora-audit/internal/pipeline"
	"github.com/mwhitt/corpora-audit/internal/render"
)

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Audit every corpus under the root and render the status artifacts",
	Long: `Walks the corpora root, evaluates each top-level directory against the
structure, documentation, and access policy, and writes the markdown status
report, the per-corpus doc tree, and the problem log.

Configuration can be loaded from a JSON or YAML file using --config.
Command-line arguments override config file values. When any check fails, the
problem log is also written to stderr and the command exits non-zero.`,
	RunE: runCheckCmd,
}

var (
	checkConfigPath  string
	checkRoot        string
	checkOkOwners    string
	checkGroupConfig string
	checkFixPerms    bool
	checkVerbose     bool
	checkConcurrency int
	checkOutFile     string
	checkLogFile     string
	checkDocDir      string
	checkHeaderFile  string
	checkMidFile     string
	checkFooterFile  string
)

func init() {
	// Config file flag (processed first)
	checkCommand.Flags().StringVar(&checkConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")

	checkCommand.Flags().StringVarP(&checkRoot, "root", "r", "", "Path to the top-level corpora directory (defaults to CORPORA_ROOT env var)")
	checkCommand.Flags().StringVar(&checkOkOwners, "ok-owners", "", "Comma-separated list of allowed owners (defaults to CORPORA_OK_OWNERS env var)")
	checkCommand.Flags().StringVarP(&checkGroupConfig, "group-config", "g", "", "Path to the group policy file (defaults to CORPORA_GROUP_CONFIG env var)")
	checkCommand.Flags().BoolVar(&checkFixPerms, "fix-perms", false, "Attempt to fix \"other\"-permission violations in place")
	checkCommand.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Print detailed per-corpus output")
	checkCommand.Flags().IntVar(&checkConcurrency, "concurrency", 0, "Number of corpora evaluated in parallel (0 or 1 = sequential)")
	checkCommand.Flags().StringVarP(&checkOutFile, "out-file", "o", "", "Path to write the markdown report (stdout if not provided)")
	checkCommand.Flags().StringVar(&checkLogFile, "log-file", "", "Path to write the problem log")
	checkCommand.Flags().StringVar(&checkDocDir, "doc-dir", "", "DESTROYS this directory if it exists and rebuilds it with per-corpus readmes")
	checkCommand.Flags().StringVar(&checkHeaderFile, "header", "", "Markdown fragment inserted above the status table")
	checkCommand.Flags().StringVar(&checkMidFile, "mid", "", "Markdown fragment inserted between the status and access tables")
	checkCommand.Flags().StringVar(&checkFooterFile, "footer", "", "Markdown fragment appended to the report")

	rootCmd.AddCommand(checkCommand)
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCheckConfig()
	if err != nil {
		return err
	}

	groups, err := config.LoadGroupConfig(cfg.GroupConfig)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(context.Background(), pipeline.Options{
		Root:        cfg.Root,
		OkOwners:    cfg.OkOwners,
		Groups:      groups,
		FixPerms:    cfg.FixPerms,
		Concurrency: cfg.Concurrency,
		RootAllow:   cfg.RootAllow,
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		for i := range report.Corpora {
			printer.PrintCorpusStatus(&report.Corpora[i])
		}
		printer.PrintRunSummary(report)
	}

	includes, err := readIncludes()
	if err != nil {
		return err
	}
	out := render.Markdown(report, groups, includes)
	if cfg.OutFile != "" {
		if err := os.WriteFile(cfg.OutFile, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", cfg.OutFile, err)
		}
	} else {
		fmt.Print(out)
	}

	if cfg.DocDir != "" {
		if err := render.BuildDocDir(report, cfg.DocDir); err != nil {
			return err
		}
	}

	log := render.Log(report, render.LogOptions{
		SizeWorryBytes: cfg.SizeWorryBytes,
	})
	if cfg.LogFile != "" {
		if err := os.WriteFile(cfg.LogFile, []byte(log), 0o644); err != nil {
			return fmt.Errorf("failed to write log to %s: %w", cfg.LogFile, err)
		}
	}

	if !report.Clean() {
		fmt.Fprintln(os.Stderr, log)
		return fmt.Errorf("audit found %d problem(s)", len(report.AllProblems()))
	}

	return nil
}

// buildCheckConfig merges CLI flags over an optional config file and built-in
// defaults, then validates the result.
func buildCheckConfig() (*config.Config, error) {
	flagCfg := config.Config{
		Root:        checkRoot,
		GroupConfig: checkGroupConfig,
		OutFile:     checkOutFile,
		LogFile:     checkLogFile,
		DocDir:      checkDocDir,
		FixPerms:    checkFixPerms,
		Verbose:     checkVerbose,
		Concurrency: checkConcurrency,
	}
	if checkOkOwners != "" {
		flagCfg.OkOwners = splitOwners(checkOkOwners)
	}

	cfg := flagCfg
	if checkConfigPath != "" {
		loaded, err := config.Load(checkConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = flagCfg.MergeWithDefaults(*loaded)
	}

	// Env vars fill anything still unset, then built-in defaults.
	if cfg.Root == "" {
		cfg.Root = os.Getenv("CORPORA_ROOT")
	}
	if cfg.GroupConfig == "" {
		cfg.GroupConfig = os.Getenv("CORPORA_GROUP_CONFIG")
	}
	if len(cfg.OkOwners) == 0 {
		cfg.OkOwners = splitOwners(os.Getenv("CORPORA_OK_OWNERS"))
	}
	if len(cfg.RootAllow) == 0 {
		cfg.RootAllow = config.DefaultRootAllow
	}
	if cfg.SizeWorryBytes == 0 {
		cfg.SizeWorryBytes = config.DefaultSizeWorryBytes
	}

	if cfg.Root == "" {
		return nil, fmt.Errorf("--root is required (or set CORPORA_ROOT)")
	}
	if cfg.GroupConfig == "" {
		return nil, fmt.Errorf("--group-config is required (or set CORPORA_GROUP_CONFIG)")
	}
	if len(cfg.OkOwners) == 0 {
		return nil, fmt.Errorf("--ok-owners is required (or set CORPORA_OK_OWNERS)")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitOwners(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	owners := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			owners = append(owners, trimmed)
		}
	}
	return owners
}

func readIncludes() (render.Includes, error) {
	var inc render.Includes
	for _, f := range []struct {
		path string
		dest *string
	}{
		{checkHeaderFile, &inc.Header},
		{checkMidFile, &inc.Mid},
		{checkFooterFile, &inc.Footer},
	} {
		if f.path == "" {
			continue
		}
		data, err := os.ReadFile(f.path)
		if err != nil {
			return inc, fmt.Errorf("failed to read include file %s: %w", f.path, err)
		}
		*f.dest = strings.TrimRight(string(data), "\n")
	}
	return inc, nil
}
