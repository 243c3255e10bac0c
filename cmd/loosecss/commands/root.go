// Package commands implements the CLI commands for loosecss.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/loosecss/internal/batch"
	"github.com/jmylchreest/loosecss/internal/config"
	"github.com/jmylchreest/loosecss/internal/logger"
	"github.com/jmylchreest/loosecss/internal/output"
	"github.com/jmylchreest/loosecss/pkg/cleaner/loosecss"
)

var rootCmd = &cobra.Command{
	Use:   "loosecss",
	Short: "Strip stray CSS left outside <style> blocks in HTML pages",
	Long: `loosecss removes CSS rules that ended up directly after the opening
<body> tag instead of inside a <style> block.

For every configured page it takes the text between <body ...> and the first
known element (<!--, <div, <script, <nav, <header, <main, <section). If that
text contains letters and a line starting with a known selector, it is
replaced by a single newline and the page is rewritten in place.

Run with no arguments to clean the default pages below the project root
(the parent of the directory holding this binary).

Examples:
  # Clean the default pages
  loosecss

  # See what would change without writing
  loosecss --dry-run

  # Clean other pages under another root, emit a JSON report
  loosecss --root ./site --file "pages/**/*.html" --report json`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClean,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default ./.loosecss.yaml or $HOME/.loosecss.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("json-logs", false, "emit logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))

	flags := rootCmd.Flags()
	flags.String("root", "", "project root the file list is relative to")
	flags.StringSliceP("file", "f", nil, "file or glob to clean, relative to root (replaces the default list, can be repeated)")
	flags.Bool("dry-run", false, "report what would be cleaned without writing")
	flags.String("report", "", "write a run report to stdout: json, jsonl, yaml")

	_ = viper.BindPFlag("root", flags.Lookup("root"))
	_ = viper.BindPFlag("files", flags.Lookup("file"))
	_ = viper.BindPFlag("dry_run", flags.Lookup("dry-run"))
	_ = viper.BindPFlag("report", flags.Lookup("report"))

	config.SetDefaults(viper.GetViper())
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".loosecss")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

func runClean(cmd *cobra.Command, _ []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("json_logs"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("config file loaded", "path", used)
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	logger.Debug("configuration",
		"root", cfg.Root,
		"files", len(cfg.Files),
		"patterns", len(cfg.Patterns),
		"markers", len(cfg.Markers),
		"dry_run", cfg.DryRun)

	c, err := loosecss.New(cfg.CleanerConfig())
	if err != nil {
		return err
	}

	runner := batch.NewOS(cfg.Root, c, batch.WithDryRun(cfg.DryRun))
	summary := runner.Run(ctx, cfg.Files)

	if err := summary.Err(); err != nil {
		logger.Debug("per-file errors", "count", summary.Failed, "error", err)
	}

	if cfg.Report == "" {
		printSummary(cmd.OutOrStdout(), summary)
		return nil
	}

	// Keep stdout machine-readable when a report is requested.
	printSummary(cmd.ErrOrStderr(), summary)
	if err := writeReport(cmd.OutOrStdout(), cfg.Report, summary); err != nil {
		logError("writing report: %v", err)
	}
	return nil
}

func printSummary(w io.Writer, s *batch.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.String())
	if removed := s.BytesRemoved(); removed > 0 {
		verb := "removed"
		if s.DryRun {
			verb = "would remove"
		}
		fmt.Fprintf(w, "%s %s of loose CSS\n", verb, humanize.Bytes(uint64(removed)))
	}
}

func writeReport(w io.Writer, format string, s *batch.Summary) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	wr, err := output.NewWriter(w, f)
	if err != nil {
		return err
	}

	if f.Streaming() {
		for _, file := range s.Files {
			if err := wr.Write(file); err != nil {
				return err
			}
		}
	} else if err := wr.Write(s); err != nil {
		return err
	}
	return wr.Close()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
