package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ossyrian/lnkparse/internal/config"
	"github.com/ossyrian/lnkparse/internal/logging"
	"github.com/ossyrian/lnkparse/internal/parser"
	lnktypes "github.com/ossyrian/lnkparse/internal/types"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:          "lnkparse",
	Short:        "Decode Windows shell link (.lnk) files to JSON",
	RunE:          parse,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	// i/o
	rootCmd.Flags().StringP("input", "i", "", "path to .lnk file to parse (required)")
	rootCmd.Flags().StringP("output", "o", "", "path to output JSON file (default stdout)")
	rootCmd.MarkFlagRequired("input")

	// decoding
	rootCmd.Flags().String("code-page", "", "ANSI code page of non-unicode links (e.g. windows-1252)")
	rootCmd.Flags().Bool("strict", false, "fail when extra data ends on a truncated or unknown block")

	// other opts
	rootCmd.Flags().Bool("pretty", false, "indent JSON output")
	rootCmd.Flags().String("log-level", "info", "log level (trace, debug, info, warn, error, fatal)")
	rootCmd.Flags().String("log-output-dir", "", "directory to write log files (if set, logs are written to both stderr and file)")
	rootCmd.Flags().Bool("dry-run", false, "parse without writing output (validation)")

	viper.BindPFlag("input", rootCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("code_page", rootCmd.Flags().Lookup("code-page"))
	viper.BindPFlag("strict", rootCmd.Flags().Lookup("strict"))
	viper.BindPFlag("pretty", rootCmd.Flags().Lookup("pretty"))
	viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log_output_dir", rootCmd.Flags().Lookup("log-output-dir"))
	viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))
}

// initConfig reads in config file and environment variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lnkparse"))
		}
		viper.AddConfigPath("/etc/lnkparse")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("LNKPARSE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// parse runs the main lnkparse command in order to decode
// the specified link file
func parse(cmd *cobra.Command, args []string) error {
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogOutputDir); err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}

	slog.Info("parsing file", "input", cfg.InputFile)

	link, err := parser.ParseFile(cfg.InputFile, cfg)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", cfg.InputFile, err)
	}

	if cfg.DryRun {
		slog.Info("dry run, skipping output")
		return nil
	}

	return writeDocument(cmd.OutOrStdout(), lnktypes.FromLink(link))
}

// writeDocument writes doc as JSON to the configured output file, or to
// stdout when none is set.
func writeDocument(stdout io.Writer, doc *lnktypes.Document) error {
	w := stdout
	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.OutputFile != "" {
		slog.Info("wrote output", "output", cfg.OutputFile)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
