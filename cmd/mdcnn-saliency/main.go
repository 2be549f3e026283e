// Package main provides the mdcnn-saliency command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/harel-coffee/MTB-CNN-auto/internal/artifact"
	"github.com/harel-coffee/MTB-CNN-auto/internal/duckdb"
	"github.com/harel-coffee/MTB-CNN-auto/internal/output"
	"github.com/harel-coffee/MTB-CNN-auto/internal/panel"
	"github.com/harel-coffee/MTB-CNN-auto/internal/saliency"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("mdcnn-saliency version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	initViperConfig()

	switch args[0] {
	case "tophits":
		return runTopHits(args[1:])
	case "lengths":
		return runLengths(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `mdcnn-saliency - MD-CNN saliency post-processing

Usage:
  mdcnn-saliency [options] <command> [arguments]

Commands:
  tophits     Extract top-ranked saliency positions per drug
  lengths     Print per-locus lengths computed from the coordinate matrix
  config      Manage mdcnn-saliency configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Extract the top 1%% of positions for every drug in the panel
  mdcnn-saliency tophits --input saliency/ --output hits/

  # Also persist hits into a queryable DuckDB store
  mdcnn-saliency tophits --input saliency/ --output hits/ --db hits.duckdb

  # Check locus lengths against the coordinate matrix
  mdcnn-saliency lengths --input saliency/

For more information on a command, use:
  mdcnn-saliency <command> --help
`)
}

func runTopHits(args []string) int {
	fs := flag.NewFlagSet("tophits", flag.ExitOnError)

	var (
		inputDir   string
		outputDir  string
		configFile string
		dbPath     string
		fraction   float64
		workers    int
	)

	fs.StringVar(&inputDir, "input", "", "Directory with coordinates.npy and <DRUG>_{mean,max}.npy files")
	fs.StringVar(&outputDir, "output", "", "Directory for per-drug hit tables (default: current directory)")
	fs.StringVar(&configFile, "config", "", "YAML panel configuration (default: built-in MD-CNN panel)")
	fs.StringVar(&dbPath, "db", "", "DuckDB database to store hits in (optional)")
	fs.Float64Var(&fraction, "fraction", 0, "Top fraction to extract (default: panel config, 0.01)")
	fs.IntVar(&workers, "workers", 1, "Parallel drug workers (0 = all CPUs)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Extract the top-ranked saliency positions for each drug in the panel.

Usage:
  mdcnn-saliency tophits [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  mdcnn-saliency tophits --input saliency/ --output hits/
  mdcnn-saliency tophits --input saliency/ --fraction 0.05
  mdcnn-saliency tophits --input saliency/ --db hits.duckdb --workers 0
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if inputDir == "" {
		inputDir = viper.GetString("paths.input")
	}
	if outputDir == "" {
		outputDir = viper.GetString("paths.output")
	}
	if outputDir == "" {
		outputDir = "."
	}
	if dbPath == "" {
		dbPath = viper.GetString("store.db")
	}

	if inputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: --input directory required\n")
		fmt.Fprintf(os.Stderr, "Hint: Set a default with: mdcnn-saliency config set paths.input <dir>\n")
		return ExitUsage
	}

	cfg, ok := loadPanelConfig(configFile)
	if !ok {
		return ExitError
	}
	if fraction > 0 {
		cfg.TopFraction = fraction
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	pipeline, err := saliency.NewPipeline(artifact.NewDir(inputDir), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	pipeline.SetLogger(logger)

	dirSink, err := output.NewDirSink(outputDir, cfg.TopFraction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	sink := output.MultiSink{dirSink}
	if dbPath != "" {
		store, err := duckdb.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening hit store: %v\n", err)
			return ExitError
		}
		defer store.Close()
		sink = append(sink, store)
	}

	fmt.Fprintf(os.Stderr, "Processing %d drugs across %d loci (top %g)\n",
		len(cfg.Drugs), len(cfg.Loci), cfg.TopFraction)

	if err := pipeline.Run(sink, workers); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	return ExitSuccess
}

func runLengths(args []string) int {
	fs := flag.NewFlagSet("lengths", flag.ExitOnError)

	var (
		inputDir   string
		configFile string
	)

	fs.StringVar(&inputDir, "input", "", "Directory with coordinates.npy")
	fs.StringVar(&configFile, "config", "", "YAML panel configuration (default: built-in MD-CNN panel)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Print per-locus lengths computed from the coordinate matrix.

Usage:
  mdcnn-saliency lengths [options]

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if inputDir == "" {
		inputDir = viper.GetString("paths.input")
	}
	if inputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: --input directory required\n")
		return ExitUsage
	}

	cfg, ok := loadPanelConfig(configFile)
	if !ok {
		return ExitError
	}

	pipeline, err := saliency.NewPipeline(artifact.NewDir(inputDir), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	registry := pipeline.Registry()
	for _, name := range registry.Names() {
		locus, err := registry.Lookup(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		fmt.Printf("%s\t%d\n", locus.Name, locus.Length)
	}

	return ExitSuccess
}

// loadPanelConfig loads the panel config file, or the built-in panel
// if path is empty.
func loadPanelConfig(path string) (panel.Config, bool) {
	if path == "" {
		return panel.DefaultConfig(), true
	}
	cfg, err := panel.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, false
	}
	return cfg, true
}
