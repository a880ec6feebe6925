package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dexhamter/tabload/internal/checksum"
	"github.com/dexhamter/tabload/internal/files"
	"github.com/dexhamter/tabload/internal/files/filesystem"
	"github.com/dexhamter/tabload/internal/logging"
	"github.com/dexhamter/tabload/internal/services"
	"github.com/dexhamter/tabload/internal/tabular"
	"github.com/dexhamter/tabload/pkg/tabload"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Dry-run analysis of a tabular file",
	Long: `Analyze reads a source file and reports what an import would do, without
connecting to any database.

For each table or worksheet the report shows the resolved destination table
name, row and column counts, the inferred column types and whether the load
would use chunked mode. Worksheets that would be skipped are listed with the
skip reason.

The command exits non-zero when nothing in the file could be imported, so it
works as a pre-flight check in pipelines.

Examples:
  # Inspect a CSV before importing it
  tabload analyze data.csv -t sales

  # Check every worksheet of a workbook
  tabload analyze report.xlsx -t report

  # Semicolon-delimited file
  tabload analyze data.csv -t sales --csv-option delimiter=";"`,
	Args:              RequireSourceFile,
	ValidArgsFunction: completeSourceFiles,
	RunE:              runAnalyze,
}

type analyzeFlagValues struct {
	table            string
	chunkSize        int
	chunkThresholdMB int64
	csvOptions       []string
}

var analyzeFlags analyzeFlagValues

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.table, "table", "t", "",
		"Destination table name the analysis resolves against (required)")
	_ = analyzeCmd.MarkFlagRequired("table")

	analyzeCmd.Flags().IntVar(&analyzeFlags.chunkSize, "chunk-size", 0,
		fmt.Sprintf("Rows per write batch assumed for batch estimates (default %d)", tabload.DefaultChunkSize))
	analyzeCmd.Flags().Int64Var(&analyzeFlags.chunkThresholdMB, "chunk-threshold-mb", 0,
		fmt.Sprintf("Delimited file size in MiB that would trigger chunked loading (default %d)",
			tabload.DefaultChunkThresholdBytes/(1024*1024)))
	analyzeCmd.Flags().StringSliceVar(&analyzeFlags.csvOptions, "csv-option", nil,
		"CSV parsing options as key=value pairs (can be specified multiple times)\n"+
			"Keys: delimiter (single character), null (repeatable null literal)")
}

// buildAnalyzeConfig builds an AnalyzeConfig from CLI flags and tabload.yaml.
func buildAnalyzeConfig(sourcePath string, verbose bool) (tabload.AnalyzeConfig, error) {
	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		return tabload.AnalyzeConfig{}, err
	}

	csvOpts, err := resolveCSVOptions(analyzeFlags.csvOptions, projectCfg)
	if err != nil {
		return tabload.AnalyzeConfig{}, err
	}

	chunkSize := analyzeFlags.chunkSize
	chunkThresholdMB := analyzeFlags.chunkThresholdMB
	if projectCfg != nil {
		if chunkSize == 0 {
			chunkSize = projectCfg.Defaults.ChunkSize
		}
		if chunkThresholdMB == 0 {
			chunkThresholdMB = projectCfg.Defaults.ChunkThresholdMB
		}
	}

	return tabload.AnalyzeConfig{
		SourcePath:          sourcePath,
		TableName:           analyzeFlags.table,
		ChunkSize:           chunkSize,
		ChunkThresholdBytes: chunkThresholdMB * 1024 * 1024,
		CSV:                 csvOpts,
		Verbose:             verbose,
	}, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	verbose := getVerboseFlag(cmd)

	config, err := buildAnalyzeConfig(sourcePath, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	reader := tabular.NewReader(filesystem.NewOSFileSystem(), logger)
	inspector := files.NewInspector(checksum.New())

	analyzer := services.NewAnalysisService(reader, inspector, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling analysis...")
		cancel()
	}()

	report, err := analyzer.Analyze(ctx, config)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if !report.OK {
		return fmt.Errorf("no importable tables in %s: %w", sourcePath, tabload.ErrInvalidInput)
	}

	return nil
}
