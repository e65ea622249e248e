package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"table-reconciler/core/config"
	"table-reconciler/core/logger"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"
	"table-reconciler/feature/comparison"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrNotClean is returned by compare --fail-on-diff when the datasets differ.
var ErrNotClean = errors.New("datasets differ")

var (
	compareSource      string
	compareDestination string
	compareBy          string
	compareColumns     string
	compareMode        string
	compareLimit       int
	compareWorkers     int
	compareHTML        string
	compareOutput      string
	compareUpload      string
	compareFailOnDiff  bool
	compareTimeoutSecs int
)

// compareCmd reconciles two datasets from the command line.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Reconcile two datasets and report the differences",
	Long: `Loads a source and a destination dataset, matches their rows by the
compare-by columns and logs a summary.

Dataset identifiers:
  sql:<table>?order=<column>   table in the configured database
  s3:<object.csv>?trim=1       CSV object in the configured bucket
  synthetic:<rows>?seed=<n>    generated id/name/flag rows

Examples:
  # Compare two tables by id
  compare --source sql:users --destination sql:users_migrated --by id

  # Compare exported CSVs by a composite key, render the diff
  compare --source s3:old/orders.csv --destination s3:new/orders.csv \
    --by customer_id,order_no --html report.html

  # Large pre-sorted inputs, fail the pipeline on any difference
  compare --source sql:events?order=id --destination s3:events.csv \
    --mode positional --workers 8 --fail-on-diff`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareSource, "source", "", "Source dataset identifier")
	f.StringVar(&compareDestination, "destination", "", "Destination dataset identifier")
	f.StringVar(&compareBy, "by", "", "Comma-separated compare-by columns (default from config)")
	f.StringVar(&compareColumns, "columns", "", "Comma-separated compared columns (default: all, identical schemas)")
	f.StringVar(&compareMode, "mode", "", "Match mode: exact or positional (default from config)")
	f.IntVar(&compareLimit, "limit", 0, "Row limit per dataset (default from config)")
	f.IntVar(&compareWorkers, "workers", 0, "Matching goroutines (default from config)")
	f.StringVar(&compareHTML, "html", "", "Write the side by side HTML report to this file")
	f.StringVar(&compareOutput, "output", "", "Write the JSON report to this file")
	f.StringVar(&compareUpload, "upload", "", "Upload the HTML report to this object key")
	f.BoolVar(&compareFailOnDiff, "fail-on-diff", false, "Exit with an error when the datasets differ")
	f.IntVar(&compareTimeoutSecs, "timeout", 300, "Timeout in seconds")
	_ = compareCmd.MarkFlagRequired("source")
	_ = compareCmd.MarkFlagRequired("destination")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(compareTimeoutSecs)*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	d, err := buildDeps(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize datasets: %w", err)
	}

	svc := comparison.NewService(d.registry, nil, d.csv, cfg.Reconcile, l)
	report, err := svc.Compare(ctx, comparison.CompareRequest{
		Source:      compareSource,
		Destination: compareDestination,
		CompareBy:   reconcile.SplitColumns(compareBy),
		Columns:     reconcile.SplitColumns(compareColumns),
		Mode:        compareMode,
		Limit:       compareLimit,
		Workers:     compareWorkers,
	})
	if err != nil {
		return err
	}

	for col, n := range report.Summary.ColumnDiffs {
		if n > 0 {
			l.Info("Column differences", zap.String("column", col), zap.Int("rows", n))
		}
	}

	if compareOutput != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := os.WriteFile(compareOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		l.Info("JSON report written", zap.String("path", compareOutput))
	}

	if compareHTML != "" || compareUpload != "" {
		var buf bytes.Buffer
		if err := comparison.RenderHTML(&buf, report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if compareHTML != "" {
			if err := os.WriteFile(compareHTML, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			l.Info("HTML report written", zap.String("path", compareHTML))
		}
		if compareUpload != "" {
			if err := storage.EnsureBucket(ctx, d.store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				return err
			}
			_, err := d.store.PutObject(ctx, cfg.Storage.Bucket, compareUpload, bytes.NewReader(buf.Bytes()), int64(buf.Len()),
				minio.PutObjectOptions{ContentType: "text/html"})
			if err != nil {
				return fmt.Errorf("failed to upload report: %w", err)
			}
			l.Info("HTML report uploaded", zap.String("bucket", cfg.Storage.Bucket), zap.String("object", compareUpload))
		}
	}

	if compareFailOnDiff && !report.Clean() {
		return ErrNotClean
	}
	return nil
}
