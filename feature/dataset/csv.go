package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"
	"table-reconciler/core/utils"

	"github.com/minio/minio-go/v7"
)

// CSVLoader reads CSV objects with a header row from the bucket.
// Identifiers look like "s3:<object key>?trim=1"; trim strips surrounding
// whitespace from every field before typing it.
type CSVLoader struct {
	client storage.Client
	bucket string
}

// NewCSVLoader creates a loader reading objects from bucket.
func NewCSVLoader(client storage.Client, bucket string) *CSVLoader {
	return &CSVLoader{client: client, bucket: bucket}
}

// Name returns the scheme handled by the loader.
func (l *CSVLoader) Name() string {
	return "s3"
}

// Load downloads the object and types every field with utils.ParseScalar.
func (l *CSVLoader) Load(ctx context.Context, req reconcile.LoadRequest) (*reconcile.Dataset, error) {
	src, err := ParseSource(req.Source)
	if err != nil {
		return nil, err
	}

	trim, err := src.IntParam("trim", 0)
	if err != nil {
		return nil, err
	}

	obj, err := l.client.GetObject(ctx, l.bucket, src.Target, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", src.Target, err)
	}
	defer obj.Close()

	columns, values, err := ReadCSV(obj, req.Limit, trim != 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", src.Target, err)
	}
	return reconcile.NewDataset(req.Source, req.Origin, columns, values)
}

// List returns the identifiers of the CSV objects under prefix.
func (l *CSVLoader) List(ctx context.Context, prefix string) ([]string, error) {
	keys, err := storage.ListKeys(ctx, l.client, l.bucket, prefix, ".csv")
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = l.Name() + ":" + k
	}
	return ids, nil
}

// ReadCSV parses a header row followed by at most limit records (zero means all).
// Header names are always trimmed, fields only when trim is set.
func ReadCSV(r io.Reader, limit int, trim bool) ([]string, [][]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var values [][]any
	for limit <= 0 || len(values) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row := make([]any, len(record))
		for i, field := range record {
			if trim {
				field = strings.TrimSpace(field)
			}
			row[i] = utils.ParseScalar(field)
		}
		values = append(values, row)
	}
	return columns, values, nil
}

// WriteCSV writes the dataset as a header row followed by one record per row.
// Nil values are written as empty fields.
func WriteCSV(w io.Writer, ds *reconcile.Dataset) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ds.Columns); err != nil {
		return err
	}
	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, v := range row.Values {
			record[i] = utils.ToString(v)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportCSV uploads the dataset as a CSV object.
func ExportCSV(ctx context.Context, client storage.Client, bucket, object string, ds *reconcile.Dataset) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		return fmt.Errorf("failed to encode %s: %w", ds.Name, err)
	}
	_, err := client.PutObject(ctx, bucket, object, &buf, int64(buf.Len()), minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return nil
}
