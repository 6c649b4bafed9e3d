// cmd/tools/company-ingest/main.go
//
// Streams a company CSV into the Elasticsearch company index in bulk.
// Safe for large files: rows are read one at a time and flushed through
// a bulk indexer. Optional regional employee columns such as
// "current employee estimate de" are folded into the
// *_employee_estimate_by_region objects keyed by region suffix.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.uber.org/zap"

	"company-search/internal/common/config"
	"company-search/internal/common/database"
	"company-search/internal/common/logger"
	"company-search/internal/regions"
)

// CSV header -> index field. The first column of the dataset is an
// unnamed row number used as the document id.
var columnMap = map[string]string{
	"":                          "id",
	"name":                      "name",
	"domain":                    "domain",
	"year founded":              "year_founded",
	"industry":                  "industry",
	"size range":                "size_range",
	"locality":                  "locality",
	"country":                   "country",
	"linkedin url":              "linkedin_url",
	"current employee estimate": "current_employee_estimate",
	"total employee estimate":   "total_employee_estimate",
}

var numericFields = map[string]bool{
	"id":                        true,
	"year_founded":              true,
	"current_employee_estimate": true,
	"total_employee_estimate":   true,
}

const (
	currentRegionalPrefix = "current employee estimate "
	totalRegionalPrefix   = "total employee estimate "
)

type columnKind int

const (
	columnSkip columnKind = iota
	columnField
	columnCurrentRegional
	columnTotalRegional
)

// column describes how one CSV column maps onto the index document.
type column struct {
	kind  columnKind
	field string // index field name, or region suffix for regional kinds
}

func classifyColumns(header []string, suffixes map[string]bool) []column {
	cols := make([]column, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if field, ok := columnMap[name]; ok {
			cols[i] = column{kind: columnField, field: field}
			continue
		}
		if suffix, ok := regionalSuffix(name, currentRegionalPrefix, suffixes); ok {
			cols[i] = column{kind: columnCurrentRegional, field: suffix}
			continue
		}
		if suffix, ok := regionalSuffix(name, totalRegionalPrefix, suffixes); ok {
			cols[i] = column{kind: columnTotalRegional, field: suffix}
			continue
		}
		cols[i] = column{kind: columnSkip}
	}
	// A dataset exported without the blank id header still carries the
	// row number in the first column.
	if cols[0].kind == columnSkip {
		cols[0] = column{kind: columnField, field: "id"}
	}
	return cols
}

func regionalSuffix(name, prefix string, suffixes map[string]bool) (string, bool) {
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	suffix := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, prefix)))
	if !suffixes[suffix] {
		return "", false
	}
	return suffix, true
}

// rowToDoc builds the index document for one CSV record. Returns the
// document id and body, or ok=false when the row has no usable id.
func rowToDoc(record []string, cols []column) (string, map[string]interface{}, bool) {
	doc := make(map[string]interface{}, len(cols))
	currentByRegion := map[string]int64{}
	totalByRegion := map[string]int64{}

	for i, col := range cols {
		if i >= len(record) || col.kind == columnSkip {
			continue
		}
		value := strings.TrimSpace(record[i])

		switch col.kind {
		case columnField:
			if value == "" {
				doc[col.field] = nil
				continue
			}
			if numericFields[col.field] {
				doc[col.field] = parseCount(value)
			} else {
				doc[col.field] = value
			}
		case columnCurrentRegional:
			if value != "" {
				currentByRegion[col.field] = parseCount(value)
			}
		case columnTotalRegional:
			if value != "" {
				totalByRegion[col.field] = parseCount(value)
			}
		}
	}

	if len(currentByRegion) > 0 {
		doc["current_employee_estimate_by_region"] = currentByRegion
	}
	if len(totalByRegion) > 0 {
		doc["total_employee_estimate_by_region"] = totalByRegion
	}

	id, ok := doc["id"].(int64)
	if !ok {
		return "", nil, false
	}
	return strconv.FormatInt(id, 10), doc, true
}

// parseCount coerces CSV numerics, which arrive as "123", "123.0" or
// garbage, to an integer count. Unparseable values become 0.
func parseCount(value string) int64 {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int64(f)
	}
	return 0
}

func main() {
	csvPath := flag.String("csv", "data/companies_sorted.csv", "Path to the company CSV")
	indexName := flag.String("index", "", "Target index (defaults to search.default_index)")
	workers := flag.Int("workers", 4, "Bulk indexer worker count")
	flushBytes := flag.Int("flush-bytes", 5*1024*1024, "Bulk indexer flush threshold in bytes")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	index := *indexName
	if index == "" {
		index = cfg.Search.DefaultIndex
	}

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		zapLog.Fatal("elasticsearch client failed", zap.Error(err))
	}
	if err := esClient.Ping(context.Background()); err != nil {
		zapLog.Fatal("elasticsearch unreachable", zap.Error(err))
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		zapLog.Fatal("csv open failed", zap.Error(err), zap.String("path", *csvPath))
	}
	defer file.Close()

	suffixes := map[string]bool{}
	for _, region := range regions.Supported() {
		suffixes[region.IndexSuffix] = true
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     esClient.Client,
		Index:      index,
		NumWorkers: *workers,
		FlushBytes: *flushBytes,
	})
	if err != nil {
		zapLog.Fatal("bulk indexer init failed", zap.Error(err))
	}

	ctx := context.Background()
	start := time.Now()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		zapLog.Fatal("csv header read failed", zap.Error(err))
	}
	cols := classifyColumns(header, suffixes)

	var rows, skipped int64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			zapLog.Fatal("csv read failed", zap.Error(err), zap.Int64("row", rows))
		}

		docID, doc, ok := rowToDoc(record, cols)
		if !ok {
			skipped++
			continue
		}

		body, err := json.Marshal(doc)
		if err != nil {
			zapLog.Fatal("document marshal failed", zap.Error(err), zap.String("id", docID))
		}

		err = indexer.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: docID,
			Body:       bytes.NewReader(body),
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					zapLog.Warn("bulk item failed", zap.Error(err), zap.String("id", item.DocumentID))
				} else {
					zapLog.Warn("bulk item rejected",
						zap.String("id", item.DocumentID),
						zap.String("type", res.Error.Type),
						zap.String("reason", res.Error.Reason),
					)
				}
			},
		})
		if err != nil {
			zapLog.Fatal("bulk add failed", zap.Error(err), zap.String("id", docID))
		}

		rows++
		if rows%100000 == 0 {
			zapLog.Info("indexing progress", zap.Int64("rows", rows))
		}
	}

	if err := indexer.Close(ctx); err != nil {
		zapLog.Fatal("bulk indexer close failed", zap.Error(err))
	}

	stats := indexer.Stats()
	if stats.NumFailed > 0 {
		zapLog.Warn("some documents failed to index", zap.Uint64("failed", stats.NumFailed))
	}

	// One refresh at the end so the new documents are searchable.
	res, err := esClient.Client.Indices.Refresh(
		esClient.Client.Indices.Refresh.WithIndex(index),
		esClient.Client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		zapLog.Warn("index refresh failed", zap.Error(err))
	} else {
		res.Body.Close()
	}

	fmt.Printf("Done. Indexed %d rows into %q (%d skipped) in %s.\n",
		rows, index, skipped, time.Since(start).Round(time.Second))
}
