package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset defines tabular content with a fixed column order.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset, header row first.
// Field values containing the delimiter are quoted per RFC 4180.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// CSVImporter parses CSV bytes back into a Dataset.
type CSVImporter struct{}

// NewCSVImporter builds a CSV importer.
func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

// Parse reads CSV bytes, treating the first record as the header row.
// An empty input yields an empty dataset.
func (i *CSVImporter) Parse(data []byte) (Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return Dataset{}, nil
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(headers) {
			return Dataset{}, fmt.Errorf("csv row has %d fields, expected %d", len(record), len(headers))
		}
		row := make(map[string]string, len(headers))
		for idx, header := range headers {
			row[header] = record[idx]
		}
		rows = append(rows, row)
	}
	return Dataset{Headers: headers, Rows: rows}, nil
}
