package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/auspexhq/auspex/internal/models"
)

// weather_csv converts NOAA daily-summary CSV exports into the inputs the
// forecasting API consumes: either a date,value CSV or a ready-to-POST JSON
// request body.

func main() {
	// Command line flags
	input := flag.String("input", "", "Input CSV file (NOAA daily summary format)")
	output := flag.String("output", "", "Output file (defaults to stdout)")
	column := flag.String("column", "TMAX", "Value column to extract")
	format := flag.String("format", "csv", "Output format (csv, json)")
	limit := flag.Int("limit", 0, "Maximum number of rows to emit (0 = all)")

	flag.Parse()

	// Validate required parameters
	if *input == "" {
		log.Fatal("Error: -input parameter is required")
	}
	if *format != "csv" && *format != "json" {
		log.Fatalf("Error: invalid format '%s'. Valid options: csv, json\n", *format)
	}

	points, skipped, err := readWeatherCSV(*input, *column, *limit)
	if err != nil {
		log.Fatalf("Error reading input: %v\n", err)
	}

	if len(points) == 0 {
		log.Fatalf("Error: no usable rows found for column '%s'\n", *column)
	}

	out := os.Stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Error creating output file: %v\n", err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	switch *format {
	case "csv":
		err = writeCSV(out, points)
	case "json":
		err = writeJSON(out, points)
	}
	if err != nil {
		log.Fatalf("Error writing output: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "Converted %d rows (%d skipped)\n", len(points), skipped)
	if *output != "" {
		fmt.Fprintf(os.Stderr, "Successfully exported to: %s\n", *output)
	}
}

// readWeatherCSV extracts (date, value) pairs from a NOAA export. Rows with
// a missing or unparseable value are skipped, matching how station exports
// encode gaps as empty cells.
func readWeatherCSV(path, column string, limit int) ([]models.DataPoint, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	dateIdx, valueIdx := -1, -1
	for i, name := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(name), "DATE"):
			dateIdx = i
		case strings.EqualFold(strings.TrimSpace(name), column):
			valueIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, 0, fmt.Errorf("no DATE column in header: %v", header)
	}
	if valueIdx < 0 {
		return nil, 0, fmt.Errorf("no %s column in header: %v", column, header)
	}

	var (
		points  []models.DataPoint
		skipped int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read row: %w", err)
		}
		if dateIdx >= len(record) || valueIdx >= len(record) {
			skipped++
			continue
		}

		date := strings.TrimSpace(record[dateIdx])
		raw := strings.TrimSpace(record[valueIdx])
		if date == "" || raw == "" {
			skipped++
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			skipped++
			continue
		}

		points = append(points, models.DataPoint{Date: date, Value: value})
		if limit > 0 && len(points) >= limit {
			break
		}
	}

	return points, skipped, nil
}

// writeCSV emits date,value rows
func writeCSV(out io.Writer, points []models.DataPoint) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "value"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range points {
		row := []string{p.Date, strconv.FormatFloat(p.Value, 'f', -1, 64)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeJSON emits a forecast request body with the extracted series
func writeJSON(out io.Writer, points []models.DataPoint) error {
	payload := struct {
		Data []models.DataPoint `json:"data"`
	}{Data: points}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
