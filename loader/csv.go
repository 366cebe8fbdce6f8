package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BaSui01/glutils/types"
)

const utf8BOM = "\ufeff"

// CSVFormat loads CSV files. The first row is the header; every later row
// becomes one Row keyed by header name. CSV output is not supported.
type CSVFormat struct {
	config CSVConfig
}

// NewCSVFormat creates a CSVFormat with the given config.
func NewCSVFormat(config CSVConfig) *CSVFormat {
	if config.Delimiter == "" {
		config.Delimiter = ","
	}
	return &CSVFormat{config: config}
}

// Load reads a CSV file and returns Records in file order.
func (f *CSVFormat) Load(ctx context.Context, path string) (types.Data, error) {
	if err := ctx.Err(); err != nil {
		return types.Data{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return types.Data{}, types.NewFilesystemError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = f.config.delimiter()
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return types.Data{}, types.NewParseError(path, err)
	}
	if len(rows) == 0 {
		return types.Data{}, types.NewParseError(path, errors.New("no header row"))
	}

	header := uniqueHeader(rows[0])
	dataRows := rows[1:]

	converters := make([]func(string) any, len(header))
	for col := range header {
		if f.config.InferTypes {
			converters[col] = inferColumn(dataRows, col)
		} else {
			converters[col] = asString
		}
	}

	records := make(types.Records, 0, len(dataRows))
	for _, row := range dataRows {
		out := make(types.Row, len(header))
		for col, name := range header {
			out[name] = converters[col](row[col])
		}
		records = append(records, out)
	}

	return types.FromRecords(records), nil
}

// SupportedTypes returns the extensions handled by CSVFormat.
func (f *CSVFormat) SupportedTypes() []string {
	return []string{".csv"}
}

// uniqueHeader strips a leading BOM and renames repeated column names to
// name.1, name.2, ... in order of appearance.
func uniqueHeader(raw []string) []string {
	header := make([]string, len(raw))
	copy(header, raw)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	seen := make(map[string]int, len(header))
	for i, name := range header {
		n, dup := seen[name]
		seen[name] = n + 1
		if !dup {
			continue
		}
		candidate := name + "." + strconv.Itoa(n)
		for {
			if _, taken := seen[candidate]; !taken {
				break
			}
			n++
			candidate = name + "." + strconv.Itoa(n)
		}
		seen[name] = n + 1
		seen[candidate] = 1
		header[i] = candidate
	}
	return header
}

// inferColumn picks the narrowest type every present cell of column col
// parses as: int64, then finite float64, then bool, else string. Missing
// cells are nil.
func inferColumn(rows [][]string, col int) func(string) any {
	isInt, isFloat, isBool := true, true, true
	for _, row := range rows {
		cell := row[col]
		if isMissing(cell) {
			continue
		}
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if f, err := strconv.ParseFloat(cell, 64); err != nil || math.IsInf(f, 0) {
				isFloat = false
			}
		}
		if isBool {
			isBool = strings.EqualFold(cell, "true") || strings.EqualFold(cell, "false")
		}
		if !isInt && !isFloat && !isBool {
			break
		}
	}

	var convert func(string) any
	switch {
	case isInt:
		convert = func(cell string) any {
			v, _ := strconv.ParseInt(cell, 10, 64)
			return v
		}
	case isFloat:
		convert = func(cell string) any {
			v, _ := strconv.ParseFloat(cell, 64)
			return v
		}
	case isBool:
		convert = func(cell string) any {
			return strings.EqualFold(cell, "true")
		}
	default:
		convert = asString
	}

	return func(cell string) any {
		if isMissing(cell) {
			return nil
		}
		return convert(cell)
	}
}

// isMissing reports whether cell holds no value: it is empty or spells NaN.
func isMissing(cell string) bool {
	if cell == "" {
		return true
	}
	return strings.EqualFold(strings.TrimLeft(cell, "+-"), "nan")
}

func asString(cell string) any {
	return cell
}
