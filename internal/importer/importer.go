// Package importer reads purchase orders and property receipts from
// spreadsheet exports with one line item per row.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

// Columns lists the header names every import file must carry, in any order.
var Columns = []string{"number", "party", "date", "description", "quantity", "unit_value"}

// Document collects the rows sharing one document number. Party and date come
// from its first row.
type Document struct {
	Number string
	Party  string
	Date   string
	Items  []domain.LineItem
}

// RowSource yields header-first records, one slice per row.
type RowSource interface {
	Next() ([]string, error)
}

// ReadCSV groups the rows of a CSV import.
func ReadCSV(r io.Reader, kind domain.DocumentKind) ([]*Document, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return Group(csvSource{reader}, kind)
}

type csvSource struct {
	reader *csv.Reader
}

func (s csvSource) Next() ([]string, error) {
	return s.reader.Read()
}

// Group reads rows until io.EOF and groups them by document number, keeping
// the order in which numbers first appear. Rows without a number are skipped.
// PO rows fill the unit cost of an item and PAR rows its amount.
func Group(src RowSource, kind domain.DocumentKind) ([]*Document, error) {
	header, err := src.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(Columns))
	for _, col := range Columns {
		idx := getColumnIndex(header, col)
		if idx < 0 {
			return nil, fmt.Errorf("header is missing column %q", col)
		}
		index[col] = idx
	}

	var (
		docs     []*Document
		byNumber = make(map[string]*Document)
	)
	for {
		record, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		cell := func(col string) string {
			if idx := index[col]; idx < len(record) {
				return record[idx]
			}
			return ""
		}

		number := strings.TrimSpace(cell("number"))
		if number == "" {
			continue
		}

		doc, ok := byNumber[number]
		if !ok {
			doc = &Document{
				Number: number,
				Party:  strings.TrimSpace(cell("party")),
				Date:   strings.TrimSpace(cell("date")),
			}
			byNumber[number] = doc
			docs = append(docs, doc)
		}

		description := cell("description")
		item := domain.LineItem{
			Description: &description,
			Quantity:    cell("quantity"),
		}
		if kind == domain.KindPAR {
			item.Amount = cell("unit_value")
		} else {
			item.UnitCost = cell("unit_value")
		}
		doc.Items = append(doc.Items, item)
	}

	return docs, nil
}

func getColumnIndex(header []string, column string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), column) {
			return i
		}
	}
	return -1
}
