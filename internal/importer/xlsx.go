package importer

import (
	"fmt"
	"io"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX groups the rows of the first sheet of a workbook.
func ReadXLSX(r io.Reader, kind domain.DocumentKind) ([]*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	return Group(&xlsxSource{rows: rows}, kind)
}

type xlsxSource struct {
	rows *excelize.Rows
}

func (s *xlsxSource) Next() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return s.rows.Columns()
}
