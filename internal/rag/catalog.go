package rag

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ressKim-io/eccn-classifier/internal/domain/entity"
)

// Catalog CSV columns
const (
	ColumnID          = "derived_ecn_no"
	ColumnEcnNumber   = "ecn_number"
	ColumnParentEcn   = "parent_ecn"
	ColumnIsLeaf      = "is_leaf"
	ColumnDescription = "description_en"
	ColumnNotes       = "notes"
)

// ReadCatalog parses the ECCN catalog CSV. Missing optional cells are read as
// empty strings; rows without an id are skipped.
func ReadCatalog(r io.Reader) ([]*entity.EccnDefinition, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))] = i
	}
	for _, required := range []string{ColumnID, ColumnEcnNumber} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog is missing column %q", required)
		}
	}

	var defs []*entity.EccnDefinition
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog line %d: %w", line, err)
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		id := cell(ColumnID)
		if id == "" {
			continue
		}

		defs = append(defs, entity.NewEccnDefinition(
			id,
			cell(ColumnEcnNumber),
			cell(ColumnParentEcn),
			cell(ColumnIsLeaf),
			cell(ColumnDescription),
			cell(ColumnNotes),
		))
	}

	return defs, nil
}
