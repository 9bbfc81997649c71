package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"bidcond-backend/models"
)

// catalogColumns is the expected column count of the catalog CSV:
// 공종명, 공종코드, 대분류, 공종상세, 중분류, 태그, 내용, 중요표기, 이미지
const catalogColumns = 9

// ParseCatalog turns the raw delimited catalog text into clause records. The
// header row is discarded, fields are trimmed, and malformed rows (wrong
// field count) are skipped without failing the parse. Empty input yields an
// empty sequence.
func ParseCatalog(r io.Reader) ([]models.Clause, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	clauses := make([]models.Clause, 0)
	header := true

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Malformed row, skip and keep reading
				continue
			}
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}

		if header {
			header = false
			continue
		}

		if len(row) != catalogColumns {
			continue
		}

		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}

		clause := models.Clause{
			WorkType:      row[0],
			WorkTypeCode:  row[1],
			MajorCategory: row[2],
			Detail:        row[3],
			SubCategory:   row[4],
			Tag:           row[5],
			Text:          row[6],
			Importance:    models.Importance(row[7]),
			ImageRef:      row[8],
		}

		if clause.Importance != models.ImportanceImportant {
			clause.Importance = models.ImportanceNormal
		}

		clauses = append(clauses, clause)
	}

	return clauses, nil
}
