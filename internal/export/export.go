// Package export reshapes run output into externally consumable tables.
// Both transforms are pure and tolerate empty input by producing header-only
// tables.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ayaStable/news-tweets-scraper/internal/domain"
)

const (
	newsSheet     = "News Feeds"
	searchSheet   = "Search Results"
	timelineSheet = "Timeline Posts"
)

var impactHeader = []string{"category", "naic_code", "affected_commodities", "potential_impact"}

// ImpactCSV flattens the classified impacts into a CSV byte stream, one row
// per affected category with its commodities comma-joined.
func ImpactCSV(impacts []domain.Impact) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(impactHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, impact := range impacts {
		row := []string{
			impact.Category,
			impact.Code,
			strings.Join(impact.Commodities, ", "),
			impact.Assessment,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// CorpusWorkbook renders the raw aggregate as a three-sheet spreadsheet, one
// sheet per source type. Queries are emitted in sorted order so the output is
// stable across runs.
func CorpusWorkbook(agg domain.Aggregate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", newsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeItemSheet(f, newsSheet, keyedRows(agg.News)); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(searchSheet); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", searchSheet, err)
	}
	if err := writeItemSheet(f, searchSheet, keyedRows(agg.Search)); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(timelineSheet); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", timelineSheet, err)
	}
	timelineRows := make([]itemRow, 0, len(agg.Timeline))
	for _, item := range agg.Timeline {
		timelineRows = append(timelineRows, itemRow{key: "timeline", item: item})
	}
	if err := writeItemSheet(f, timelineSheet, timelineRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type itemRow struct {
	key  string
	item domain.Item
}

func keyedRows(byQuery map[string][]domain.Item) []itemRow {
	queries := make([]string, 0, len(byQuery))
	for query := range byQuery {
		queries = append(queries, query)
	}
	sort.Strings(queries)

	var rows []itemRow
	for _, query := range queries {
		for _, item := range byQuery[query] {
			rows = append(rows, itemRow{key: query, item: item})
		}
	}
	return rows
}

func writeItemSheet(f *excelize.File, sheet string, rows []itemRow) error {
	header := []string{"category", "text", "link", "date"}
	for col, value := range header {
		if err := setCell(f, sheet, col+1, 1, value); err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := []string{row.key, row.item.Text, row.item.Link, row.item.Published}
		for col, value := range values {
			if err := setCell(f, sheet, col+1, i+2, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
