package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ayaStable/news-tweets-scraper/internal/domain"
)

func TestImpactCSVEmptyInputYieldsHeaderOnly(t *testing.T) {
	t.Parallel()

	out, err := ImpactCSV(nil)
	if err != nil {
		t.Fatalf("ImpactCSV error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
	if records[0][0] != "category" || records[0][3] != "potential_impact" {
		t.Fatalf("unexpected header: %v", records[0])
	}
}

func TestImpactCSVJoinsCommodities(t *testing.T) {
	t.Parallel()

	out, err := ImpactCSV([]domain.Impact{{
		Category:    "Bakeries",
		Code:        "3118",
		Commodities: []string{"wheat", "sugar"},
		Assessment:  "input costs rise",
	}})
	if err != nil {
		t.Fatalf("ImpactCSV error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(records))
	}
	row := records[1]
	if row[0] != "Bakeries" || row[1] != "3118" || row[2] != "wheat, sugar" || row[3] != "input costs rise" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestCorpusWorkbookEmptyAggregateHasAllSheets(t *testing.T) {
	t.Parallel()

	out, err := CorpusWorkbook(domain.Aggregate{
		News:   map[string][]domain.Item{},
		Search: map[string][]domain.Item{},
	})
	if err != nil {
		t.Fatalf("CorpusWorkbook error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{newsSheet, searchSheet, timelineSheet} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("missing sheet %q: %v", sheet, err)
		}
		if len(rows) != 1 {
			t.Fatalf("sheet %q: expected header only, got %d rows", sheet, len(rows))
		}
	}
}

func TestCorpusWorkbookPlacesItemsOnTheirSheet(t *testing.T) {
	t.Parallel()

	agg := domain.Aggregate{
		News: map[string][]domain.Item{
			"wheat": {{Text: "Wheat rallies", Link: "http://n/1", Published: "Mon, 10 Mar 2025 09:00:00 +0000"}},
		},
		Search:   map[string][]domain.Item{"wheat": {}},
		Timeline: []domain.Item{},
	}

	out, err := CorpusWorkbook(agg)
	if err != nil {
		t.Fatalf("CorpusWorkbook error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	newsRows, err := f.GetRows(newsSheet)
	if err != nil {
		t.Fatalf("read news sheet: %v", err)
	}
	if len(newsRows) != 2 {
		t.Fatalf("expected one news row, got %d", len(newsRows)-1)
	}
	if newsRows[1][0] != "wheat" || newsRows[1][1] != "Wheat rallies" {
		t.Fatalf("unexpected news row: %v", newsRows[1])
	}

	for _, sheet := range []string{searchSheet, timelineSheet} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("read sheet %q: %v", sheet, err)
		}
		if len(rows) != 1 {
			t.Fatalf("sheet %q should be header only, got %d rows", sheet, len(rows))
		}
	}
}

func TestKeyedRowsSortsQueries(t *testing.T) {
	t.Parallel()

	rows := keyedRows(map[string][]domain.Item{
		"wheat":  {{Text: "w"}},
		"coffee": {{Text: "c"}},
		"barley": {{Text: "b"}},
	})

	want := []string{"barley", "coffee", "wheat"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, key := range want {
		if rows[i].key != key {
			t.Fatalf("expected %q at position %d, got %q", key, i, rows[i].key)
		}
	}
}
