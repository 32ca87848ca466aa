// Package importer bulk-loads the guest list from an .xlsx sheet into
// the guest directory.
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"rsvp-whatsapp/internal/models"
	"rsvp-whatsapp/internal/phone"
)

// Store receives the imported guests.
type Store interface {
	Upsert(g models.Guest) error
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Column headers of the original invitation sheet, with English
// equivalents.
var headerAliases = map[string]string{
	"שם":          "name",
	"name":        "name",
	"טלפון":       "phone",
	"phone":       "phone",
	"כמה משתתפים": "attendees",
	"attendees":   "attendees",
	"הערות":       "category",
	"notes":       "category",
	"category":    "category",
}

// ImportFile reads the first sheet of the workbook and upserts one
// guest per row. Rows without a usable phone number are skipped and
// counted. Import never duplicates a guest and never overwrites an
// answer a guest already gave.
func ImportFile(store Store, path, countryCode string) (Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open guest list: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read guest list: %w", err)
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("guest list is empty")
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, row := range rows[1:] {
		g := guestFromRow(row, cols, countryCode)
		if g.Phone == "" {
			res.Skipped++
			continue
		}
		if err := store.Upsert(g); err != nil {
			return res, fmt.Errorf("failed to import guest %s: %w", g.Phone, err)
		}
		res.Imported++
	}
	return res, nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, h := range header {
		if field, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[field] = i
		}
	}
	if _, ok := cols["phone"]; !ok {
		return nil, fmt.Errorf("guest list has no phone column")
	}
	return cols, nil
}

func guestFromRow(row []string, cols map[string]int, countryCode string) models.Guest {
	g := models.Guest{Status: models.RSVPNotResponded}
	g.Phone = phone.Normalize(cell(row, cols, "phone"), countryCode)
	g.Name = strings.TrimSpace(cell(row, cols, "name"))
	g.Category = strings.TrimSpace(cell(row, cols, "category"))
	if n, err := strconv.Atoi(strings.TrimSpace(cell(row, cols, "attendees"))); err == nil && n > 0 {
		g.Attendees = n
	}
	return g
}

func cell(row []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
