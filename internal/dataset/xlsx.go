package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names. Every sheet starts with a header row.
const (
	SheetWords      = "words"
	SheetSubjects   = "subjects"
	SheetNouns      = "nouns"
	SheetQualifiers = "qualifiers"
)

const startRow = 2

func loadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	d := &Dataset{Grammar: DefaultGrammar()}

	sheets := []struct {
		name string
		into *[]Entry
		row  func([]string) Entry
	}{
		{SheetWords, &d.Words, wordRow},
		{SheetSubjects, &d.Subjects, subjectRow},
		{SheetQualifiers, &d.Qualifiers, qualifierRow},
	}
	for _, s := range sheets {
		rows, err := sheetRows(f, s.name)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			*s.into = append(*s.into, s.row(row))
		}
	}

	// Nouns reference qualifiers by base name, so they load last.
	byBase := make(map[string]int, len(d.Qualifiers))
	for i, q := range d.Qualifiers {
		byBase[strings.ToLower(q.Base)] = i
	}
	rows, err := sheetRows(f, SheetNouns)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		n, err := nounRow(row, byBase)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetNouns, i+startRow, err)
		}
		d.Nouns = append(d.Nouns, n)
	}
	return d, nil
}

// sheetRows returns the data rows of a sheet, skipping the header and
// blank rows. A missing sheet yields no rows.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	var out [][]string
	for i, row := range rows {
		if i < startRow-1 {
			continue
		}
		if cell(row, 0) == "" && cell(row, 1) == "" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func wordRow(row []string) Entry {
	return Entry{Target: cell(row, 0), Base: cell(row, 1)}
}

func subjectRow(row []string) Entry {
	return Entry{Target: cell(row, 0), Base: cell(row, 1), Group: cell(row, 2)}
}

func qualifierRow(row []string) Entry {
	singular := cell(row, 0)
	return Entry{
		Target: singular,
		Base:   cell(row, 1),
		Forms: Forms{
			Singular: singular,
			PluralM:  cell(row, 2),
			PluralF:  cell(row, 3),
		},
	}
}

func nounRow(row []string, qualifiers map[string]int) (Entry, error) {
	n := Entry{
		Target: cell(row, 0),
		Base:   cell(row, 1),
		Gender: Gender(strings.ToLower(cell(row, 3))),
	}
	if p := cell(row, 2); p != "" {
		plural, err := strconv.ParseBool(p)
		if err != nil {
			return Entry{}, fmt.Errorf("plural %q: %w", p, err)
		}
		n.Plural = plural
	}
	for _, name := range strings.Split(cell(row, 4), ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		q, ok := qualifiers[name]
		if !ok {
			return Entry{}, fmt.Errorf("unknown qualifier %q", name)
		}
		n.Allowed = append(n.Allowed, q)
	}
	return n, nil
}

// WriteXLSX exports d as a workbook that loadXLSX reads back.
func WriteXLSX(d *Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	write := func(sheet string, header []string, rows [][]any) error {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		for i, r := range rows {
			axis, err := excelize.CoordinatesToCellName(1, i+startRow)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, axis, &r); err != nil {
				return err
			}
		}
		return nil
	}

	var words, subjects, nouns, quals [][]any
	for _, w := range d.Words {
		words = append(words, []any{w.Target, w.Base})
	}
	for _, s := range d.Subjects {
		subjects = append(subjects, []any{s.Target, s.Base, s.Group})
	}
	for _, q := range d.Qualifiers {
		quals = append(quals, []any{q.Target, q.Base, q.Forms.PluralM, q.Forms.PluralF})
	}
	for _, n := range d.Nouns {
		var allowed []string
		for _, q := range n.Allowed {
			if q >= 0 && q < len(d.Qualifiers) {
				allowed = append(allowed, d.Qualifiers[q].Base)
			}
		}
		nouns = append(nouns, []any{n.Target, n.Base, strconv.FormatBool(n.Plural), string(n.Gender), strings.Join(allowed, ", ")})
	}

	if err := write(SheetWords, []string{"target", "base"}, words); err != nil {
		return err
	}
	if err := write(SheetSubjects, []string{"target", "base", "group"}, subjects); err != nil {
		return err
	}
	if err := write(SheetNouns, []string{"target", "base", "plural", "gender", "allowed"}, nouns); err != nil {
		return err
	}
	if err := write(SheetQualifiers, []string{"singular", "base", "plural_m", "plural_f"}, quals); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
