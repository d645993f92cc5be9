package grid

import (
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/models"
)

// Table is the short lived view model behind one browse/edit session. It is
// built fresh from a listing fetch, diffed once on save and then discarded;
// it is never shared between requests.
type Table struct {
	Columns []string            // editable display columns, _id excluded
	IDs     []string            // record ids, parallel to Rows
	Rows    []map[string]string // original display values keyed by column
}

// ChangeSet is the per row subset of fields whose displayed value changed,
// already re-typed for the backend.
type ChangeSet struct {
	ID     string
	Fields map[string]any
}

// EditableColumns is the fixed display column order: every expected column
// except the immutable _id.
func EditableColumns() []string {
	cols := make([]string, 0, len(models.ExpectedColumns)-1)
	for _, col := range models.ExpectedColumns {
		if col == "_id" {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// FromCards coerces a card listing into the fixed column schema: every
// expected column present, absent values as empty strings, list columns in
// comma joined display form.
func FromCards(cards []models.Card) *Table {
	t := &Table{Columns: EditableColumns()}

	for _, card := range cards {
		row := card.DisplayRow()
		t.IDs = append(t.IDs, row["_id"])
		delete(row, "_id")
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Diff compares edited rows against the original table, position by
// position, and returns one change set per row that actually changed.
// Comparison is on display strings with missing values normalized to "".
func (t *Table) Diff(edited []map[string]string) []ChangeSet {
	var changes []ChangeSet

	for i, orig := range t.Rows {
		if i >= len(edited) {
			break
		}

		fields := map[string]any{}
		for _, col := range t.Columns {
			o := orig[col]
			n := edited[i][col]
			if o == n {
				continue
			}
			if models.ListColumn(col) {
				fields[col] = models.SplitList(n)
			} else {
				fields[col] = n
			}
		}

		if len(fields) > 0 {
			changes = append(changes, ChangeSet{ID: t.IDs[i], Fields: fields})
		}
	}
	return changes
}
