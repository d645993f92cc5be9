package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/models"
)

func sampleCards() []models.Card {
	return []models.Card{
		{
			ID:           "a1",
			Name:         "Jane Doe",
			Company:      "Acme",
			PhoneNumbers: []string{"111"},
		},
		{
			ID:           "b2",
			Name:         "John Roe",
			PhoneNumbers: []string{"111"},
			SocialLinks:  []string{"x.com/roe", "linkedin.com/in/roe"},
		},
	}
}

func TestFromCardsCoercesToFixedSchema(t *testing.T) {
	table := FromCards(sampleCards())

	require.Equal(t, EditableColumns(), table.Columns)
	assert.NotContains(t, table.Columns, "_id")
	assert.Equal(t, []string{"a1", "b2"}, table.IDs)
	require.Len(t, table.Rows, 2)

	for _, col := range table.Columns {
		_, ok := table.Rows[0][col]
		require.True(t, ok, "row missing column %q", col)
	}

	assert.Equal(t, "", table.Rows[0]["social_links"], "absent field defaults to empty string")
	assert.Equal(t, "x.com/roe, linkedin.com/in/roe", table.Rows[1]["social_links"])
}

func TestDiffUnchangedRowsProduceNoChangeSets(t *testing.T) {
	table := FromCards(sampleCards())

	edited := []map[string]string{
		copyRow(table.Rows[0]),
		copyRow(table.Rows[1]),
	}

	assert.Empty(t, table.Diff(edited))
}

func TestDiffSingleChangedColumn(t *testing.T) {
	table := FromCards(sampleCards())

	edited := []map[string]string{
		copyRow(table.Rows[0]),
		copyRow(table.Rows[1]),
	}
	edited[1]["phone_numbers"] = "555-1234, 111"

	changes := table.Diff(edited)
	require.Len(t, changes, 1, "row A unchanged must trigger no request")

	cs := changes[0]
	assert.Equal(t, "b2", cs.ID)
	require.Len(t, cs.Fields, 1, "change set must hold exactly the changed column")
	assert.Equal(t, []string{"555-1234", "111"}, cs.Fields["phone_numbers"])
}

func TestDiffScalarColumnStaysString(t *testing.T) {
	table := FromCards(sampleCards())

	edited := []map[string]string{copyRow(table.Rows[0]), copyRow(table.Rows[1])}
	edited[0]["company"] = "Globex"

	changes := table.Diff(edited)
	require.Len(t, changes, 1)
	assert.Equal(t, "a1", changes[0].ID)
	assert.Equal(t, "Globex", changes[0].Fields["company"])
}

func TestDiffMissingEditedValueNormalizesToEmpty(t *testing.T) {
	table := FromCards(sampleCards())

	// Edited row omits every column: present originals become cleared
	// fields, originally empty columns show no change at all.
	edited := []map[string]string{{}, copyRow(table.Rows[1])}

	changes := table.Diff(edited)
	require.Len(t, changes, 1)
	cs := changes[0]
	assert.Equal(t, "a1", cs.ID)

	assert.Equal(t, "", cs.Fields["name"])
	assert.Equal(t, []string{}, cs.Fields["phone_numbers"])
	_, ok := cs.Fields["social_links"]
	assert.False(t, ok, "empty to empty is not a change")
}

func copyRow(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
