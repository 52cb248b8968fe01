package sheet

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRows(t *testing.T) {
	rows := []ComparativeRow{
		{Name: "Assets", Heading: true},
		{
			ID: 1101, Code: "1101", Name: "Cash, bank", Indent: 1,
			Current: Cell{Amount: decimal.NewNullDecimal(dec("600")), Percentage: decimal.NewNullDecimal(dec("60"))},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"code", "name", "indent", "amount", "percentage", "prior_amount", "prior_percentage"}, records[0])
	assert.Equal(t, []string{"", "Assets", "0", "", "", "", ""}, records[1])
	assert.Equal(t, []string{"1101", "Cash, bank", "1", "600.00", "60.00%", "-", "-"}, records[2])
}

func TestWriteRows_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())
}
