package csvfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name string
		body string
		want rune
	}{
		{"comma", "a,b,c\n1,2,3\n4,5,6\n", ','},
		{"semicolon with decimal commas", "a;b;c\n1,5;2;3\n4;5,25;6\n", ';'},
		{"tab", "a\tb\n1\t2\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"single column falls back to comma", "a\n1\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(sniffDelimiter(tt.body)))
		})
	}
}

func TestReadTable_SkipsPreambleAndPadding(t *testing.T) {
	text := "Banco\nCuenta 123\nFecha,Monto,,Unnamed: 3\n01/01/2026,5,,\n\n02/01/2026,6,,\n"

	tbl, err := readTable(text, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 6}, tbl.lines)
	require.Len(t, tbl.rows, 2)

	recs := tbl.records()
	assert.Len(t, recs[0], 2)
	assert.Equal(t, "5", recs[0]["Monto"])

	cols := tbl.columns()
	assert.True(t, cols["fecha"])
	assert.True(t, cols["monto"])
	assert.Len(t, cols, 2)
}

func TestReadTable_ShortRowsArePadded(t *testing.T) {
	tbl, err := readTable("fecha,monto,detalle\n01/01/2026,5\n", 0)
	require.NoError(t, err)

	recs := tbl.records()
	require.Len(t, recs, 1)
	assert.Equal(t, "", recs[0]["detalle"])
}

func TestSkipLines(t *testing.T) {
	rest, err := skipLines("a\nb\nc", 2)
	require.NoError(t, err)
	assert.Equal(t, "c", rest)

	_, err = skipLines("a\nb", 3)
	assert.Error(t, err)
}
