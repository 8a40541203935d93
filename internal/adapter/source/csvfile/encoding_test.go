package csvfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/extracto/internal/domain"
)

func TestEncoding_Decode(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    string
		wantErr bool
	}{
		{name: "utf-8-sig", input: []byte("\xEF\xBB\xBFcategor\xC3\xADa"), want: "categoría"},
		{name: "utf-8-sig", input: []byte("categor\xC3\xADa"), want: "categoría"},
		{name: "utf-8-sig", input: []byte("categor\xEDa"), wantErr: true},
		{name: "utf-8", input: []byte("d\xC3\xA9bito"), want: "débito"},
		{name: "utf-8", input: []byte("d\xE9bito"), wantErr: true},
		{name: "latin1", input: []byte("d\xE9bito"), want: "débito"},
		{name: "iso-8859-1", input: []byte("a\xF1o"), want: "año"},
		{name: "cp1252", input: []byte("\x80 10"), want: "€ 10"},
		{name: "windows-1252", input: []byte("\x93hola\x94"), want: "“hola”"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encs, err := LookupEncodings([]string{tt.name})
			require.NoError(t, err)
			require.Len(t, encs, 1)

			out, err := encs[0].Decode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidUTF8)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestLookupEncodings(t *testing.T) {
	encs, err := LookupEncodings(nil)
	require.NoError(t, err)
	require.Len(t, encs, len(DefaultEncodings))
	for i, e := range encs {
		assert.Equal(t, DefaultEncodings[i], e.Name)
	}

	encs, err = LookupEncodings([]string{" Windows-1252 ", "ISO-8859-1"})
	require.NoError(t, err)
	assert.Equal(t, "cp1252", encs[0].Name)
	assert.Equal(t, "latin1", encs[1].Name)

	_, err = LookupEncodings([]string{"utf-16"})
	assert.ErrorIs(t, err, domain.ErrUnknownEncoding)
}

func TestParser_Cp1252Wins(t *testing.T) {
	p := newTestParser(t, Options{Encodings: []string{"utf-8-sig", "cp1252"}})

	data := []byte("Fecha;Monto;Detalle\n02/01/2026;10,00;Pago \x80 neto\n")
	stmt, err := p.Parse(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, "cp1252", stmt.Encoding)
	txs := stmt.Ledger.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "pago € neto", txs[0].Memo)
}
