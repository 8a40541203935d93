package csvfile

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/iho/extracto/internal/domain"
)

// DefaultEncodings is the order in which text encodings are tried.
var DefaultEncodings = []string{"utf-8-sig", "latin1", "cp1252"}

var errInvalidUTF8 = errors.New("invalid utf-8 byte sequence")

// Encoding decodes raw file bytes to UTF-8 text.
type Encoding struct {
	Name   string
	strict bool
	enc    encoding.Encoding
}

// Decode converts data to UTF-8. Strict encodings reject input that is
// not valid in that encoding instead of substituting replacement runes.
func (e Encoding) Decode(data []byte) ([]byte, error) {
	if e.strict && !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}

	out, _, err := transform.Bytes(e.enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.Name, err)
	}

	return out, nil
}

var encodingsByName = map[string]Encoding{
	"utf-8-sig":    {Name: "utf-8-sig", strict: true, enc: unicode.UTF8BOM},
	"utf-8":        {Name: "utf-8", strict: true, enc: unicode.UTF8},
	"latin1":       {Name: "latin1", enc: charmap.ISO8859_1},
	"iso-8859-1":   {Name: "latin1", enc: charmap.ISO8859_1},
	"cp1252":       {Name: "cp1252", enc: charmap.Windows1252},
	"windows-1252": {Name: "cp1252", enc: charmap.Windows1252},
}

// LookupEncodings resolves encoding names, keeping their order.
func LookupEncodings(names []string) ([]Encoding, error) {
	if len(names) == 0 {
		names = DefaultEncodings
	}

	out := make([]Encoding, 0, len(names))
	for _, name := range names {
		e, ok := encodingsByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEncoding, name)
		}
		out = append(out, e)
	}

	return out, nil
}
