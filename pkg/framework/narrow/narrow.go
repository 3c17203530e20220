// Package narrow converts between Go strings and the host's ANSI code page.
//
// AviUtl is a non-Unicode program: every path it accepts or reports is a
// NUL-terminated byte string in the system's active code page.
package narrow

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// CodePageUTF8 is the Windows identifier of UTF-8.
const CodePageUTF8 = 65001

// ErrUnrepresentable is returned when a string contains characters the
// code page cannot express.
var ErrUnrepresentable = errors.New("string not representable in code page")

var codePages = map[uint32]encoding.Encoding{
	874:  charmap.Windows874,
	932:  japanese.ShiftJIS,
	936:  simplifiedchinese.GBK,
	949:  korean.EUCKR,
	950:  traditionalchinese.Big5,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,
}

// Encoding is a code page usable in both directions.
type Encoding struct {
	codePage uint32
	enc      encoding.Encoding // nil means UTF-8 passthrough
}

// ForCodePage returns the encoding for a Windows code page identifier.
// Unknown code pages fall back to Windows-1252.
func ForCodePage(cp uint32) Encoding {
	if cp == CodePageUTF8 {
		return Encoding{codePage: cp}
	}
	if enc, ok := codePages[cp]; ok {
		return Encoding{codePage: cp, enc: enc}
	}
	return Encoding{codePage: 1252, enc: charmap.Windows1252}
}

// CodePage returns the Windows code page identifier in use.
func (e Encoding) CodePage() uint32 {
	return e.codePage
}

// Encode converts s to the code page. The result carries no terminator.
func (e Encoding) Encode(s string) ([]byte, error) {
	if e.enc == nil {
		return []byte(s), nil
	}
	out, err := e.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %q for code page %d: %w", s, e.codePage, ErrUnrepresentable)
	}
	return out, nil
}

// Decode converts bytes in the code page to a Go string. Invalid sequences
// become U+FFFD.
func (e Encoding) Decode(b []byte) string {
	if e.enc == nil {
		return string(b)
	}
	out, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
