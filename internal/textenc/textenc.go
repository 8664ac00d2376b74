// Package textenc sniffs document bytes and decodes them to UTF-8.
//
// Markdown written on older systems still shows up as Windows-1252 or
// Latin-1. Valid UTF-8 passes through untouched; anything else goes through
// chardet and the first candidate that decodes cleanly wins.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotText is returned when the content sniffs as a binary format.
var ErrNotText = errors.New("content is not text")

// UTF8 is the charset name reported for input that needed no transcoding.
const UTF8 = "UTF-8"

var boms = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFF, 0xFE},
	{0xFE, 0xFF},
}

// Sniff reports ErrNotText (wrapped with the detected MIME type) when data is
// not a text/* document.
func Sniff(data []byte) error {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return nil
		}
	}
	return fmt.Errorf("%w: detected %s", ErrNotText, mt.String())
}

// Decode returns data as a UTF-8 string plus the charset it was decoded from.
// Byte order marks are consumed.
func Decode(data []byte) (string, string) {
	if hasBOM(data) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err == nil {
			return string(out), "BOM"
		}
	}

	if utf8.Valid(data) {
		return string(data), UTF8
	}

	results, err := chardet.NewTextDetector().DetectAll(data)
	if err == nil {
		bestScore := -1 << 31
		var bestText, bestCharset string
		for _, r := range results {
			enc := lookupEncoding(r.Charset)
			if enc == nil {
				continue
			}
			decoded, err := enc.NewDecoder().Bytes(data)
			if err != nil {
				continue
			}
			if s := score(string(decoded), r.Confidence); s > bestScore {
				bestScore, bestText, bestCharset = s, string(decoded), r.Charset
			}
		}
		if bestCharset != "" {
			return bestText, bestCharset
		}
	}

	// Latin-1 maps every byte, so it is the last resort.
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(decoded), "ISO-8859-1"
}

func hasBOM(data []byte) bool {
	for _, b := range boms {
		if bytes.HasPrefix(data, b) {
			return true
		}
	}
	return false
}

func score(text string, confidence int) int {
	s := confidence
	for _, r := range text {
		switch {
		case r == utf8.RuneError:
			s -= 10
		case r < 0x20 && r != '\n' && r != '\r' && r != '\t':
			s -= 5
		}
	}
	return s
}

func lookupEncoding(charset string) encoding.Encoding {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(charset)) {
	case "utf8":
		return unicode.UTF8
	case "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "iso88591", "latin1":
		return charmap.ISO8859_1
	case "iso88592":
		return charmap.ISO8859_2
	case "iso88595":
		return charmap.ISO8859_5
	case "iso88597":
		return charmap.ISO8859_7
	case "iso88599":
		return charmap.ISO8859_9
	case "iso885915":
		return charmap.ISO8859_15
	case "windows1250":
		return charmap.Windows1250
	case "windows1251":
		return charmap.Windows1251
	case "windows1252":
		return charmap.Windows1252
	case "koi8r":
		return charmap.KOI8R
	case "shiftjis":
		return japanese.ShiftJIS
	case "eucjp":
		return japanese.EUCJP
	case "euckr":
		return korean.EUCKR
	case "gb18030", "gbk", "gb2312":
		return simplifiedchinese.GBK
	case "big5":
		return traditionalchinese.Big5
	}
	return nil
}
