package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// single-byte charsets seen in CSVs exported from Spanish Excel/ERP installs
var legacyCharsets = map[string]*charmap.Charmap{
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.Windows1252,
	"iso-8859-15":  charmap.ISO8859_15,
}

// readCSV reads CSV with headerRow (1-based): charset sniffed and converted to
// UTF-8, delimiter guessed between ',', ';' and tab.
func readCSV(r io.Reader, headerRow int) (Table, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(4096)
	var dec io.Reader = br
	if !isUTF8(peek) {
		if cm := detectCharmap(peek); cm != nil {
			dec = transform.NewReader(br, cm.NewDecoder())
		}
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.Comma = sniffDelimiter(peek)

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}
		rows = append(rows, rec)
	}
	return newTable(rows, headerRow), nil
}

func isUTF8(b []byte) bool {
	// a peek may cut a multi-byte rune at the end
	for i := 0; i < 3 && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return true
		}
		b = b[:len(b)-1]
	}
	return utf8.Valid(b)
}

func detectCharmap(peek []byte) *charmap.Charmap {
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err == nil && det != nil {
		if cm, ok := legacyCharsets[strings.ToLower(det.Charset)]; ok {
			return cm
		}
	}
	// not UTF-8 and nothing better: Excel on Windows writes cp1252
	return charmap.Windows1252
}

func sniffDelimiter(peek []byte) rune {
	first := peek
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		first = peek[:i]
	}
	best, bestN := ',', bytes.Count(first, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(first, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
