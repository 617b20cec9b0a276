package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrPDFUnreadable: the document cannot be opened or its text cannot be
// extracted. Nothing can be fed to the pipeline in that case.
var ErrPDFUnreadable = errors.New("pdf: unreadable document")

// ReadPDFLines returns the text of every page, one string per visual row.
func ReadPDFLines(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	pr, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFUnreadable, err)
	}

	var lines []string
	for i := 1; i <= pr.NumPage(); i++ {
		p := pr.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrPDFUnreadable, i, err)
		}
		for _, row := range rows {
			if s := joinRow(row.Content); s != "" {
				lines = append(lines, s)
			}
		}
	}
	return lines, nil
}

// joinRow glues text fragments of one row; a gap wider than a quarter of
// the font size becomes a space.
func joinRow(texts []pdf.Text) string {
	var sb strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			if t.X-(prev.X+prev.W) > 0.25*max(prev.FontSize, 1) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
