package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/placecards/winietki/core"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Record is one normalized personalization entry.
// At least one of FirstName and LastName is non-empty.
type Record struct {
	FirstName string
	LastName  string
	Title     string
}

// DisplayName is the text stamped onto a document: the non-empty parts of
// title, first name and last name, in this order, joined by single spaces.
func (r Record) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, s := range [...]string{r.Title, r.FirstName, r.LastName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Accepted header names per field, in order of preference.
var (
	FirstNameHeaders = []string{"firstName", "first_name", "Imię"}
	LastNameHeaders  = []string{"lastName", "last_name", "Nazwisko"}
	TitleHeaders     = []string{"title", "Tytuł"}
)

// Dataset is parsed tabular input. Rows keep the original column order
// and may differ in length.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// ErrNoHeader is wrapped into the parse error for empty input.
var ErrNoHeader = errors.New("no header row")

// ParseCSV reads delimited UTF-8 text with a header row.
//
// A leading byte order mark is dropped. The delimiter is detected from the
// header line; candidates are comma, semicolon, tab and the vertical bar.
// Empty lines are skipped. All text is normalized to Unicode NFC.
// Errors carry code core.EINVALID.
func ParseCSV(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "tabular input cannot be read")
	}
	data = norm.NFC.Bytes(data)
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "tabular input is malformed: %v", err)
	}
	if len(rows) == 0 {
		return nil, core.WrapError(ErrNoHeader, core.EINVALID, "tabular input has no header row")
	}
	ds := &Dataset{Headers: rows[0], Rows: rows[1:]}
	for i, h := range ds.Headers {
		ds.Headers[i] = strings.TrimSpace(h)
	}
	tracer().Debugf("parsed %d rows with headers %v, delimiter %q", len(ds.Rows), ds.Headers, cr.Comma)
	return ds, nil
}

var delimiters = [...]rune{',', ';', '\t', '|'}

// sniffDelimiter counts delimiter candidates outside of quotes in the
// first line and returns the most frequent one, preferring comma on ties.
func sniffDelimiter(data []byte) rune {
	counts := make(map[rune]int, len(delimiters))
	quoted := false
	for _, r := range string(data) {
		if r == '"' {
			quoted = !quoted
			continue
		}
		if !quoted && (r == '\n' || r == '\r') {
			break
		}
		if !quoted {
			counts[r]++
		}
	}
	best := delimiters[0]
	for _, d := range delimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

// MatchColumn finds the column for a field. Variants are tried in order and
// compared case-sensitive; the index of the first variant present among
// headers is returned.
func MatchColumn(headers []string, variants []string) (int, bool) {
	for _, v := range variants {
		for i, h := range headers {
			if h == v {
				return i, true
			}
		}
	}
	return -1, false
}

// Resolve turns a dataset into records, preserving row order.
//
// Columns are matched by header name (see MatchColumn). If neither a first
// name nor a last name column is found, the first three columns of each row
// are taken as first name, last name and title. Values are trimmed; rows
// with neither first nor last name are dropped. A field without a column
// is empty for every record.
func Resolve(ds *Dataset) []Record {
	if ds == nil {
		return nil
	}
	first, hasFirst := MatchColumn(ds.Headers, FirstNameHeaders)
	last, hasLast := MatchColumn(ds.Headers, LastNameHeaders)
	title, hasTitle := MatchColumn(ds.Headers, TitleHeaders)
	if !hasFirst && !hasLast {
		tracer().Infof("no name columns in %v, taking columns by position", ds.Headers)
		first, last, title = 0, 1, 2
		hasFirst, hasLast, hasTitle = true, true, true
	}
	recs := make([]Record, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		rec := Record{
			FirstName: cell(row, first, hasFirst),
			LastName:  cell(row, last, hasLast),
			Title:     cell(row, title, hasTitle),
		}
		if rec.FirstName == "" && rec.LastName == "" {
			tracer().Debugf("dropping row %d without a name", i+1)
			continue
		}
		recs = append(recs, rec)
	}
	tracer().Infof("resolved %d records from %d rows", len(recs), len(ds.Rows))
	return recs
}

func cell(row []string, col int, ok bool) string {
	if !ok || col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Load parses tabular input and resolves it into records.
func Load(r io.Reader) ([]Record, error) {
	ds, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return Resolve(ds), nil
}
