// Package bulkcsv parses the spreadsheet exports venues send in for bulk
// event ingest. The format in the wild is messy: quoted cells with embedded
// commas, stray blank lines, header variants like "# of people" vs
// "People Count", and the occasional unterminated quote. Parsing is
// deliberately lenient; a malformed line never aborts the upload.
package bulkcsv

import (
	"regexp"
	"strings"
)

// TemplateCSV is the header line offered for download so venues start from
// column names the parser maps exactly.
const TemplateCSV = "Date,Host,# of people,# of teams,Comments\n"

// EventRow is one parsed upload line. JSON keys mirror the template columns
// so payloads parsed server-side and payloads sent by the console are
// interchangeable on the bulk-upload endpoint.
type EventRow struct {
	Date        string `json:"Date"`
	Host        string `json:"Host"`
	PeopleCount string `json:"# of people"`
	TeamCount   string `json:"# of teams"`
	Comments    string `json:"Comments"`
}

var (
	reDate     = regexp.MustCompile(`(?i)^date$`)
	reHost     = regexp.MustCompile(`(?i)^host$`)
	rePeople   = regexp.MustCompile(`(?i)people`)
	reTeams    = regexp.MustCompile(`(?i)teams`)
	reComments = regexp.MustCompile(`(?i)comments`)
)

// Parse tokenizes a CSV blob into event rows keyed by fuzzy-matched header
// columns. Blank lines are dropped, cells are trimmed, and a body row is
// emitted only when at least one cell is non-empty. Empty or header-only
// input yields an empty slice; malformed quoting never raises an error.
func Parse(text string) []EventRow {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	header := splitLine(lines[0])
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	idxDate := findColumn(header, reDate)
	idxHost := findColumn(header, reHost)
	idxPeople := findColumn(header, rePeople)
	idxTeams := findColumn(header, reTeams)
	idxComments := findColumn(header, reComments)

	var rows []EventRow
	for _, line := range lines[1:] {
		cols := splitLine(line)
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		if !anyNonEmpty(cols) {
			continue
		}
		rows = append(rows, EventRow{
			Date:        cell(cols, idxDate),
			Host:        cell(cols, idxHost),
			PeopleCount: cell(cols, idxPeople),
			TeamCount:   cell(cols, idxTeams),
			Comments:    cell(cols, idxComments),
		})
	}
	return rows
}

// splitLine tokenizes one line honoring double-quote escaping: "" inside a
// quoted field is a literal quote, and commas inside quotes do not split.
// A dangling quote keeps the field open to end of line.
func splitLine(line string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	return append(out, cur.String())
}

func findColumn(header []string, re *regexp.Regexp) int {
	for i, h := range header {
		if re.MatchString(h) {
			return i
		}
	}
	return -1
}

func cell(cols []string, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return cols[idx]
}

func anyNonEmpty(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return true
		}
	}
	return false
}
