package tagging

import "strings"

// FormatRecords renders records one "id:text" per line.
func FormatRecords(records []Record) string {
	lines := make([]string, 0, len(records))

	for _, record := range records {
		lines = append(lines, record.ID+":"+record.Text)
	}

	return strings.Join(lines, "\n")
}
