package application

import (
	"time"

	"helpdesk-assistant/internal/features/helpdesk/domain"
)

// ReportTimestampLayout formats the UTC second in report filenames.
const ReportTimestampLayout = "20060102-150405"

// BuildReport renders the downloadable Markdown report.
func BuildReport(title string, mode domain.Mode, topic, issueText, output string) string {
	return "# " + title + "\n\n" +
		"**Mode:** " + string(mode) + "\n\n" +
		"**Topic:** " + topic + "\n\n" +
		"**Issue:**\n" + issueText + "\n\n" +
		"**Output:**\n" + output + "\n"
}

// ReportFilename names the report after the UTC time it was generated.
func ReportFilename(t time.Time) string {
	return "helpdesk_" + t.UTC().Format(ReportTimestampLayout) + ".md"
}

// ParseReportTimestamp reads back a timestamp produced by FormatReportTimestamp.
func ParseReportTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(ReportTimestampLayout, s, time.UTC)
}

// FormatReportTimestamp is the inverse of ParseReportTimestamp.
func FormatReportTimestamp(t time.Time) string {
	return t.UTC().Format(ReportTimestampLayout)
}
