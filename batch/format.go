package batch

import "fmt"

// TruncateSource shortens a source name for display, keeping the end which
// is more informative.
func TruncateSource(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return s[:min(len(s), maxLen)]
	}
	if len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Summary formats the counts of a batch run for display.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d extracted, %d skipped, %d duplicate, %d failed (%s read)",
		len(r.Outputs), r.Skipped, r.Duplicates, len(r.Failures), FormatBytes(r.Bytes))
}
