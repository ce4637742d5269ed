package batch

import "fmt"

// TruncateName shortens a file name for display, keeping the end which is
// more informative.
func TruncateName(name string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return name[:min(len(name), maxLen)]
	}
	if len(name) <= maxLen {
		return name
	}
	return "..." + name[len(name)-maxLen+3:]
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

// FormatProgress renders "Capturing 3/10" style progress labels.
func FormatProgress(verb string, index, total int) string {
	return fmt.Sprintf("%s %d/%d", verb, index+1, total)
}
