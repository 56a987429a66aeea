package base64

import "strings"

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// GetData returns the raw base64 payload following the data URI header.
func GetData(file string) string {
	marker := ";base64,"

	idx := strings.Index(file, marker)
	if idx == -1 {
		return ""
	}

	return file[idx+len(marker):]
}
