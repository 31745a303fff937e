package service

import (
	"fmt"
	"strings"
)

var contextTriggers = []string{"file", "document", "context"}

// BuildPrompt prefixes the uploaded document text when the message asks
// about it; otherwise the message is sent as is.
func BuildPrompt(uploaded, message string) string {
	uploaded = strings.TrimSpace(uploaded)
	if uploaded == "" || !mentionsUpload(message) {
		return message
	}
	return fmt.Sprintf("Context from uploaded document: %s\n\nUser query: %s", uploaded, message)
}

func mentionsUpload(message string) bool {
	lower := strings.ToLower(message)
	for _, w := range contextTriggers {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
