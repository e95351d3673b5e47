package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/infoboard/internal/presentation"
)

// Markdown formats a UIState for rendering.
func Markdown(s presentation.UIState) string {
	var b strings.Builder

	title := s.Header.Title
	if title == "" {
		title = "infoboard"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if s.Header.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Header.Description)
	}
	if s.Header.Timestamp != "" {
		fmt.Fprintf(&b, "_Updated %s_\n\n", s.Header.Timestamp)
	}

	if s.IsLoading {
		b.WriteString("_Loading..._\n\n")
	}

	if s.HasError() {
		fmt.Fprintf(&b, "> **Error:** %s\n\n", s.ErrorMessage)
	}

	for _, item := range s.Items {
		fmt.Fprintf(&b, "- **%s**", item.Title)
		if item.Timestamp != "" {
			fmt.Fprintf(&b, " (%s)", item.Timestamp)
		}
		if item.Description != "" {
			fmt.Fprintf(&b, ": %s", item.Description)
		}
		b.WriteString("\n")
	}
	if len(s.Items) == 0 && !s.IsLoading && !s.HasError() {
		b.WriteString("_No items._\n")
	}

	return b.String()
}
