package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall, so columns line up when joined with lipgloss.JoinHorizontal.
// height 0 keeps the line count.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			ln = truncateText(ln, width)
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// truncateText cuts s to width cells, marking the cut with an ellipsis.
func truncateText(s string, width int) string {
	switch {
	case width <= 0:
		return ""
	case xansi.StringWidth(s) <= width:
		return s
	case width == 1:
		return xansi.Cut(s, 0, 1)
	default:
		return xansi.Truncate(s, width, "…")
	}
}

// wrapWords wraps plain text to maxW cells, hard-cutting words that do not fit.
func wrapWords(s string, maxW int) []string {
	if maxW <= 0 {
		return []string{""}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 2)
	cur := ""
	for _, w := range words {
		for xansi.StringWidth(w) > maxW {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			lines = append(lines, xansi.Cut(w, 0, maxW))
			w = xansi.Cut(w, maxW, xansi.StringWidth(w))
		}
		if w == "" {
			continue
		}
		switch {
		case cur == "":
			cur = w
		case xansi.StringWidth(cur)+1+xansi.StringWidth(w) <= maxW:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}
