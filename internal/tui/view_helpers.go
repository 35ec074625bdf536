package tui

import "strings"

const pageIndent = "  "

var pageDivider = strings.Repeat("─", 54)

// renderPage lays out a titled page: body between two dividers, then the
// page hotkeys and the global quit hint.
func renderPage(title, body, hotKeys string) string {
	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	lines := []string{titleStyle.Render(title), pageIndent + pageDivider, ""}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, pageIndent+line)
	}
	lines = append(lines, "", pageIndent+pageDivider)
	if strings.TrimSpace(hotKeys) != "" {
		lines = append(lines, pageIndent+helpStyle.Render(hotKeys))
	}
	lines = append(lines, pageIndent+helpStyle.Render("ctrl+c: выход"))

	return strings.Join(lines, "\n")
}

// fitText cuts v to max runes, marking the cut with "...".
func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
