package tui

import "strings"

// overlay is a modal box drawn below the active screen. The zero value is
// hidden.
type overlay struct {
	title string
	body  string
	help  string
}

func errorOverlay(message string) overlay {
	return overlay{title: "Ошибка", body: message, help: "enter / esc закрыть"}
}

func deleteStopOverlay(stopName string) overlay {
	return overlay{body: "Удалить остановку \"" + stopName + "\"?", help: "y да    n нет"}
}

func (o overlay) visible() bool {
	return o.body != ""
}

func (o overlay) View() string {
	parts := make([]string, 0, 3)
	if o.title != "" {
		parts = append(parts, titleStyle.Render(o.title))
	}
	parts = append(parts, o.body)
	if o.help != "" {
		parts = append(parts, helpStyle.Render(o.help))
	}
	return overlayBoxStyle.Render(strings.Join(parts, "\n\n"))
}
