package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/trip-keeper/models"
)

func renderBuildInfoWindow(info models.BuildInfo) string {
	info = info.Resolved()

	var b strings.Builder
	for _, row := range [][2]string{
		{"Приложение", "Trip Keeper"},
		{"Версия", info.Version},
		{"Дата", info.Date},
		{"Коммит", info.Commit},
	} {
		fmt.Fprintf(&b, "%s │ %s\n", padRight(row[0], 10), row[1])
	}

	return renderPage("О ПРОГРАММЕ", strings.TrimSuffix(b.String(), "\n"), "esc: назад")
}
