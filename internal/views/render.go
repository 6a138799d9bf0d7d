package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	toastStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	cursorStyle = lipgloss.NewStyle().Bold(true)
)

// tailwind background classes mapped onto terminal colors.
var swatches = map[string]string{
	"bg-red-500":     "#ef4444",
	"bg-orange-500":  "#f97316",
	"bg-amber-500":   "#f59e0b",
	"bg-yellow-500":  "#eab308",
	"bg-lime-500":    "#84cc16",
	"bg-green-500":   "#22c55e",
	"bg-emerald-500": "#10b981",
	"bg-teal-500":    "#14b8a6",
	"bg-cyan-500":    "#06b6d4",
	"bg-sky-500":     "#0ea5e9",
	"bg-blue-500":    "#3b82f6",
	"bg-indigo-500":  "#6366f1",
	"bg-violet-500":  "#8b5cf6",
	"bg-purple-500":  "#a855f7",
	"bg-fuchsia-500": "#d946ef",
	"bg-pink-500":    "#ec4899",
	"bg-rose-500":    "#f43f5e",
	"bg-gray-400":    "#9ca3af",
}

func RenderApp(data AppData) string {
	left := panelStyle.Width(58).Render(data.LeftPane)
	right := panelStyle.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, toastStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Swatch renders a colored block for a category color class. Unknown classes
// use the fallback gray.
func Swatch(color string) string {
	hex, ok := swatches[color]
	if !ok {
		hex = swatches["bg-gray-400"]
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
