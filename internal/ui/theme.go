package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lifequest/internal/domain"
)

// LifeQuest theme (CLI + TUI).

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLoop    = "🔁"
	IconScroll  = "📜"
	IconGold    = "💰"
	IconHeart   = "❤️"
	IconFire    = "🔥"
	IconStar    = "⭐"
	IconBook    = "📓"
	IconLock    = "🔒"
	IconCrown   = "👑"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusText colours quest and challenge states.
func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case string(domain.QuestCompleted):
		return Good.Render("completed")
	case string(domain.QuestActive):
		return H2.Render("active")
	case "inactive":
		return Warn.Render("inactive")
	default:
		return Muted.Render(status)
	}
}

func KindIcon(t domain.QuestType) string {
	switch t {
	case domain.QuestMain:
		return IconCrown
	case domain.QuestDaily, domain.QuestWeekly:
		return IconLoop
	default:
		return IconQuest
	}
}

// Bar renders a fixed-width ASCII progress bar for value out of total.
func Bar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// Percent renders a 0-100 percentage as a bar.
func Percent(pct float64, width int) string {
	return Bar(int(pct+0.5), 100, width)
}
