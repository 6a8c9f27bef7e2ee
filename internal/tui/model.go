package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifequest/internal/domain"
	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

// questTypeOrder fixes the group order on the board.
var questTypeOrder = []domain.QuestType{
	domain.QuestMain,
	domain.QuestDaily,
	domain.QuestWeekly,
	domain.QuestSide,
}

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	state  *domain.State
	loaded time.Time

	collapsed map[domain.QuestType]bool
	selected  int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	state domain.State
	err   error
}

type dispatchedMsg struct {
	out *engine.Outcome
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		collapsed: map[domain.QuestType]bool{},
		loading:   true,
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.svc.State(m.ctx)
		return loadedMsg{state: s, err: err}
	}
}

func (m boardModel) dispatchCmd(a engine.Action) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.Dispatch(m.ctx, a)
		return dispatchedMsg{out: out, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		s := msg.state
		m.state = &s
		m.loaded = m.svc.Now()
		if m.lastLog == "Loaded." || strings.HasPrefix(m.lastLog, "Refreshing") {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", m.loaded.Format("15:04:05"))
		}
		return m, nil
	case dispatchedMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = outcomeLine(msg.out)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			lines := m.questLines()
			if m.selected < len(lines)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			line, ok := m.selectedLine()
			if ok && line.group {
				m.collapsed[line.qtype] = !m.collapsed[line.qtype]
			}
			return m, nil
		case "c", " ":
			line, ok := m.selectedLine()
			if !ok {
				return m, nil
			}
			if line.group {
				m.lastLog = "Select a quest to complete."
				return m, nil
			}
			if line.status == domain.QuestCompleted {
				m.lastLog = "Already completed."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %q…", line.title)
			return m, m.dispatchCmd(engine.CompleteQuest{ID: line.id})
		case "x", "delete":
			line, ok := m.selectedLine()
			if !ok || line.group {
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Deleting %q…", line.title)
			return m, m.dispatchCmd(engine.DeleteQuest{ID: line.id})
		}
	}
	return m, nil
}

func outcomeLine(out *engine.Outcome) string {
	if out == nil {
		return ""
	}
	if out.LevelsGained > 0 {
		return ui.BadgeLevelUp + " " + out.Message
	}
	return out.Message
}

type questLine struct {
	group     bool
	qtype     domain.QuestType
	count     int
	collapsed bool

	id     string
	title  string
	status domain.QuestStatus
	xp     int
	gold   int
}

func (m boardModel) selectedLine() (questLine, bool) {
	lines := m.questLines()
	if m.selected < 0 || m.selected >= len(lines) {
		return questLine{}, false
	}
	return lines[m.selected], true
}

// questLines flattens the quest log into group headers followed by their
// quests. Active quests sort before completed ones, then by creation time.
func (m boardModel) questLines() []questLine {
	if m.state == nil || len(m.state.Quests) == 0 {
		return nil
	}
	byType := map[domain.QuestType][]domain.Quest{}
	for _, q := range m.state.Quests {
		byType[q.Type] = append(byType[q.Type], q)
	}

	var out []questLine
	for _, t := range questTypeOrder {
		qs := byType[t]
		if len(qs) == 0 {
			continue
		}
		sort.SliceStable(qs, func(i, j int) bool {
			if qs[i].Status != qs[j].Status {
				return qs[i].Status == domain.QuestActive
			}
			return qs[i].CreatedAt.Before(qs[j].CreatedAt)
		})
		out = append(out, questLine{group: true, qtype: t, count: len(qs), collapsed: m.collapsed[t]})
		if m.collapsed[t] {
			continue
		}
		for _, q := range qs {
			out = append(out, questLine{
				qtype:  t,
				id:     q.ID,
				title:  q.Title,
				status: q.Status,
				xp:     engine.QuestXP(m.state, q, m.svc.Engine().Catalog().Skills),
				gold:   engine.GoldReward(q),
			})
		}
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.state == nil {
		return "LifeQuest | loading…"
	}
	p := m.state.Player
	return fmt.Sprintf("LifeQuest | %s | Level %d | XP %d/%d %s",
		p.Name, p.Level, p.XP, p.XPToNextLevel, ui.Bar(p.XP, p.XPToNextLevel, 30))
}

func (m boardModel) renderSidebar() string {
	if m.state == nil {
		return "Stats\n\nLoading…"
	}
	p := m.state.Player
	lines := []string{"Stats"}
	lines = append(lines, fmt.Sprintf("- HP  %s %d", ui.Bar(p.Health, p.MaxHealth, 12), p.Health))
	lines = append(lines, fmt.Sprintf("- EN  %s %d", ui.Bar(p.Energy, p.MaxEnergy, 12), p.Energy))
	lines = append(lines, fmt.Sprintf("- Gold %d", p.Gold))
	lines = append(lines, fmt.Sprintf("- Skill points %d", p.SkillPoints))
	lines = append(lines, fmt.Sprintf("- Streak %d/%d (best %d)", p.CurrentStreak, p.StreakGoal, p.LongestStreak))

	if len(m.state.Challenges) > 0 {
		lines = append(lines, "", "Challenges")
		for _, c := range m.state.Challenges {
			if !c.IsActive {
				continue
			}
			next := ""
			if ms, ok := engine.NextMilestone(c); ok {
				next = fmt.Sprintf(" →%d", ms.DaysMilestone)
			}
			lines = append(lines, fmt.Sprintf("- %s %dd%s", c.Title, c.CurrentStreak, next))
		}
	}

	if len(m.state.Actions) > 0 {
		lines = append(lines, "", "Actions")
		for _, a := range m.state.Actions {
			n := engine.EffectiveCount(a, m.loaded)
			lines = append(lines, fmt.Sprintf("- %s %s", a.Title, ui.Bar(n, a.TargetCount, 8)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: expand/collapse")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- x: delete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Quest Log")

	lines := m.questLines()
	if len(lines) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, ql := range lines {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		if ql.group {
			fold := "▾ "
			if ql.collapsed {
				fold = "▸ "
			}
			out = append(out, fmt.Sprintf("%s%s%s %s (%d)", cursor, fold, ui.KindIcon(ql.qtype), ql.qtype, ql.count))
			continue
		}
		mark := "[ ]"
		if ql.status == domain.QuestCompleted {
			mark = "[x]"
		}
		out = append(out, fmt.Sprintf("%s    %s %s (+%d xp, +%d gold)", cursor, mark, ql.title, ql.xp, ql.gold))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
