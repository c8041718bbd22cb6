package tui

import (
	"fmt"
	"strconv"
	"strings"

	"tm-cli/internal/model"
	"tm-cli/internal/session"

	"github.com/charmbracelet/lipgloss"
)

const minSplitWidth = 60

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	helpView := m.help.View(m.keys)
	bodyH := max(m.height-2-lipgloss.Height(helpView), 1)

	var body string
	if m.st.Mode == session.ModePickingProject {
		body = normalizePane(m.renderPicker(bodyH), m.width, bodyH)
	} else if listW, detailW, split := m.paneWidths(); split {
		sep := styleMuted().Render(strings.TrimRight(strings.Repeat("│\n", bodyH), "\n"))
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			normalizePane(m.renderList(listW, bodyH), listW, bodyH),
			sep,
			normalizePane(m.detail.View(), detailW, bodyH),
		)
	} else {
		body = normalizePane(m.renderList(m.width, bodyH), m.width, bodyH)
	}

	return strings.Join([]string{
		fitLine(m.renderHeader(), m.width),
		body,
		m.renderStatusLine(),
		helpView,
	}, "\n")
}

// paneWidths splits the screen when the detail pane is on and the terminal is wide enough.
func (m appModel) paneWidths() (listW, detailW int, split bool) {
	if !m.showDetail || m.width < minSplitWidth {
		return m.width, 0, false
	}
	listW = m.width / 2
	return listW, m.width - listW - 1, true
}

func (m appModel) detailHeight() int {
	return max(m.height-2-lipgloss.Height(m.help.View(m.keys)), 1)
}

func (m appModel) renderHeader() string {
	project := m.st.Project
	if project == "" {
		project = "all"
	}
	parts := []string{
		styleHeader().Render("tm"),
		"project: " + project,
	}
	if m.st.Filter != "" {
		parts = append(parts, "filter: "+m.st.Filter)
	}
	parts = append(parts, fmt.Sprintf("%d/%d tasks", len(m.st.Visible), len(m.st.Tasks)))
	if m.st.Mode != session.ModeBrowsing {
		parts = append(parts, strings.ToUpper(m.st.Mode.String()))
	}
	if m.st.PendingG {
		parts = append(parts, "g…")
	}
	sep := lipgloss.NewStyle().Foreground(colorChromeMutedFg).Render(" · ")
	return strings.Join(parts, sep)
}

func (m appModel) renderList(width, height int) string {
	if len(m.st.Visible) == 0 {
		msg := "no tasks"
		if m.st.Filter != "" || m.st.Project != "" {
			msg = "no tasks match"
		}
		return styleMuted().Render(msg)
	}
	start := scrollWindow(m.st.Selected, len(m.st.Visible), height)
	end := min(start+height, len(m.st.Visible))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, renderRow(m.st.Visible[i], width, i == m.st.Selected))
	}
	return strings.Join(lines, "\n")
}

// renderRow draws one task. The selected row is rendered from plain text so the highlight
// background is not interrupted by inner style resets.
func renderRow(t model.Task, width int, selected bool) string {
	status := fmt.Sprintf("[%s]", t.Status)
	meta := rowMeta(t)
	if selected {
		line := "› " + status + " " + t.Title
		if meta != "" {
			line += "  " + meta
		}
		return styleSelectedRow().Render(fitLine(line, width))
	}
	line := "  " + styleStatus(t.Status).Render(status) + " " + t.Title
	if meta != "" {
		line += "  " + styleMuted().Render(meta)
	}
	return fitLine(line, width)
}

func rowMeta(t model.Task) string {
	var parts []string
	if t.Project != "" {
		parts = append(parts, t.Project)
	}
	if t.Due != nil && *t.Due != "" {
		parts = append(parts, "due "+*t.Due)
	}
	for _, tag := range t.Tags {
		parts = append(parts, "+"+tag)
	}
	return strings.Join(parts, " ")
}

func (m appModel) renderPicker(height int) string {
	lines := []string{styleHeader().Render("Open project") + styleMuted().Render("  enter open · esc cancel")}
	if len(m.st.Projects) == 0 {
		lines = append(lines, styleMuted().Render("no projects; enter shows all tasks"))
		return strings.Join(lines, "\n")
	}
	rows := max(height-1, 1)
	start := scrollWindow(m.st.PickIndex, len(m.st.Projects), rows)
	end := min(start+rows, len(m.st.Projects))
	for i := start; i < end; i++ {
		key := m.st.Projects[i]
		if i == m.st.PickIndex {
			lines = append(lines, styleSelectedRow().Render(fitLine("› "+key, m.width)))
			continue
		}
		lines = append(lines, "  "+key)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderStatusLine() string {
	if prompt, text, ok := inputPrompt(m.st); ok {
		return renderInputLine(m.width, prompt, text)
	}
	if r := m.st.Result; r != nil {
		if r.IsErr {
			return fitLine(styleError().Render(r.Text), m.width)
		}
		return fitLine(styleMuted().Render(r.Text), m.width)
	}
	return fitLine("", m.width)
}

// syncDetail re-renders the detail pane when the selected task, its revision or the pane size
// changed.
func (m *appModel) syncDetail() {
	_, w, split := m.paneWidths()
	if !split || m.st.Mode == session.ModePickingProject {
		return
	}
	h := m.detailHeight()

	t, ok := m.st.SelectedTask()
	key := ""
	if ok {
		key = t.ID + "|" + t.Updated.String()
	}
	key += "|" + strconv.Itoa(w) + "x" + strconv.Itoa(h)
	if key == m.detailKey {
		return
	}
	m.detailKey = key
	m.detail.Width = w
	m.detail.Height = h

	if !ok {
		m.detail.SetContent(styleMuted().Render("no task selected"))
		return
	}
	m.detail.SetContent(m.renderDetail(t, w))
	m.detail.GotoTop()
}

func (m appModel) renderDetail(t model.Task, width int) string {
	var b strings.Builder
	b.WriteString(styleHeader().Render(t.Title))
	b.WriteString("\n")
	b.WriteString(styleStatus(t.Status).Render(t.Status.String()))
	b.WriteString(styleMuted().Render("  " + t.ID))
	b.WriteString("\n")
	if meta := rowMeta(t); meta != "" {
		b.WriteString(styleMuted().Render(meta))
		b.WriteString("\n")
	}

	_, body, err := m.vault.GetTask(t.ID)
	if err != nil {
		b.WriteString("\n")
		b.WriteString(styleError().Render(err.Error()))
		return b.String()
	}
	if md := renderMarkdown(body, width); md != "" {
		b.WriteString("\n")
		b.WriteString(md)
	}
	return b.String()
}
