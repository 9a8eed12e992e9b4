package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID         string
	Title      string
	Tags       []string
	Deadline   string
	Overdue    bool
	Done       bool
	TimerOwner bool
}

type TaskListPanelData struct {
	Query        string
	Active       []TaskRowData
	Done         []TaskRowData
	DeletedCount int
	SelectedID   string
}

type TaskDetailData struct {
	ID             string
	Title          string
	Status         string
	Tags           []string
	Deadline       string
	Overdue        bool
	WorkMinutes    int
	BreakMinutes   int
	SessionCount   int
	FocusedTotal   string
	DescriptionMD  string
	TimerElsewhere bool
}

type FocusPanelData struct {
	TaskTitle    string
	HasTimer     bool
	Phase        string
	Running      bool
	Timer        string
	ProgressView string
	ProgressPct  int
	Accrued      string
	SessionCount int
	FocusedTotal string
	Sessions     []string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.Query != "" {
		b.WriteString(fmt.Sprintf("filter: %q\n", data.Query))
	}
	renderTaskSection(&b, "Active", data.Active, data.SelectedID)
	renderTaskSection(&b, "Done", data.Done, data.SelectedID)
	if data.DeletedCount > 0 {
		b.WriteString(fmt.Sprintf("\n(%d deleted)\n", data.DeletedCount))
	}
	return strings.TrimSpace(b.String())
}

func renderTaskSection(b *strings.Builder, title string, rows []TaskRowData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(rows) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, row := range rows {
		cursor := " "
		if row.ID == selectedID {
			cursor = ">"
		}
		line := row.Title
		if row.Done {
			line = doneStyle.Render(line)
		}
		if len(row.Tags) > 0 {
			line += " #" + strings.Join(row.Tags, " #")
		}
		if row.Deadline != "" {
			due := "due:" + row.Deadline
			if row.Overdue {
				due = overdueStyle.Render("OVERDUE " + row.Deadline)
			}
			line += " " + due
		}
		if row.TimerOwner {
			line += " " + runningStyle.Render("[timer]")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, line))
	}
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.ID == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("status: %s\n", data.Status))
	if len(data.Tags) > 0 {
		b.WriteString(fmt.Sprintf("tags: %s\n", strings.Join(data.Tags, ", ")))
	}
	if data.Deadline != "" {
		if data.Overdue {
			b.WriteString("deadline: " + overdueStyle.Render(data.Deadline+" (overdue)") + "\n")
		} else {
			b.WriteString(fmt.Sprintf("deadline: %s\n", data.Deadline))
		}
	}
	b.WriteString(fmt.Sprintf("pomodoro: %dm work / %dm break\n", data.WorkMinutes, data.BreakMinutes))
	b.WriteString(fmt.Sprintf("sessions: %d (%s focused)\n", data.SessionCount, data.FocusedTotal))
	if data.TimerElsewhere {
		b.WriteString(runningStyle.Render("another task's timer is running") + "\n")
	}
	if data.DescriptionMD != "" {
		b.WriteString("\n" + data.DescriptionMD)
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	if !data.HasTimer {
		b.WriteString("timer: idle\n")
		b.WriteString("actions: [space]start [esc]back\n")
	} else {
		state := "paused"
		if data.Running {
			state = "running"
		}
		b.WriteString(fmt.Sprintf("phase: %s (%s)\n", strings.ToUpper(data.Phase), state))
		b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
		b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
		b.WriteString(fmt.Sprintf("focused this run: %s\n", data.Accrued))
		b.WriteString("actions: [space]start/pause [f]finish [esc]back\n")
	}
	b.WriteString(fmt.Sprintf("\nsessions: %d (%s total)\n", data.SessionCount, data.FocusedTotal))
	for _, s := range data.Sessions {
		b.WriteString("- " + s + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s view):\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
