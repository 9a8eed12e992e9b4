package views

import (
	"strings"
	"testing"
)

func TestRenderTaskListPanelSections(t *testing.T) {
	out := RenderTaskListPanel(TaskListPanelData{
		Query: "rep",
		Active: []TaskRowData{
			{ID: "a", Title: "Write report", Tags: []string{"work"}, Deadline: "2026-01-02T15:04", Overdue: true, TimerOwner: true},
		},
		DeletedCount: 2,
		SelectedID:   "a",
	})
	for _, want := range []string{`filter: "rep"`, "> ", "Write report", "#work", "OVERDUE 2026-01-02T15:04", "[timer]", "Done:", "(none)", "(2 deleted)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderTaskDetailWithoutSelection(t *testing.T) {
	if got := RenderTaskDetail(TaskDetailData{}); !strings.Contains(got, "(no selection)") {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestRenderFocusPanel(t *testing.T) {
	idle := RenderFocusPanel(FocusPanelData{TaskTitle: "Deep work", FocusedTotal: "00:00"})
	if !strings.Contains(idle, "timer: idle") || !strings.Contains(idle, "task: Deep work") {
		t.Fatalf("unexpected idle panel:\n%s", idle)
	}

	running := RenderFocusPanel(FocusPanelData{
		TaskTitle: "Deep work", HasTimer: true, Phase: "Work", Running: true,
		Timer: "23:50", ProgressPct: 4, Accrued: "01:10",
		SessionCount: 1, FocusedTotal: "01:10", Sessions: []string{"2026-03-02 09:01  01:10"},
	})
	for _, want := range []string{"phase: WORK (running)", "timer: 23:50", "4%", "sessions: 1 (01:10 total)", "- 2026-03-02 09:01"} {
		if !strings.Contains(running, want) {
			t.Fatalf("expected %q in:\n%s", want, running)
		}
	}
}

func TestRenderCommandPaletteInactive(t *testing.T) {
	if got := RenderCommandPalette(false, "add x"); got != "" {
		t.Fatalf("expected empty palette, got %q", got)
	}
}

func TestRenderMarkdownFallsBackOnBlank(t *testing.T) {
	if got := RenderMarkdown("   ", 40); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := RenderMarkdown("**bold** note", 40); strings.TrimSpace(got) == "" {
		t.Fatal("expected rendered markdown")
	}
}
