package model

import "time"

type TimerPhase string

const (
	TimerPhaseWork  TimerPhase = "Work"
	TimerPhaseBreak TimerPhase = "Break"
)

// ActiveTimer is the pomodoro countdown bound to one task. Phase durations are
// captured when the timer starts and never follow later task edits.
type ActiveTimer struct {
	TaskID               string
	Phase                TimerPhase
	Running              bool
	RemainingSeconds     int
	WorkSecondsAccrued   int
	LastUpdatedAt        time.Time
	SessionStartedAt     time.Time
	WorkDurationSeconds  int
	BreakDurationSeconds int
}

func NewActiveTimer(taskID string, settings PomodoroSettings, now time.Time) ActiveTimer {
	work := settings.WorkSeconds()
	return ActiveTimer{
		TaskID:               taskID,
		Phase:                TimerPhaseWork,
		Running:              true,
		RemainingSeconds:     work,
		LastUpdatedAt:        now,
		SessionStartedAt:     now,
		WorkDurationSeconds:  work,
		BreakDurationSeconds: settings.BreakSeconds(),
	}
}

// Reconcile advances the countdown by the whole seconds elapsed since
// LastUpdatedAt, crossing as many phase boundaries as the gap covers. Only
// consumed seconds move LastUpdatedAt forward, so fractions carry over to the
// next call. A clock that moved backwards resets the reference point.
func (t *ActiveTimer) Reconcile(now time.Time) {
	if now.Before(t.LastUpdatedAt) {
		t.LastUpdatedAt = now
		return
	}
	delta := int(now.Sub(t.LastUpdatedAt) / time.Second)
	if delta <= 0 {
		return
	}
	t.LastUpdatedAt = t.LastUpdatedAt.Add(time.Duration(delta) * time.Second)
	t.consume(delta)
}

func (t *ActiveTimer) consume(delta int) {
	if t.RemainingSeconds < 0 {
		t.RemainingSeconds = 0
	}
	if delta > t.RemainingSeconds {
		delta -= t.RemainingSeconds
		t.credit(t.RemainingSeconds)
		t.flip()

		// At a phase boundary now: skip whole work+break cycles at once so a
		// suspended process does not loop once per phase.
		if cycle := t.WorkDurationSeconds + t.BreakDurationSeconds; cycle > 0 && delta > cycle {
			n := (delta - 1) / cycle
			delta -= n * cycle
			t.WorkSecondsAccrued += n * t.WorkDurationSeconds
		}
		for delta > t.RemainingSeconds {
			delta -= t.RemainingSeconds
			t.credit(t.RemainingSeconds)
			t.flip()
		}
	}
	t.RemainingSeconds -= delta
	t.credit(delta)
}

func (t *ActiveTimer) credit(sec int) {
	if t.Phase == TimerPhaseWork {
		t.WorkSecondsAccrued += sec
	}
}

func (t *ActiveTimer) flip() {
	if t.Phase == TimerPhaseWork {
		t.Phase = TimerPhaseBreak
		t.RemainingSeconds = max(t.BreakDurationSeconds, 1)
		return
	}
	t.Phase = TimerPhaseWork
	t.RemainingSeconds = max(t.WorkDurationSeconds, 1)
}

func (t ActiveTimer) PhaseDurationSeconds() int {
	if t.Phase == TimerPhaseBreak {
		return t.BreakDurationSeconds
	}
	return t.WorkDurationSeconds
}

func (t ActiveTimer) Snapshot() TimerSnapshot {
	return TimerSnapshot{
		TaskID:               t.TaskID,
		Phase:                t.Phase,
		Running:              t.Running,
		RemainingSeconds:     t.RemainingSeconds,
		WorkSecondsAccrued:   t.WorkSecondsAccrued,
		PhaseDurationSeconds: t.PhaseDurationSeconds(),
	}
}

// TimerSnapshot is the read-only view of an ActiveTimer handed to callers.
type TimerSnapshot struct {
	TaskID               string
	Phase                TimerPhase
	Running              bool
	RemainingSeconds     int
	WorkSecondsAccrued   int
	PhaseDurationSeconds int
}

// Progress reports the elapsed fraction of the current phase in [0, 1].
func (s TimerSnapshot) Progress() float64 {
	if s.PhaseDurationSeconds <= 0 {
		return 0
	}
	p := 1 - float64(s.RemainingSeconds)/float64(s.PhaseDurationSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
