package update

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/taskfocus/internal/model"
)

type RuntimeConfig struct {
	WorkMinutes  int
	BreakMinutes int
	LogFile      string
	LogLevel     string
	ExportPath   string
	TickInterval time.Duration
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		WorkMinutes:  model.DefaultWorkMinutes,
		BreakMinutes: model.DefaultBreakMinutes,
		LogFile:      "",
		LogLevel:     "info",
		ExportPath:   "taskfocus-export.db",
		TickInterval: time.Second,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvInt("TASKFOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.WorkMinutes = v
	}
	if v, ok := getEnvInt("TASKFOCUS_BREAK_MINUTES"); ok && v > 0 {
		cfg.BreakMinutes = v
	}
	if v, ok := getEnvString("TASKFOCUS_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TASKFOCUS_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKFOCUS_EXPORT_PATH"); ok {
		cfg.ExportPath = v
	}
	if v, ok := getEnvInt("TASKFOCUS_TICK_MS"); ok && v > 0 {
		cfg.TickInterval = time.Duration(v) * time.Millisecond
	}
	return cfg
}

func (c RuntimeConfig) PomodoroDefaults() model.PomodoroSettings {
	return model.PomodoroSettings{WorkMinutes: c.WorkMinutes, BreakMinutes: c.BreakMinutes}
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
