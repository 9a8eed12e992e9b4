package main

import (
	"testing"
)

func TestRootCmdFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TASKFOCUS_WORK_MINUTES", "40")
	t.Setenv("TASKFOCUS_LOG_LEVEL", "warn")

	cmd := rootCmd()
	if got := cmd.Flags().Lookup("work-minutes").DefValue; got != "40" {
		t.Fatalf("expected env value as flag default, got %q", got)
	}
	if got := cmd.Flags().Lookup("log-level").DefValue; got != "warn" {
		t.Fatalf("expected env log level as flag default, got %q", got)
	}

	if err := cmd.ParseFlags([]string{"--work-minutes", "50", "--export-path", "out.db"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if got, _ := cmd.Flags().GetInt("work-minutes"); got != 50 {
		t.Fatalf("expected flag override 50, got %d", got)
	}
	if got, _ := cmd.Flags().GetString("export-path"); got != "out.db" {
		t.Fatalf("expected export path flag, got %q", got)
	}
}

func TestRootCmdRejectsNonPositiveMinutes(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"--break-minutes", "0"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for zero break minutes")
	}
}

func TestRootCmdRejectsArgs(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for positional args")
	}
}
