package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if len(cfg.Scheduler.Slots) != 2 || cfg.Scheduler.Slots[0] != "09:00" || cfg.Scheduler.Slots[1] != "14:00" {
		t.Fatalf("unexpected default slots %v", cfg.Scheduler.Slots)
	}
	if cfg.EventDuration() != time.Hour {
		t.Fatalf("unexpected event duration %s", cfg.EventDuration())
	}
	if cfg.DownloadTTL() != 15*time.Minute {
		t.Fatalf("unexpected download ttl %s", cfg.DownloadTTL())
	}
	if cfg.Calendar.FileBase != "ai-implementation-tasks" {
		t.Fatalf("unexpected file base %q", cfg.Calendar.FileBase)
	}
}

func TestFromYAMLPartialKeepsDefaults(t *testing.T) {
	cfg, err := FromYAML([]byte("scheduler:\n  slots: [\"08:30\"]\n  timezone: UTC\n"))
	if err != nil {
		t.Fatalf("from yaml: %v", err)
	}
	if len(cfg.Scheduler.Slots) != 1 || cfg.Scheduler.Slots[0] != "08:30" {
		t.Fatalf("slots not applied: %v", cfg.Scheduler.Slots)
	}
	if cfg.Calendar.EventMinutes != 60 || cfg.Server.BasePath != "/v0" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("unexpected location %v %v", loc, err)
	}
}

func TestFromTOML(t *testing.T) {
	data := []byte(`
[scheduler]
slots = ["10:00", "15:00", "17:00"]
timezone = "UTC"

[calendar]
event_minutes = 45
`)
	cfg, err := FromTOML(data)
	if err != nil {
		t.Fatalf("from toml: %v", err)
	}
	if len(cfg.Scheduler.Slots) != 3 || cfg.EventDuration() != 45*time.Minute {
		t.Fatalf("unexpected config %+v", cfg)
	}
	opts, err := cfg.CalendarOptions()
	if err != nil {
		t.Fatalf("calendar options: %v", err)
	}
	if opts.Duration != 45*time.Minute || opts.Location != time.UTC {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []string{
		"scheduler:\n  slots: []\n",
		"scheduler:\n  slots: [\"9am\"]\n",
		"scheduler:\n  timezone: Mars/Olympus\n",
		"calendar:\n  event_minutes: 0\n",
		"calendar:\n  file_base: ../escape\n",
		"server:\n  base_path: v0\n",
		"server:\n  download_ttl: soon\n",
	}
	for _, c := range cases {
		if _, err := FromYAML([]byte(c)); err == nil {
			t.Fatalf("expected %q to be rejected", c)
		}
	}
}

func TestLoadOptionalPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptional(dir)
	if err != nil || cfg != nil {
		t.Fatalf("expected nil config in empty dir, got %v %v", cfg, err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected Load to fail without a config file")
	}
	if err := os.WriteFile(filepath.Join(dir, "overwhelmed.toml"), []byte("[calendar]\nevent_minutes = 30\n"), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	cfg, err = LoadOptional(dir)
	if err != nil || cfg.Calendar.EventMinutes != 30 {
		t.Fatalf("toml not loaded: %+v %v", cfg, err)
	}
	if err := os.WriteFile(Path(dir), []byte("calendar:\n  event_minutes: 90\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	cfg, err = Load(dir)
	if err != nil || cfg.Calendar.EventMinutes != 90 {
		t.Fatalf("yaml should win: %+v %v", cfg, err)
	}
}

func TestGenerateDefaultParses(t *testing.T) {
	if _, err := FromYAML([]byte(GenerateDefault())); err != nil {
		t.Fatalf("default template invalid: %v", err)
	}
}
