package sched

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")
	if cfg.Policy != "fcfs" {
		t.Errorf("default policy = %q, want fcfs", cfg.Policy)
	}
	if cfg.TestCase != 0 {
		t.Errorf("default test case = %d, want 0", cfg.TestCase)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if cfg.Policy != "fcfs" {
		t.Errorf("policy = %q, want fcfs defaults", cfg.Policy)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("policy: sjf\ntest_case: 2\ntrace_path: trace.csv\ndebug: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Policy != "sjf" {
		t.Errorf("policy = %q, want sjf", cfg.Policy)
	}
	if cfg.TestCase != 2 {
		t.Errorf("test case = %d, want 2", cfg.TestCase)
	}
	if cfg.TracePath != "trace.csv" {
		t.Errorf("trace path = %q, want trace.csv", cfg.TracePath)
	}
	if !cfg.Debug {
		t.Error("debug = false, want true")
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("policy: \"\"\ntest_case: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Policy != "fcfs" {
		t.Errorf("empty policy must clamp to fcfs, got %q", cfg.Policy)
	}
	if cfg.TestCase != 0 {
		t.Errorf("negative test case must clamp to 0, got %d", cfg.TestCase)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Policy
		wantErr bool
	}{
		"fcfs":            {in: "fcfs", want: FCFS},
		"sjf":             {in: "sjf", want: SJF},
		"priority":        {in: "priority", want: Priority},
		"case insensitve": {in: "SJF", want: SJF},
		"unknown":         {in: "round-robin", wantErr: true},
		"empty":           {in: "", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePolicy(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePolicy(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
