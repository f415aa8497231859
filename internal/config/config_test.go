package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "WORKER_COUNT", "MESHSTORE_URL", "STRICT_PROPERTIES", "JOB_TTL"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 || cfg.MaxConcurrentResolve != 4 {
		t.Errorf("unexpected pool defaults %+v", cfg)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected 50MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.JobTTL != time.Hour || cfg.StatsWindow != time.Hour {
		t.Errorf("expected 1h windows, got %v and %v", cfg.JobTTL, cfg.StatsWindow)
	}
	if cfg.StrictProperties {
		t.Error("expected lenient properties by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("MAX_CONCURRENT_RESOLVE", "-1")
	t.Setenv("JOB_TTL", "90s")
	t.Setenv("STRICT_PROPERTIES", "true")
	t.Setenv("MAX_QUEUE_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.WorkerCount != 8 {
		t.Errorf("expected overrides, got %+v", cfg)
	}
	if cfg.MaxConcurrentResolve != 4 {
		t.Errorf("expected non-positive value replaced by 4, got %d", cfg.MaxConcurrentResolve)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected fallback for bad int, got %d", cfg.MaxQueueSize)
	}
	if cfg.JobTTL != 90*time.Second {
		t.Errorf("expected 90s, got %v", cfg.JobTTL)
	}
	if !cfg.StrictProperties {
		t.Error("expected strict properties")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing api key", Config{}, true},
		{"memory store", Config{TracemeshAPIKey: "k"}, false},
		{"remote store without key", Config{TracemeshAPIKey: "k", MeshstoreURL: "http://store"}, true},
		{"remote store", Config{TracemeshAPIKey: "k", MeshstoreURL: "http://store", MeshstoreAPIKey: "s"}, false},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tc.name, tc.wantErr, err)
		}
	}
}
