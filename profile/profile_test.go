package profile

import "testing"

func TestConfig_Options(t *testing.T) {
	var cfg Config

	cfg = WithMode("cpu")(cfg)
	cfg = WithPath("/tmp/profiles")(cfg)
	cfg = WithQuiet(true)(cfg)

	mode, path, quiet := cfg()
	if mode != "cpu" || path != "/tmp/profiles" || !quiet {
		t.Errorf("unexpected config: mode=%q path=%q quiet=%v", mode, path, quiet)
	}
}

func TestConfig_StartWithoutMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"nil", nil},
		{"empty_mode", WithPath(t.TempDir())(nil)},
		{"unknown_mode", WithMode("bogus")(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.cfg.Start()
			if _, ok := p.(ignore); !ok {
				t.Errorf("expected no-op profiler, got %T", p)
			}

			p.Stop()
		})
	}
}
