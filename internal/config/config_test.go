package config

import "testing"

const testConfigYAML = `
event:
  name: "Club Night Rondo"

players:
  - { name: Alice, rating: 1850 }
  - { name: Björn, rating: 1620 }
  - { name: Carla, rating: 1710 }
  - { name: Dmitri, rating: 1540 }

search:
  trials: 2500
  workers: 2
  seed: 42
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("event name", func(t *testing.T) {
		if cfg.Event.Name != "Club Night Rondo" {
			t.Errorf("event name = %q", cfg.Event.Name)
		}
	})

	t.Run("players", func(t *testing.T) {
		if len(cfg.Players) != 4 {
			t.Fatalf("players = %d, want 4", len(cfg.Players))
		}
		if cfg.Players[0].Name != "Alice" || cfg.Players[0].Rating != 1850 {
			t.Errorf("first player = %+v", cfg.Players[0])
		}
	})

	t.Run("search parameters", func(t *testing.T) {
		if cfg.Search.Trials != 2500 {
			t.Errorf("trials = %d, want 2500", cfg.Search.Trials)
		}
		if cfg.Search.Workers != 2 {
			t.Errorf("workers = %d, want 2", cfg.Search.Workers)
		}
		if cfg.Search.Seed != 42 {
			t.Errorf("seed = %d, want 42", cfg.Search.Seed)
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
players:
  - { name: Alice, rating: 1850 }
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Search.Trials != DefaultTrials {
		t.Errorf("trials = %d, want default %d", cfg.Search.Trials, DefaultTrials)
	}
	if cfg.Search.Workers != 0 {
		t.Errorf("workers = %d, want 0 (one per CPU)", cfg.Search.Workers)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", `players: [`},
		{"no players", `event: {name: x}`},
		{"unnamed player", `
players:
  - { rating: 1500 }
`},
		{"negative trials", `
players:
  - { name: Alice, rating: 1850 }
search:
  trials: -5
`},
		{"negative workers", `
players:
  - { name: Alice, rating: 1850 }
search:
  workers: -1
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadFromBytes([]byte(tc.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
