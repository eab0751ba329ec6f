package config

import (
	_ "embed"
)

//go:embed defaults/chromagate.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It matches defaults/chromagate.yaml.
func Default() Config {
	return Config{
		Levels: LevelsConfig{
			Source: SourceBuiltin,
			Dir:    "./levels",
			DB:     "~/.chromagate/levels.db",
		},
		Game: GameConfig{
			Seed: 0,
		},
		UI: UIConfig{
			CellWidth:     2,
			NoticeSeconds: 3,
			ShowLegend:    true,
		},
		SSH: SSHConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
		Web: WebConfig{
			Address: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
