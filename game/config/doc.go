// Package config loads Dastan game configurations from a directory.
//
// Each file describes one game: board size, pieces per side, starting
// score, player names, both starting queues and the offer pool. Files are
// read with viper, so JSON, YAML and TOML are all accepted:
//
//	name: grand
//	rows: 8
//	cols: 9
//	pieces_per_side: 7
//	starting_score: 150
//
// Missing fields are filled from engine.DefaultGameConfig and the result is
// checked with engine.ValidateGameConfig.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("grand")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default is "classic" when present, otherwise the first valid file,
// otherwise the built-in 6x6 game.
package config
