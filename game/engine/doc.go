// Package engine provides the rules of Dastan, a two-player capture game on a
// small rectangular board.
//
// The engine package implements:
//   - Board squares and the two strongholds, with occupancy scoring
//   - Move options (ryott, chowkidar, cuirassier, faujdar, jazair) mirrored per player
//   - Each player's five-slot move option queue and the shared offer pool
//   - The turn state machine, scoring and game-over detection
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the read-only snapshot handed to
// displays, and GameConfig describes board size, players and starting queues.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig(), engine.WithSeed(7))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameEngine.Play(ctx, input, display)
//
// Game Rules:
//
// On each turn a player either plays one of the first three options in their
// queue, moving one of their pieces by a displacement that option contains, or
// first buys the offered option into any queue slot. Playing slot p costs 3p-2
// points; buying into slot p costs 10-2p. After a legal move the mover earns
// the value of any captured piece plus the occupancy score of both
// strongholds. A move the option does not allow is discarded and the turn
// passes. The game ends when a commander stands on the enemy stronghold or
// either commander has been captured; the higher score wins.
package engine
