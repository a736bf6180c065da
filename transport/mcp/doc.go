// Package mcp exposes running Dastan games to Model Context Protocol clients.
//
// Every tool is read-only. An agent can watch a game, inspect squares and
// read the rules, but moves are only ever made from the terminal.
//
// Tools:
//   - list_sessions: list games with their config and whether one is in play
//   - get_session: session details and the latest snapshot
//   - game_state: the board, offer and player to move, as text
//   - list_configs: available board configurations
//   - game_instructions: rules, costs and scoring
//   - describe_square: what stands on one square
//
// The server is mounted at POST /mcp next to the spectator API:
//
//	tools := mcp.NewServer(gameService)
//	apiServer.Mount("/mcp", tools)
package mcp
