// Package service provides the business logic layer for Dastan.
//
// The service sits between the transports (console, spectator API and
// websocket hub) and the game engine. It creates sessions from named
// configurations, runs a session's game loop against an
// engine.InputProvider, and keeps the last snapshot of every session so
// that readers never touch an engine that is being played.
//
// Core Interfaces:
//
// GameService is the main service interface. SessionManager stores sessions
// and ConfigManager loads configurations; both are implemented by the
// session and config packages. StateBroadcaster receives every snapshot a
// running game publishes.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, service.WithBroadcaster(hub))
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.PlaySession(ctx, info.ID, input, renderer)
//
// Only one PlaySession may run per session at a time; a second caller gets
// ErrSessionBusy.
package service
