// Package websocket streams Dastan game state to spectators.
//
// A Hub keeps the spectators of each session and implements
// service.StateBroadcaster: every snapshot a running game publishes is
// encoded as a service.GameEvent and sent as one JSON text frame to every
// connection subscribed to that session. A spectator that connects mid-game
// first receives the newest event of its session.
//
// The connection is read-only. Anything a client sends is discarded; moves
// only come from the player at the console.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session_id"))
//	})
//
//	gameService := service.NewGameService(sessions, configs, service.WithBroadcaster(hub))
package websocket
