// Package api serves a read-only HTTP view of running Dastan games.
//
// Endpoints:
//   - GET /api/sessions - list sessions (?sort=created|accessed, ?order=asc|desc, ?limit=n)
//   - GET /api/sessions/{id} - session metadata with its latest state
//   - GET /api/sessions/{id}/state - latest published game state
//   - GET /api/configs - list available configurations
//   - GET /api/configs/{name} - one configuration, with or without extension
//   - GET /ws?session_id={id} - websocket stream of the session's states
//   - GET /healthz - liveness
//
// There are no endpoints that create, move or delete: games are played at
// the console and spectators only watch. Every request gets an
// X-Request-ID header and one log line.
//
// Errors are returned as JSON with the HTTP status repeated in the body:
//
//	{
//	  "error": "session abc1: session not found",
//	  "code": 404
//	}
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
