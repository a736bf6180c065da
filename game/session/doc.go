// Package session keeps Dastan game sessions in memory.
//
// Manager stores one service.Session per game, each with its own engine.
// Sessions are keyed by short ids taken from the first segment of a random
// UUID and looked up case-insensitively. Nothing is written to disk; a
// session lives until it is deleted, expires through
// CleanupExpiredSessions, or the process exits.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config, engine.WithSeed(7))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// The manager is safe for concurrent use.
package session
