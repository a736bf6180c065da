// Package console plays a game on a terminal.
//
// Input reads one integer per line and keeps asking until it gets one.
// Renderer draws the board and the state of the player to move in plain
// text, and the final result once the game is over.
package console
