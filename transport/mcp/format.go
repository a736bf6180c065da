package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/dastan/game/engine"
	"github.com/wricardo/dastan/game/service"
	"github.com/wricardo/dastan/transport/console"
)

func formatSessionList(sessions []*service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sessions (%d):\n\n", len(sessions))
	for _, s := range sessions {
		status := "waiting"
		switch {
		case s.GameState != nil && s.GameState.GameOver:
			status = "finished"
		case s.Playing:
			status = "in play"
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s, %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}
	return b.String()
}

func formatSessionInfo(s *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", s.ID)
	fmt.Fprintf(&b, "Config: %s\n", s.ConfigName)
	fmt.Fprintf(&b, "Created: %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Last accessed: %s\n", s.LastAccessedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "In play: %t\n", s.Playing)
	if s.GameState != nil {
		b.WriteString("\n" + formatGameState(s.GameState))
	}
	return b.String()
}

// formatGameState draws the snapshot the way the terminal shows it, followed
// by both players' scores.
func formatGameState(state *engine.GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn %d, phase %s\n", state.Turn, state.Phase)
	console.NewRenderer(&b).Render(state)

	b.WriteString("Scores:\n")
	for _, p := range state.Players {
		fmt.Fprintf(&b, "  %s: %d\n", p.Name, p.Score)
	}
	return b.String()
}

func formatConfigs(configs []*service.ConfigInfo) string {
	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, c := range configs {
		fmt.Fprintf(&b, "• %s\n  %s\n  Board: %dx%d, Pieces: %d, Starting score: %d\n\n",
			c.ConfigID, c.Description, c.Rows, c.Cols, c.PiecesPerSide, c.StartingScore)
	}
	return b.String()
}

func describeSquare(state *engine.GameState, pos engine.Position) string {
	cell := state.Board[pos.Row-1][pos.Col-1]

	var b strings.Builder
	fmt.Fprintf(&b, "Square %d (row %d, column %d)\n", pos.Ref(), pos.Row, pos.Col)

	if cell.Stronghold == "" {
		b.WriteString("Type: plain square\n")
	} else {
		fmt.Fprintf(&b, "Type: stronghold %q of %s\n", cell.Symbol, cell.Stronghold)
	}

	if cell.PieceSymbol == "" {
		b.WriteString("Piece: none\n")
		return b.String()
	}
	value := engine.StandardCaptureValue
	if cell.PieceKind == engine.Commander {
		value = engine.CommanderValue
	}
	fmt.Fprintf(&b, "Piece: %s %q of %s\n", cell.PieceKind, cell.PieceSymbol, cell.PieceOwner)
	fmt.Fprintf(&b, "Capture value: %d\n", value)
	return b.String()
}

func instructions() string {
	return fmt.Sprintf(`Dastan - Rules

BOARD:
• Square references are row*10+column, both starting at 1 (23 is row 2, column 3)
• K is the first player's stronghold, k the second player's
• ! and " are standard pieces, 1 and 2 the commanders

TURN:
• Play one of the first %[1]d move options of your queue, or enter %[2]d to take the offer
• Playing slot c costs 3c-2 points; the used option moves to the back of the queue
• Taking the offer into queue position p costs 10-2p points and re-rolls the offer
• A move the option does not allow moves nothing and passes the turn

SCORING:
• Capturing a standard piece scores %[3]d, a commander %[4]d
• After each move, each of your pieces on your own stronghold scores %[5]d
  and each on the enemy stronghold scores %[6]d

END:
• The game ends when a commander stands on the enemy stronghold or a commander is captured
• The higher score wins; equal scores are a draw`,
		engine.UsableSlots, engine.OfferSentinel, engine.StandardCaptureValue, engine.CommanderValue,
		engine.OwnStrongholdPoints, engine.EnemyStrongholdPoints)
}
