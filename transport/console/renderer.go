package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wricardo/dastan/game/engine"
)

// Renderer writes snapshots as text
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render prints what happened last, the board, the offer and the player to
// move. A finished game also gets its result.
func (r *Renderer) Render(state *engine.GameState) {
	var b strings.Builder
	if state.Turn > 1 && state.Message != "" {
		b.WriteString(state.Message + "\n")
	}
	writeBoard(&b, state)
	b.WriteString("Move option offer: " + string(state.Offer) + "\n\n")
	writePlayer(&b, state.Current())
	b.WriteString("Turn: " + state.CurrentPlayer + "\n\n")

	if state.GameOver && state.Result != nil {
		b.WriteString(FormatResult(state.Result) + "\n")
	}
	io.WriteString(r.out, b.String())
}

func writeBoard(b *strings.Builder, state *engine.GameState) {
	b.WriteString("\n   ")
	for col := 1; col <= state.Cols; col++ {
		b.WriteString(strconv.Itoa(col) + "  ")
	}
	b.WriteString("\n  " + strings.Repeat("---", state.Cols) + "-\n")

	for i, row := range state.Board {
		b.WriteString(strconv.Itoa(i+1) + " ")
		for _, cell := range row {
			piece := cell.PieceSymbol
			if piece == "" {
				piece = " "
			}
			b.WriteString("|" + cell.Symbol + piece)
		}
		b.WriteString("|\n")
	}
	b.WriteString("  -" + strings.Repeat("---", state.Cols) + "\n\n\n")
}

func writePlayer(b *strings.Builder, p engine.PlayerState) {
	b.WriteString(p.Name + "\n")
	b.WriteString("Score: " + strconv.Itoa(p.Score) + "\n")
	b.WriteString("Move option queue: ")
	for i, name := range p.Queue {
		fmt.Fprintf(b, "%d. %s   ", i+1, name)
	}
	b.WriteString("\n\n")
}

// FormatResult is the closing line of a game
func FormatResult(res *engine.Result) string {
	if res.Draw {
		return "Draw!"
	}
	return res.Winner + " is the winner!"
}
