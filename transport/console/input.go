package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/dastan/game/engine"
)

const (
	moveOptionPrompt = "Choose move option to use from queue (1 to 3) or 9 to take the offer: "
	replacePrompt    = "Choose the move option from your queue to replace (1 to 5): "
	squarePrompt     = "Enter the square %s (row number followed by column number): "
)

// Input answers the engine's questions from a line-oriented reader. Lines
// are read on a separate goroutine so a cancelled context unblocks a prompt.
// Close stops that goroutine once the game is done with it.
type Input struct {
	out   io.Writer
	lines chan string
	err   error // set before lines is closed

	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}
}

// NewInput starts reading r. Prompts and rejections are written to out.
func NewInput(r io.Reader, out io.Writer) *Input {
	in := &Input{
		out:     out,
		lines:   make(chan string),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go in.scan(bufio.NewScanner(r))
	return in
}

// Close stops handing lines to the game. Later prompts return io.EOF. A read
// already blocked on r finishes on its own; its line is discarded.
func (in *Input) Close() error {
	in.closeOnce.Do(func() { close(in.done) })
	return nil
}

func (in *Input) scan(s *bufio.Scanner) {
	defer close(in.stopped)
	defer close(in.lines)

	for s.Scan() {
		select {
		case in.lines <- s.Text():
		case <-in.done:
			in.err = io.EOF
			return
		}
	}
	in.err = s.Err()
	if in.err == nil {
		in.err = io.EOF
	}
}

// readInt prompts until a line parses as an integer
func (in *Input) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		fmt.Fprint(in.out, prompt)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-in.done:
			return 0, io.EOF
		case text, ok := <-in.lines:
			if !ok {
				return 0, in.err
			}
			n, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				log.Debug().Str("input", text).Msg("not a number")
				fmt.Fprintln(in.out, "Please enter a whole number.")
				continue
			}
			return n, nil
		}
	}
}

func (in *Input) SelectMoveOption(ctx context.Context, _ *engine.GameState) (int, error) {
	return in.readInt(ctx, moveOptionPrompt)
}

func (in *Input) SelectReplacePosition(ctx context.Context, _ *engine.GameState) (int, error) {
	return in.readInt(ctx, replacePrompt)
}

func (in *Input) SelectSquare(ctx context.Context, purpose engine.SquarePurpose) (int, error) {
	return in.readInt(ctx, fmt.Sprintf(squarePrompt, purpose))
}

// Reject tells the player why the answer was refused
func (in *Input) Reject(err error) {
	fmt.Fprintf(in.out, "%v, try again.\n", err)
}
