// Command dastan plays Dastan on the terminal.
//
// Commands:
//  1. "play" (default) runs a two-player game on stdin/stdout, optionally
//     serving the game to read-only spectators over HTTP and WebSocket
//  2. "configs" lists the board configurations found in the config directory
//  3. "validate" checks configuration files and fails if any is invalid
//
// Flags fall back to CONFIG_DIR, DASTAN_CONFIG, DASTAN_SEED, LOG_LEVEL and
// SPECTATE_ADDR, which may also come from a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/dastan/api"
	"github.com/wricardo/dastan/game/config"
	"github.com/wricardo/dastan/game/engine"
	"github.com/wricardo/dastan/game/service"
	"github.com/wricardo/dastan/game/session"
	"github.com/wricardo/dastan/internal/logger"
	"github.com/wricardo/dastan/transport/console"
	mcptools "github.com/wricardo/dastan/transport/mcp"
	"github.com/wricardo/dastan/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "dastan"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxAge          = 24 * time.Hour
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "a two-player board game of strongholds, commanders and move option queues",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   logger.DefaultLevel,
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Init(cmd.String("log-level"), cmd.Root().ErrWriter)
			return ctx, nil
		},
		Commands: []*cli.Command{
			playCommand(),
			{
				Name:   "configs",
				Usage:  "list available configurations",
				Action: listConfigs,
			},
			{
				Name:      "validate",
				Usage:     "validate configuration files (default: every file in the config directory)",
				ArgsUsage: "[files...]",
				Action:    validateConfigs,
			},
		},
		DefaultCommand: "play",
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play a game on this terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration to play (default: classic)",
				Sources: cli.EnvVars("DASTAN_CONFIG"),
			},
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "seed for the move option offer, for repeatable games",
				Sources: cli.EnvVars("DASTAN_SEED"),
			},
			&cli.StringFlag{
				Name:    "spectate",
				Usage:   "serve the game to spectators on this address, e.g. localhost:8080",
				Sources: cli.EnvVars("SPECTATE_ADDR"),
			},
		},
		Action: play,
	}
}

// play wires the managers and service, optionally starts the spectator
// server, then runs one game on the terminal.
func play(ctx context.Context, cmd *cli.Command) error {
	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}

	var opts []service.ServiceOption
	var hub *websocket.Hub
	addr := cmd.String("spectate")
	if addr != "" {
		hub = websocket.NewHub()
		opts = append(opts, service.WithBroadcaster(hub))
	}
	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager, opts...)

	var engineOpts []engine.Option
	if cmd.IsSet("seed") {
		engineOpts = append(engineOpts, engine.WithSeed(cmd.Int64("seed")))
	}
	info, err := gameService.CreateSession(ctx, cmd.String("config"), engineOpts...)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if hub != nil {
		bound, shutdown, err := serveSpectators(ctx, addr, sessionManager, gameService, hub)
		if err != nil {
			return err
		}
		defer shutdown()
		fmt.Fprintf(out, "Spectate at ws://%s/ws?session_id=%s\n", bound, info.ID)
	}

	in := console.NewInput(cmd.Root().Reader, out)
	defer in.Close()
	_, err = gameService.PlaySession(ctx, info.ID, in, console.NewRenderer(out))
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		log.Info().Str("session_id", info.ID).Msg("game left unfinished")
	default:
		return err
	}

	fmt.Fprintln(out, "Goodbye!")
	return nil
}

// serveSpectators starts the hub, the read-only API with its MCP endpoint and
// the session cleanup routine, and returns the bound address. The returned
// func stops them.
func serveSpectators(ctx context.Context, addr string, sessionManager *session.Manager, gameService service.GameService, hub *websocket.Hub) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	hubCtx, cancelHub := context.WithCancel(ctx)
	go hub.Run(hubCtx)
	go sessionCleanupRoutine(hubCtx, sessionManager, sessionCleanupInterval, sessionMaxAge)

	apiServer := api.NewServer(gameService, hub)
	apiServer.Mount("/mcp", mcptools.NewServer(gameService))

	httpServer := &http.Server{
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", listener.Addr().String()).Msg("spectator server listening")
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("spectator server failed")
		}
	}()

	return listener.Addr().String(), func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("spectator server shutdown error")
		}
		cancelHub()
	}, nil
}

// sessionCleanupRoutine removes sessions idle for longer than maxAge every
// interval until ctx is done
func sessionCleanupRoutine(ctx context.Context, sessionManager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessionManager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Info().
					Int("removed", removed).
					Int("remaining", sessionManager.Count()).
					Msg("cleaned up expired sessions")
			}
		}
	}
}

func listConfigs(ctx context.Context, cmd *cli.Command) error {
	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	configs, err := configManager.ListConfigs()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBOARD\tPIECES\tSCORE\tDESCRIPTION")
	for _, c := range configs {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d\t%s\n", c.ConfigID, c.Rows, c.Cols, c.PiecesPerSide, c.StartingScore, c.Description)
	}
	return tw.Flush()
}

// validateConfigs checks the named files, or every file in the config
// directory when none are named.
func validateConfigs(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		configManager, err := config.NewManager(cmd.String("config-dir"))
		if err != nil {
			return fmt.Errorf("failed to create config manager: %w", err)
		}
		if files, err = configManager.Files(); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return errors.New("no configuration files found")
	}

	out := cmd.Root().Writer
	failed := 0
	for _, file := range files {
		cfg, err := config.LoadFile(file)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", file, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%s, %dx%d)\n", file, cfg.Name, cfg.Rows, cfg.Cols)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d configurations are invalid", failed, len(files))
	}
	return nil
}
