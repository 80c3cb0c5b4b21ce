package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kirari-dev/streamtycoon/tycoon"
	"github.com/kirari-dev/streamtycoon/tycoon/database"
	"github.com/kirari-dev/streamtycoon/tycoon/database/repositories"
	"github.com/kirari-dev/streamtycoon/tycoon/display"
	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
	"github.com/kirari-dev/streamtycoon/tycoon/services"
	"github.com/kirari-dev/streamtycoon/tycoon/utils"
	"github.com/kirari-dev/streamtycoon/tycoon/web"
)

var (
	version = "dev"
	commit  = "unknown"
)

const tickInterval = 100 * time.Millisecond

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Stream Tycoon",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	freshStart := flag.Bool("new", false, "ignore any existing save")
	seed := flag.Int64("seed", 0, "simulation seed, 0 for random")
	verbose := flag.Bool("verbose", false, "log chat and per-tick updates")
	flag.Parse()

	cfg, err := tycoon.LoadConfig(*path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("No config file, using defaults", slog.String("path", *path))
		defaults := tycoon.DefaultConfig()
		cfg = &defaults
	} else if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(customHandler.WithLevel(cfg.Log.Level)))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbStart := time.Now()
	db, err := database.New(ctx, cfg.DB.Path)
	if err != nil {
		slog.Error("Failed to open save database",
			slog.String("path", cfg.DB.Path),
			slog.Any("error", err))
		os.Exit(-1)
	}
	defer db.Close()
	slog.Info("Save database ready",
		slog.String("path", cfg.DB.Path),
		slog.Duration("took", time.Since(dbStart)))
	saveRepo := repositories.NewSaveRepository(db.BunDB())

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	slog.Info("Simulation seeded", slog.Int64("seed", *seed))

	hub := web.NewHub()
	disp := display.Multi{
		&display.Console{Verbose: *verbose},
		web.NewDisplay(hub),
	}
	game := tycoon.New(cfg, disp, rng)

	if !*freshStart {
		var st tycoon.State
		switch err := saveRepo.Load(ctx, repositories.DefaultSlot, &st); {
		case err == nil:
			game.Restore(st)
			slog.Info("Save loaded", slog.Time("saved_at", st.SavedAt))
		case errors.Is(err, repositories.ErrNoSave):
			slog.Info("No previous save, starting fresh")
		case errors.Is(err, repositories.ErrCorruptSave):
			slog.Warn("Save is corrupt, starting fresh", slog.Any("error", err))
		default:
			slog.Error("Failed to load save", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	autosave := services.NewAutosaveService(saveRepo, repositories.DefaultSlot,
		time.Duration(cfg.Game.AutosaveInterval*float64(time.Second)))
	shop := services.NewShopSearchService()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	if _, err := os.Stat(cfg.Web.StaticDir); err == nil {
		mux.Handle("/", http.FileServer(http.Dir(cfg.Web.StaticDir)))
	}
	server := &http.Server{Addr: cfg.Web.Addr, Handler: mux}

	pm := utils.NewProcessManager()
	pm.Start("hub", hub.Run)
	pm.Start("autosave", autosave.Run)
	pm.Start("game_loop", func(loopCtx context.Context) {
		runGameLoop(loopCtx, game, shop, hub, autosave, saveRepo)
	})

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		slog.Info("Web shell listening", slog.String("addr", cfg.Web.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	err = eg.Wait()

	if shutdownErr := pm.Shutdown(10 * time.Second); shutdownErr != nil {
		slog.Warn("Background processes did not stop cleanly", slog.Any("error", shutdownErr))
	}

	if err != nil {
		slog.Error("Shutdown with error", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Goodbye")
}

// runGameLoop is the single goroutine that owns the Game: it advances the
// simulation on a fixed cadence, applies player commands between ticks
// and hands snapshots to the autosave service.
func runGameLoop(ctx context.Context, game *tycoon.Game, shop *services.ShopSearchService, hub *web.Hub, autosave *services.AutosaveService, saves repositories.SaveRepository) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	var sinceSnapshot time.Duration

	for {
		select {
		case <-ctx.Done():
			if game.Session().Live() {
				game.EndStream()
			}
			autosave.Store(game.Snapshot())
			return
		case cmd := <-hub.Commands():
			handleCommand(ctx, game, shop, hub, autosave, saves, cmd)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			game.Tick(dt.Seconds())

			sinceSnapshot += dt
			if sinceSnapshot >= time.Second {
				sinceSnapshot = 0
				autosave.Store(game.Snapshot())
			}
		}
	}
}

type commandPayload struct {
	StreamType string `json:"stream_type"`
	Item       string `json:"item"`
	Event      string `json:"event"`
	Query      string `json:"query"`
}

func handleCommand(ctx context.Context, game *tycoon.Game, shop *services.ShopSearchService, hub *web.Hub, autosave *services.AutosaveService, saves repositories.SaveRepository, cmd web.Command) {
	var p commandPayload
	if len(cmd.Payload) > 0 {
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			slog.Warn("Bad command payload", slog.String("command", cmd.Type), slog.Any("error", err))
			return
		}
	}

	switch cmd.Type {
	case "start_stream":
		game.StartStream(p.StreamType)
	case "end_stream":
		game.EndStream()
	case "switch_stream":
		game.SwitchStream(p.StreamType)
	case "rest":
		game.Rest()
	case "buy":
		game.Buy(p.Item)
	case "new_game":
		game.NewGame()
	case "trigger_event":
		game.TriggerEvent(p.Event)
	case "save":
		autosave.Store(game.Snapshot())
		autosave.Flush(ctx)
		hub.Broadcast("notification", map[string]string{
			"message":  "Game saved",
			"severity": string(interfaces.SeveritySuccess),
		})
	case "load":
		if game.Session().Live() {
			game.EndStream()
		}
		var st tycoon.State
		if err := saves.Load(ctx, repositories.DefaultSlot, &st); err != nil {
			slog.Warn("Load failed", slog.Any("error", err))
			hub.Broadcast("notification", map[string]string{
				"message":  "No save to load",
				"severity": string(interfaces.SeverityWarning),
			})
			return
		}
		game.Restore(st)
	case "shop":
		hub.Broadcast("shop", shop.Search(p.Query, game.Player()))
	case "get_state":
		hub.Broadcast("stats", game.Player().StatsSnapshot())
		hub.Broadcast("shop", shop.Search("", game.Player()))
	default:
		slog.Warn("Unknown command", slog.String("command", cmd.Type))
	}
}
