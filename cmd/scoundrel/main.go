// Package main provides the scoundrel binary that plays the card game in a
// terminal, either interactively or driven by an automated agent.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/scoundrel/internal/agent"
	"github.com/cory-johannsen/scoundrel/internal/config"
	"github.com/cory-johannsen/scoundrel/internal/dungeon"
	"github.com/cory-johannsen/scoundrel/internal/game/engine"
	"github.com/cory-johannsen/scoundrel/internal/game/event"
	"github.com/cory-johannsen/scoundrel/internal/game/session"
	"github.com/cory-johannsen/scoundrel/internal/observability"
	"github.com/cory-johannsen/scoundrel/internal/runner"
	"github.com/cory-johannsen/scoundrel/internal/scripting"
	"github.com/cory-johannsen/scoundrel/internal/ui"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults")
	dungeonPath := flag.String("dungeon", "", "path to a dungeon YAML file; empty = classic 44-card dungeon")
	seed := flag.Int64("seed", 0, "shuffle seed for reproducible games; 0 = random")
	agentMode := flag.String("agent", "", "player mode: interactive, heuristic, script, or llm")
	agentScript := flag.String("agent-script", "", "Lua agent script path (mode script)")
	agentModel := flag.String("agent-model", "", "Anthropic model ID (mode llm)")
	eventLog := flag.String("event-log", "", "JSONL event log file path")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	applyFlags(&cfg, *dungeonPath, *seed, *agentMode, *agentScript, *agentModel, *eventLog, *noColor)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	pool, err := loadPool(cfg.Game.DungeonPath)
	if err != nil {
		logger.Fatal("loading dungeon", zap.Error(err))
	}
	logger.Info("dungeon loaded",
		zap.String("version", pool.Version),
		zap.Int("cards", pool.TotalCards()),
	)

	sink, closeSink, err := buildSink(cfg.EventLog, logger)
	if err != nil {
		logger.Fatal("opening event log", zap.Error(err))
	}
	defer closeSink()

	opts := []engine.Option{
		engine.WithRules(engine.Rules{
			MaxHealth:         cfg.Game.MaxHealth,
			MaxPotionsPerTurn: cfg.Game.MaxPotionsPerTurn,
		}),
		engine.WithLogger(logger),
		engine.WithSink(sink),
	}
	if cfg.Game.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Game.Seed))
	}
	if cfg.EventLog.Snapshots {
		opts = append(opts, engine.WithStateSnapshots())
	}

	games := session.NewManager()
	game, err := games.Create(pool, opts...)
	if err != nil {
		logger.Fatal("creating game", zap.Error(err))
	}
	logger.Info("game created",
		zap.String("game_id", game.ID),
		zap.String("mode", cfg.Agent.Mode),
		zap.Int64("seed", cfg.Game.Seed),
	)

	renderer := ui.NewRenderer(os.Stdout, cfg.UI.Color)
	renderer.SetClearScreen(cfg.UI.ClearScreen)
	if cfg.UI.ShowTitle {
		renderer.Title()
	}

	run := runner.New(game.Engine, renderer, logger)

	var final engine.State
	if cfg.Agent.Mode == "interactive" {
		final, err = run.RunInteractive(ui.NewInput(os.Stdin, os.Stdout))
	} else {
		var player agent.Agent
		player, err = buildAgent(cfg.Agent, logger)
		if err != nil {
			logger.Fatal("creating agent", zap.Error(err))
		}
		if closer, ok := player.(interface{ Close() }); ok {
			defer closer.Close()
		}
		final, err = run.RunAgent(player)
		if err == nil {
			renderer.GameOver(final)
		}
	}
	if err != nil {
		logger.Fatal("running game", zap.Error(err))
	}

	logger.Info("game over",
		zap.String("game_id", final.GameID),
		zap.Bool("victory", final.Victory),
		zap.Int("score", final.Score),
		zap.Int("turns", final.Turn),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// applyFlags overlays non-empty command line flags onto the loaded config.
func applyFlags(cfg *config.Config, dungeonPath string, seed int64, mode, script, model, eventLog string, noColor bool) {
	if dungeonPath != "" {
		cfg.Game.DungeonPath = dungeonPath
	}
	if seed != 0 {
		cfg.Game.Seed = seed
	}
	if mode != "" {
		cfg.Agent.Mode = mode
	}
	if script != "" {
		cfg.Agent.Script = script
	}
	if model != "" {
		cfg.Agent.Model = model
	}
	if eventLog != "" {
		cfg.EventLog.Path = eventLog
	}
	if noColor {
		cfg.UI.Color = false
	}
}

func loadPool(path string) (*dungeon.Pool, error) {
	if path == "" {
		return dungeon.DefaultPool(), nil
	}
	return dungeon.LoadFromFile(path)
}

// buildSink assembles the event sink chain from configuration. The returned
// close function flushes the file sink, if any.
func buildSink(cfg config.EventLogConfig, logger *zap.Logger) (event.Sink, func(), error) {
	var sinks []event.Sink
	closeFn := func() {}

	if cfg.Path != "" {
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening event log %q: %w", cfg.Path, err)
		}
		sinks = append(sinks, event.NewJSONLSink(f))
		closeFn = func() { f.Close() }
	}
	if cfg.Console {
		sinks = append(sinks, event.NewZapSink(logger))
	}

	switch len(sinks) {
	case 0:
		return event.NopSink{}, closeFn, nil
	case 1:
		return sinks[0], closeFn, nil
	default:
		return event.NewMultiSink(sinks...), closeFn, nil
	}
}

func buildAgent(cfg config.AgentConfig, logger *zap.Logger) (agent.Agent, error) {
	switch cfg.Mode {
	case "heuristic":
		return agent.NewHeuristic(), nil
	case "script":
		return scripting.NewScriptAgent(cfg.Script, cfg.ScriptInstructionLimit, logger)
	case "llm":
		return agent.NewLLM(cfg.Model, logger), nil
	default:
		return nil, fmt.Errorf("unknown agent mode %q", cfg.Mode)
	}
}
