package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sandeepkv93/taskly/internal/config"
)

// Globals carries the loaded runtime config and the log sink to subcommands.
type Globals struct {
	Config  config.RuntimeConfig
	logFile io.Closer
}

type CLI struct {
	Config   string        `short:"c" help:"YAML configuration file path" default:"taskly.yaml"`
	EnvFile  string        `name:"env-file" help:"Dotenv file with TASKLY_* overrides" default:".env"`
	DB       string        `name:"db" help:"SQLite database path (overrides config)"`
	Interval time.Duration `help:"Countdown interval (overrides config)"`
	Verbose  bool          `short:"v" help:"Enable verbose logging"`

	Run     RunCmd     `cmd:"" default:"1" help:"Open the shopping list and countdown UI"`
	Done    DoneCmd    `cmd:"" help:"Mark the thing done without opening the UI"`
	History HistoryCmd `cmd:"" help:"Print completion history, newest first"`
	List    ListCmd    `cmd:"" help:"Print the shopping list"`
	Add     AddCmd     `cmd:"" help:"Add an item to the shopping list"`
}

// AfterApply loads configuration and sets up logging once flags are parsed.
func (c *CLI) AfterApply(g *Globals) error {
	cfg, err := config.Load(c.Config, c.EnvFile)
	if err != nil {
		return err
	}
	if c.DB != "" {
		cfg.DBPath = c.DB
	}
	if c.Interval > 0 {
		cfg.CountdownInterval = c.Interval
	}
	g.Config = cfg

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	var sink io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		sink = f
		g.logFile = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	var cli CLI
	globals := &Globals{}
	ctx := kong.Parse(&cli,
		kong.Name("taskly"),
		kong.Description("A shopping list and a recurring countdown with reminders."),
		kong.UsageOnError(),
		kong.Bind(globals),
	)
	err := ctx.Run(globals)
	if globals.logFile != nil {
		_ = globals.logFile.Close()
	}
	ctx.FatalIfErrorf(err)
}
