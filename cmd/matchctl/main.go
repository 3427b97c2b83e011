package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func pitchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: "One-paragraph pitch summary"},
		&cli.StringFlag{Name: "sector", Usage: "Pitch sector"},
		&cli.StringFlag{Name: "stage", Usage: "Funding stage"},
		&cli.StringFlag{Name: "geo", Usage: "Geography"},
		&cli.StringFlag{Name: "traction", Usage: "Traction highlights"},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "matchctl",
		Usage: "Seed investors, rank them for a pitch and ask cited questions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load investors from a JSON file into the database, vector index and graph",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON array of investor records",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent seeding batches",
						Value: 4,
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Rank investors for a pitch",
				Action: matchCommand,
				Flags: append(pitchFlags(),
					&cli.IntFlag{Name: "top-n", Aliases: []string{"n"}, Usage: "Maximum number of matches (0 uses the configured default)"},
					&cli.BoolFlag{Name: "explain", Usage: "Ask the configured LLM for an explanation per match"},
					&cli.BoolFlag{Name: "json", Usage: "Print the raw JSON response"},
				),
			},
			{
				Name:   "ask",
				Usage:  "Ask a question about one investor",
				Action: askCommand,
				Flags: append(pitchFlags(),
					&cli.StringFlag{Name: "investor", Aliases: []string{"i"}, Usage: "Investor name", Required: true},
					&cli.StringFlag{Name: "question", Aliases: []string{"q"}, Usage: "Question text", Required: true},
					&cli.StringFlag{Name: "mode", Usage: "profile or fit (inferred when empty)"},
				),
			},
			{
				Name:   "analyze",
				Usage:  "Review how a pitch lines up with one investor",
				Action: analyzeCommand,
				Flags: append(pitchFlags(),
					&cli.StringFlag{Name: "investor", Aliases: []string{"i"}, Usage: "Investor name", Required: true},
				),
			},
			{
				Name:   "related",
				Usage:  "List investors sharing focus tags with one investor (requires NEO4J_URI)",
				Action: relatedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "investor", Aliases: []string{"i"}, Usage: "Investor name", Required: true},
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of investors", Value: 10},
				},
			},
			{
				Name:   "history",
				Usage:  "Show stored answers for one investor, newest first",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "investor", Aliases: []string{"i"}, Usage: "Investor name", Required: true},
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of answers", Value: 20},
				},
			},
			{
				Name:   "matches",
				Usage:  "Show the stored matches of a pitch",
				Action: matchesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pitch", Aliases: []string{"p"}, Usage: "Pitch ID printed by match", Required: true},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
