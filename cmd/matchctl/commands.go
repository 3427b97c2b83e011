package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"dealmatch/internal/app"
	"dealmatch/internal/config"
	"dealmatch/internal/ingest"
	"dealmatch/internal/model"
	"dealmatch/internal/service"
)

// withApp loads configuration, builds the App for one command and closes it afterwards.
func withApp(c *cli.Context, fn func(ctx context.Context, a *app.App) error) (err error) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close(ctx))
	}()
	return fn(ctx, a)
}

func pitchFromFlags(c *cli.Context) model.Pitch {
	return model.Pitch{
		Summary:  c.String("summary"),
		Sector:   c.String("sector"),
		Stage:    c.String("stage"),
		Geo:      c.String("geo"),
		Traction: c.String("traction"),
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func seedCommand(c *cli.Context) error {
	investors, err := ingest.LoadInvestorsFile(c.String("file"))
	if err != nil {
		return err
	}

	return withApp(c, func(ctx context.Context, a *app.App) error {
		seeder, err := a.NewSeeder(c.Int("workers"))
		if err != nil {
			return err
		}
		defer seeder.Release()

		report, seedErr := seeder.Seed(ctx, investors)
		fmt.Fprintf(c.App.Writer, "stored %d, indexed %d, graphed %d, skipped %d\n",
			report.Stored, report.Indexed, report.Graphed, report.Skipped)
		return seedErr
	})
}

func matchCommand(c *cli.Context) error {
	req := service.MatchRequest{
		Pitch:   pitchFromFlags(c),
		TopN:    c.Int("top-n"),
		Explain: c.Bool("explain"),
	}

	return withApp(c, func(ctx context.Context, a *app.App) error {
		resp, err := a.MatchService.Match(ctx, req)
		if err != nil {
			return err
		}
		if c.Bool("json") {
			return printJSON(c.App.Writer, resp)
		}
		writeMatches(c.App.Writer, resp)
		return nil
	})
}

func writeMatches(w io.Writer, resp *service.MatchResponse) {
	fmt.Fprintf(w, "pitch %s\n", resp.PitchID)
	if len(resp.Matches) == 0 {
		fmt.Fprintln(w, "no matching investors")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINVESTOR\tSCORE\tLEXICAL\tVECTOR\tEXPLANATION")
	for i, m := range resp.Matches {
		fmt.Fprintf(tw, "%d\t%s\t%d%%\t%s\t%s\t%s\n",
			i+1, m.Investor.Name, m.ScorePct, pct(m.LexicalPct), pct(m.VectorPct), m.Explanation)
	}
	_ = tw.Flush()
}

func pct(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *p)
}

func askCommand(c *cli.Context) error {
	req := service.QARequest{
		InvestorName: c.String("investor"),
		Question:     c.String("question"),
		Mode:         c.String("mode"),
		Pitch:        pitchFromFlags(c),
	}

	return withApp(c, func(ctx context.Context, a *app.App) error {
		answer, err := a.InvestorService.Ask(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, answer.Text)
		fmt.Fprintln(c.App.Writer)
		for _, p := range answer.Passages {
			fmt.Fprintf(c.App.Writer, "[%s %s: %s] %s\n", p.Citation.Source, p.Citation.Title, p.Citation.Field, strings.TrimSpace(p.Text))
		}
		return nil
	})
}

func analyzeCommand(c *cli.Context) error {
	req := service.AnalyzeRequest{
		InvestorName: c.String("investor"),
		Pitch:        pitchFromFlags(c),
	}

	return withApp(c, func(ctx context.Context, a *app.App) error {
		analysis, err := a.InvestorService.Analyze(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, analysis)
	})
}

func relatedCommand(c *cli.Context) error {
	return withApp(c, func(ctx context.Context, a *app.App) error {
		if a.Graph == nil {
			return fmt.Errorf("graph is not configured: set NEO4J_URI")
		}
		related, err := a.Graph.RelatedInvestors(ctx, c.String("investor"), c.Int("limit"))
		if err != nil {
			return err
		}
		for _, r := range related {
			fmt.Fprintf(c.App.Writer, "%s\t%d shared\n", r.Name, r.Shared)
		}
		return nil
	})
}

func historyCommand(c *cli.Context) error {
	return withApp(c, func(ctx context.Context, a *app.App) error {
		answers, err := a.Answers.ListByInvestor(ctx, c.String("investor"), c.Int("limit"))
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, answers)
	})
}

func matchesCommand(c *cli.Context) error {
	return withApp(c, func(ctx context.Context, a *app.App) error {
		pitch, err := a.Matches.GetPitch(ctx, c.String("pitch"))
		if err != nil {
			return err
		}
		matches, err := a.Matches.ListByPitch(ctx, pitch.ID)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, struct {
			Pitch   *model.Pitch  `json:"pitch"`
			Matches []model.Match `json:"matches"`
		}{pitch, matches})
	})
}
