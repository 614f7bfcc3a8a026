package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/dashboard"
)

const analyzeSystemPrompt = `You are an Overwatch performance analyst. You are given structured data
from a personal match tracker and a question from the player.

Rules:
- Use only the numbers in the data. Do not make up or extrapolate stats.
- Back every claim with the figure it comes from.
- When a bucket is flagged hasEnoughData=false, or the sample is small, say
  the conclusion is tentative.
- Keep it short and practical. Focus on what the player can change: maps to
  queue or avoid, heroes to pick per map, group size, when to stop a session.
- Avoid generic Overwatch advice unless it directly explains a pattern in the data.

Data glossary:
- Winrate: wins / all games, draws count as games. Percent, rounded.
- Tier (S-D): map grade from winrate; 3-4 games caps at A, under 3 games is always C.
- Volatility (0-100): spread of outcomes on a map; 100 is a coin flip.
- Confidence stars (1-5): sample size of a map row.
- confidenceLow/High: 95% Wilson interval on a winrate.
- Hero share / role share: share of playtime from the per-match hero percentages.
- Flexibility (0-100): how evenly playtime spreads across Tank, Damage, Support.
- Swap match: two or more heroes each had at least 20% of the match.
- Session: consecutive matches with no gap over 3 hours.
- Repeat map: the same map again on the same calendar day.`

var analyzeModel string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "AI-powered grounded analysis of your match log (requires ANTHROPIC_API_KEY)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", cfg.Model, "Anthropic model to use ($OWSTATS_MODEL)")
	analyzeCmd.Flags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	addRoleFlag(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	d, err := buildDashboard(cmd.Context(), dashboard.Options{})
	if err != nil {
		return err
	}
	if d.Matches == 0 {
		return fmt.Errorf("no matches logged for %s (after role filter)", cfg.UserID)
	}
	contextJSON, err := buildContext(d)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	log.Debug().Int("bytes", len(contextJSON)).Str("model", analyzeModel).Msg("sending analysis request")
	return streamAnswer(cmd.Context(), os.Stdout, cfg.APIKey, analyzeModel, contextJSON, question)
}

// buildContext serialises the dashboard into compact JSON, dropping the
// bulky per-day and per-cell series the model does not need.
func buildContext(d *dashboard.Dashboard) (string, error) {
	trimmed := *d
	trimmed.Heatmap.Data = nil
	trimmed.Synergy.Matrix = nil
	trimmed.Rolling.Data = nil
	maps := make([]aggregator.MapTimelineEntry, len(d.MapTimeline.Maps))
	for i, m := range d.MapTimeline.Maps {
		m.History = nil
		maps[i] = m
	}
	trimmed.MapTimeline.Maps = maps
	b, err := json.Marshal(struct {
		User      string               `json:"user"`
		Dashboard *dashboard.Dashboard `json:"dashboard"`
	}{cfg.UserID, &trimmed})
	return string(b), err
}

const analyzeMaxTokens = 1024

// streamAnswer sends the dashboard and question to the model and copies the
// answer to w as it arrives.
func streamAnswer(ctx context.Context, w io.Writer, apiKey, modelID, data, question string) error {
	if apiKey == "" {
		return errors.New("ANTHROPIC_API_KEY is not set (or pass --api-key)")
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	prompt := "Match tracker data (JSON):\n" + data + "\n\nPlayer question: " + question

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: analyzeMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: analyzeSystemPrompt}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
	})
	defer stream.Close()

	fmt.Fprintf(w, "\n--- Analysis (%s) ---\n", modelID)
	for stream.Next() {
		ev, ok := stream.Current().AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		if text, ok := ev.Delta.AsAny().(anthropic.TextDelta); ok {
			fmt.Fprint(w, text.Text)
		}
	}
	fmt.Fprintln(w)

	if err := stream.Err(); err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			return errors.New("the Anthropic API rejected the key")
		}
		return fmt.Errorf("analysis stream: %w", err)
	}
	return nil
}
