// Package dashboard computes every analysis for one player in a single pass,
// the way the web dashboard rendered them side by side.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/catalog"
	"github.com/pable/owstats/internal/model"
)

// Options tunes Build. Zero values select the analyzer defaults.
type Options struct {
	Role          model.Role    // Role Filter; "" or "all" disables it
	Mode          model.MapType // restricts the most-played-heroes panel
	Now           time.Time
	Catalog       *catalog.Catalog
	FormWindow    int
	RollingWindow int
	HeatmapWeeks  int
}

// Dashboard bundles every analyzer result.
type Dashboard struct {
	Role        model.Role `json:"role"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Matches     int        `json:"matches"`

	Summary          aggregator.SummaryStats           `json:"summary"`
	MapWinLoss       aggregator.MapWinLossResult       `json:"mapWinLoss"`
	MapDetailed      aggregator.MapDetailedResult      `json:"mapDetailed"`
	MapFamiliarity   aggregator.MapFamiliarityResult   `json:"mapFamiliarity"`
	MapLearningCurve aggregator.LearningCurveResult    `json:"mapLearningCurve"`
	MapTimeline      aggregator.MapTimelineResult      `json:"mapTimeline"`
	RepeatMap        aggregator.RepeatMapResult        `json:"repeatMap"`
	ModeDistribution aggregator.ModeDistributionResult `json:"modeDistribution"`
	ModeWinrates     aggregator.ModeWinratesResult     `json:"modeWinrates"`
	MostPlayed       aggregator.MostPlayedResult       `json:"mostPlayedHeroes"`
	HeroWinrates     aggregator.HeroWinratesResult     `json:"heroWinrates"`
	OneTrick         aggregator.OneTrickResult         `json:"oneTrick"`
	HeroPool         aggregator.HeroPoolResult         `json:"heroPool"`
	HeroSwap         aggregator.HeroSwapResult         `json:"heroSwap"`
	Synergy          aggregator.SynergyResult          `json:"heroMapSynergy"`
	GroupSizes       aggregator.GroupSizeResult        `json:"groupSizes"`
	Roles            aggregator.RoleStatsResult        `json:"roles"`
	Streaks          aggregator.StreakResult           `json:"streaks"`
	RecentForm       aggregator.RecentFormResult       `json:"recentForm"`
	Rolling          aggregator.RollingResult          `json:"rollingWinrate"`
	Heatmap          aggregator.HeatmapResult          `json:"activityHeatmap"`
	DayOfWeek        aggregator.DayOfWeekResult        `json:"dayOfWeek"`
	Sessions         aggregator.SessionsResult         `json:"sessions"`
}

// Build applies the role filter and then runs the analyzers concurrently.
// Each analyzer owns one field of the result, so no locking is needed.
func Build(ctx context.Context, matches []model.MatchRecord, opts Options) (*Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	role := opts.Role
	if role == "" {
		role = model.RoleAll
	}
	if role != model.RoleAll && !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", opts.Role)
	}

	in := aggregator.FilterByRole(matches, role)
	d := &Dashboard{Role: role, GeneratedAt: opts.Now, Matches: len(in)}

	g, gCtx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { d.Summary = aggregator.Summary(in) })
	run(func() { d.MapWinLoss = aggregator.MapWinLoss(in) })
	run(func() { d.MapDetailed = aggregator.MapDetailed(in) })
	run(func() { d.MapFamiliarity = aggregator.MapFamiliarity(in, opts.Catalog) })
	run(func() { d.MapLearningCurve = aggregator.MapLearningCurve(in) })
	run(func() { d.MapTimeline = aggregator.MapTimeline(in, opts.Now) })
	run(func() { d.RepeatMap = aggregator.RepeatMap(in) })
	run(func() { d.ModeDistribution = aggregator.GameModeDistribution(in) })
	run(func() { d.ModeWinrates = aggregator.GameModeWinrates(in) })
	run(func() { d.MostPlayed = aggregator.MostPlayedHeroes(in, opts.Mode) })
	run(func() { d.HeroWinrates = aggregator.HeroWinrates(in) })
	run(func() { d.OneTrick = aggregator.OneTrick(in) })
	run(func() { d.HeroPool = aggregator.HeroPoolDiversity(in) })
	run(func() { d.HeroSwap = aggregator.HeroSwap(in) })
	run(func() { d.Synergy = aggregator.HeroMapSynergy(in) })
	run(func() { d.GroupSizes = aggregator.GroupSizeWinrates(in) })
	run(func() { d.Roles = aggregator.RoleStats(in) })
	run(func() { d.Streaks = aggregator.Streaks(in) })
	run(func() { d.RecentForm = aggregator.RecentForm(in, opts.FormWindow) })
	run(func() { d.Rolling = aggregator.RollingWinrate(in, opts.RollingWindow) })
	run(func() { d.Heatmap = aggregator.ActivityHeatmap(in, opts.HeatmapWeeks, opts.Now) })
	run(func() { d.DayOfWeek = aggregator.DayOfWeek(in) })
	run(func() { d.Sessions = aggregator.Sessions(in) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
