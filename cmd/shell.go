package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/catalog"
	"github.com/pable/owstats/internal/dashboard"
	"github.com/pable/owstats/internal/model"
	"github.com/pable/owstats/internal/report"
	"github.com/pable/owstats/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellSession keeps the store open and remembers the active role filter.
type shellSession struct {
	db   storage.Store
	cat  *catalog.Catalog
	role model.Role
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	s := &shellSession{db: db, cat: cat, role: model.RoleAll}

	cGreeting.Println("owstats shell")
	cMuted.Printf("user %s, type 'help' or 'exit'\n", cfg.UserID)
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("owstats")
		if s.role != model.RoleAll {
			cMuted.Printf("[%s]", s.role)
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "role":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: role <all|Tank|Damage|Support>")
				continue
			}
			r, err := parseRole(args[0])
			if err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			s.role = r
		case "user":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: user <id>")
				continue
			}
			cfg.UserID = args[0]
		case "list", "summary", "maps", "heroes", "roles", "modes", "trend",
			"sessions", "synergy", "timeline", "activity", "dashboard":
			if err := s.show(ctx, name); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func (s *shellSession) show(ctx context.Context, name string) error {
	all, err := s.db.ListMatches(ctx, cfg.UserID)
	if err != nil {
		return err
	}
	d, err := dashboard.Build(ctx, all, dashboard.Options{Role: s.role, Catalog: s.cat, Now: now()})
	if err != nil {
		return err
	}
	if d.Matches == 0 {
		cMuted.Println("No matches logged yet.")
		return nil
	}

	w := os.Stdout
	switch name {
	case "list":
		report.PrintMatchList(w, all)
	case "summary":
		report.PrintSummary(w, d.Summary, d.Role)
		report.PrintMapWinLoss(w, d.MapWinLoss)
	case "maps":
		report.PrintMapTable(w, d.MapDetailed)
		report.PrintFamiliarity(w, d.MapFamiliarity)
		report.PrintLearningCurve(w, d.MapLearningCurve)
	case "heroes":
		report.PrintHeroes(w, d.MostPlayed, d.HeroWinrates, d.OneTrick, d.HeroPool, d.HeroSwap)
	case "roles":
		report.PrintRoles(w, d.Roles, d.GroupSizes)
	case "modes":
		report.PrintModes(w, d.ModeDistribution, d.ModeWinrates)
	case "trend":
		report.PrintTrend(w, d.Streaks, d.RecentForm, d.Rolling)
	case "sessions":
		report.PrintSessions(w, d.Sessions)
	case "synergy":
		report.PrintSynergy(w, d.Synergy)
	case "timeline":
		report.PrintTimeline(w, d.MapTimeline)
	case "activity":
		report.PrintHeatmap(w, d.Heatmap)
		report.PrintDayOfWeek(w, d.DayOfWeek)
	case "dashboard":
		printDashboard(d)
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"summary", "overall record and streak"},
		{"maps", "map tiers, familiarity, learning curve"},
		{"heroes", "hero usage, winrates and swaps"},
		{"roles", "role share, flexibility, group size"},
		{"modes", "game mode share and winrates"},
		{"trend", "streaks, recent form, rolling winrate"},
		{"sessions", "per-session winrates"},
		{"synergy", "best hero per map"},
		{"timeline", "per-map history and rotation"},
		{"activity", "heatmap and day of week"},
		{"dashboard", "everything above"},
		{"list", "logged matches"},
		{"role <all|Tank|Damage|Support>", "set the role filter"},
		{"user <id>", "switch user"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-34s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}
