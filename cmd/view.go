package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/catalog"
	"github.com/pable/owstats/internal/dashboard"
	"github.com/pable/owstats/internal/model"
)

// roleFlag is the Role Filter shared by every analysis command.
var roleFlag string

func addRoleFlag(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().StringVar(&roleFlag, "role", string(model.RoleAll), "restrict to one role: all, Tank, Damage or Support")
	}
}

// parseRole accepts role names case-insensitively.
func parseRole(s string) (model.Role, error) {
	if s == "" || strings.EqualFold(s, string(model.RoleAll)) {
		return model.RoleAll, nil
	}
	for _, r := range model.Roles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role %q (want all, Tank, Damage or Support)", s)
}

// view is the role-filtered match log a command analyses.
type view struct {
	role    model.Role
	all     []model.MatchRecord
	matches []model.MatchRecord
	catalog *catalog.Catalog
}

func loadView(ctx context.Context) (*view, error) {
	role, err := parseRole(roleFlag)
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	db, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	all, err := db.ListMatches(ctx, cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	log.Debug().Str("user", cfg.UserID).Int("matches", len(all)).Str("role", string(role)).Msg("match log loaded")
	return &view{role: role, all: all, matches: aggregator.FilterByRole(all, role), catalog: cat}, nil
}

// buildDashboard loads the view and runs every analyzer over it.
func buildDashboard(ctx context.Context, opts dashboard.Options) (*dashboard.Dashboard, error) {
	v, err := loadView(ctx)
	if err != nil {
		return nil, err
	}
	opts.Role = v.role
	opts.Catalog = v.catalog
	if opts.Now.IsZero() {
		opts.Now = now()
	}
	return dashboard.Build(ctx, v.all, opts)
}
