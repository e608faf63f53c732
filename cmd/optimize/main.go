package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sullivanja92/dfs-lineup-optimizer/internal/config"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/constraints"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/dataset"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/logger"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/optimizer"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.Development)
	log.WithFields(logrus.Fields{
		"site":        cfg.Site,
		"projections": cfg.ProjectionsPath,
	}).Info("Starting lineup optimization")

	site, ok := optimizer.SiteByName(cfg.Site)
	if !ok {
		log.Fatalf("Unknown site %q", cfg.Site)
	}

	table, err := dataset.LoadCSV(cfg.ProjectionsPath)
	if err != nil {
		log.Fatalf("Failed to load projections: %v", err)
	}

	opt, err := optimizer.New(site, table, cfg.Columns, logger.WithSite(log, site.Name()))
	if err != nil {
		log.Fatalf("Failed to build optimizer: %v", err)
	}
	if err := applyConstraints(opt, cfg.Constraints); err != nil {
		log.Fatalf("Failed to apply constraints: %v", err)
	}

	lineup, err := opt.Optimize()
	if err != nil {
		log.Fatalf("Optimization failed: %v", err)
	}
	fmt.Print(lineup)

	if cfg.OutputPath != "" {
		if err := dataset.AppendCSV(cfg.OutputPath, optimizer.RecordColumns(), lineup.Records()); err != nil {
			log.Fatalf("Failed to write lineup: %v", err)
		}
		log.WithField("path", cfg.OutputPath).Info("Lineup written")
	}
	os.Exit(0)
}

func applyConstraints(opt *optimizer.Optimizer, c config.Constraints) error {
	if len(c.OnlyTeams) > 0 {
		if err := opt.SetOnlyTeams(c.OnlyTeams); err != nil {
			return err
		}
	}
	if len(c.ExcludeTeams) > 0 {
		if err := opt.SetExcludeTeams(c.ExcludeTeams); err != nil {
			return err
		}
	}
	for _, name := range c.IncludePlayers {
		if err := opt.SetMustIncludePlayerName(name); err != nil {
			return err
		}
	}
	for _, name := range c.ExcludePlayers {
		if err := opt.SetExcludePlayerName(name); err != nil {
			return err
		}
	}
	for _, tb := range c.TeamBounds {
		switch {
		case tb.Min != nil && tb.Max != nil && *tb.Min == *tb.Max:
			if err := opt.SetNumPlayersFromTeam(*tb.Min, tb.Team); err != nil {
				return err
			}
		default:
			if tb.Min != nil {
				if err := opt.SetMinPlayersFromTeam(*tb.Min, tb.Team); err != nil {
					return err
				}
			}
			if tb.Max != nil {
				if err := opt.SetMaxPlayersFromTeam(*tb.Max, tb.Team); err != nil {
					return err
				}
			}
		}
	}
	if c.MaxSalary > 0 {
		if err := opt.SetMaxSalary(c.MaxSalary); err != nil {
			return err
		}
	}
	if c.MinSalary > 0 {
		if err := opt.SetMinSalary(c.MinSalary); err != nil {
			return err
		}
	}
	if c.GameSlate != "" {
		if err := opt.SetGameSlate(constraints.Slate(c.GameSlate)); err != nil {
			return err
		}
	}
	return nil
}
