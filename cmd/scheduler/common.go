package main

import (
	"fmt"

	"github.com/TudorHulban/taskscheduler/internal/config"
	"github.com/TudorHulban/taskscheduler/internal/domain"
	"github.com/TudorHulban/taskscheduler/internal/problem"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel

		if err := cfg.Logging.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func loadProblem(path string) ([]*domain.Task, []*domain.Resource, error) {
	p, err := problem.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load problem: %w", err)
	}

	return p.Build()
}
