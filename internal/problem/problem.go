package problem

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TudorHulban/taskscheduler/internal/calendar"
	"github.com/TudorHulban/taskscheduler/internal/domain"
)

type IntervalDef struct {
	Start int64 `yaml:"start" json:"start"`
	End   Bound `yaml:"end"   json:"end"`
}

type ResourceDef struct {
	ID           string        `yaml:"id"           json:"id"`
	Capacity     uint16        `yaml:"capacity"     json:"capacity"`
	Availability []IntervalDef `yaml:"availability" json:"availability"`
}

func (r ResourceDef) ToDomain() (*domain.Resource, error) {
	intervals := make([]calendar.TimeInterval, len(r.Availability))

	for ix, interval := range r.Availability {
		intervals[ix] = calendar.TimeInterval{
			TimeStart: interval.Start,
			TimeEnd:   int64(interval.End),
		}
	}

	return domain.NewResource(
		&domain.ParamsNewResource{
			ID:        r.ID,
			Capacity:  r.Capacity,
			Intervals: intervals,
		},
	)
}

type DemandDef struct {
	Resource     string   `yaml:"resource"               json:"resource"`
	Alternatives []string `yaml:"alternatives,omitempty" json:"alternatives,omitempty"`
	Quantity     uint16   `yaml:"quantity,omitempty"     json:"quantity,omitempty"`
}

type TaskDef struct {
	ID           string      `yaml:"id"                     json:"id"`
	Duration     int64       `yaml:"duration"               json:"duration"`
	Priority     int         `yaml:"priority,omitempty"     json:"priority,omitempty"`
	Delay        int64       `yaml:"delay,omitempty"        json:"delay,omitempty"`
	Predecessors []string    `yaml:"predecessors,omitempty" json:"predecessors,omitempty"`
	Demands      []DemandDef `yaml:"demands,omitempty"      json:"demands,omitempty"`
}

func (t TaskDef) ToDomain() (*domain.Task, error) {
	demands := make([]domain.Demand, len(t.Demands))

	for ix, demand := range t.Demands {
		demands[ix] = domain.Demand{
			ResourceID:   demand.Resource,
			Alternatives: demand.Alternatives,
			Quantity:     demand.Quantity,
		}
	}

	return domain.NewTask(
		&domain.ParamsNewTask{
			ID:               t.ID,
			Duration:         t.Duration,
			Priority:         t.Priority,
			PredecessorDelay: t.Delay,
			Predecessors:     t.Predecessors,
			Demands:          demands,
		},
	)
}

// Problem is the document a solve run reads.
type Problem struct {
	Name      string        `yaml:"name,omitempty" json:"name,omitempty"`
	Resources []ResourceDef `yaml:"resources"      json:"resources"`
	Tasks     []TaskDef     `yaml:"tasks"          json:"tasks"`
}

// Load reads a problem from a JSON or YAML file, picked by extension.
func Load(path string) (*Problem, error) {
	f, errOpen := os.Open(path)
	if errOpen != nil {
		return nil,
			errOpen
	}
	defer f.Close()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	p, errDecode := Decode(f, ext)
	if errDecode != nil {
		return nil,
			fmt.Errorf("%s: %w", path, errDecode)
	}

	return p,
		nil
}

// Decode reads a problem in the given format, "yaml", "yml" or "json".
func Decode(r io.Reader, format string) (*Problem, error) {
	var p Problem

	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)

		if err := dec.Decode(&p); err != nil {
			return nil,
				err
		}

	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()

		if err := dec.Decode(&p); err != nil {
			return nil,
				err
		}

	default:
		return nil,
			fmt.Errorf("unsupported problem format: %s", format)
	}

	return &p,
		nil
}

// Build converts the definitions into validated domain records.
func (p *Problem) Build() ([]*domain.Task, []*domain.Resource, error) {
	resources := make([]*domain.Resource, 0, len(p.Resources))

	for ix, def := range p.Resources {
		resource, errCr := def.ToDomain()
		if errCr != nil {
			return nil, nil,
				fmt.Errorf("resources[%d] %q: %w", ix, def.ID, errCr)
		}

		resources = append(resources, resource)
	}

	tasks := make([]*domain.Task, 0, len(p.Tasks))

	for ix, def := range p.Tasks {
		task, errCr := def.ToDomain()
		if errCr != nil {
			return nil, nil,
				fmt.Errorf("tasks[%d] %q: %w", ix, def.ID, errCr)
		}

		tasks = append(tasks, task)
	}

	return tasks, resources,
		nil
}
