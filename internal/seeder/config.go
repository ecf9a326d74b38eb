// Package seeder generates synthetic employee records, submits them to a
// running talentgrid service and checks what the service reports back.
package seeder

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig reports a seeder configuration that cannot run.
var ErrInvalidConfig = errors.New("invalid seeder config")

// Config holds the seeding run parameters.
type Config struct {
	BaseURL      string
	Employees    int
	Organization string
	Departments  []string
	Cycle        string
	Workers      int
	Timeout      time.Duration
	Seed         uint64 // same seed, same records (IDs aside)
	TopN         int
	OutputFile   string // optional JSON dump of the generated records
	Settle       time.Duration
}

// Stats summarizes a run.
type Stats struct {
	Generated  int
	Accepted   int
	Duplicates int
	Rejected   int // 429 backpressure
	Invalid    int // 400
	Failed     int // transport errors and other statuses
	Scored     int // total reported by /summary after settling
	Duration   time.Duration
}

func (c *Config) validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	case c.Employees < 1:
		return fmt.Errorf("%w: employees must be positive", ErrInvalidConfig)
	case c.Cycle == "":
		return fmt.Errorf("%w: cycle is required", ErrInvalidConfig)
	case len(c.Departments) == 0:
		return fmt.Errorf("%w: at least one department is required", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.TopN < 1 {
		c.TopN = 10
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
