// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"gitlab.com/tozd/go/errors"
)

var reToolName = regexp.MustCompile(`^T(\d+)$`)

// 🎛️ Features toggles each stage of the pipeline
type Features struct {
	HeatSoak            bool // Ask for and inject SOAK_TIME on START_PRINT
	BrimDetection       bool // Infer brim clearance and inject it for adaptive purging
	RemoveDuplicateTool bool // Neutralize repeated tool selection before the first layer
	RemoveSpiralMove    bool // Neutralize the filament swap spiral artifact
	ToolchangeWait      bool // Insert TEMPERATURE_WAIT after toolchange heater commands
	KlipperEstimator    bool // Run the external time estimator
}

// ⏱️ EstimatorConfig configures the external time-estimation tool
type EstimatorConfig struct {
	Path         string        // Executable path, may be a glob pattern
	MoonrakerURL string        // Endpoint handed to the estimator and probed for reachability
	Timeout      time.Duration // Connect timeout of the probe and cap of the wait for it
	PollInterval time.Duration // How often the wait checks whether the probe finished
}

// 🔥 HeatSoakConfig configures the soak time prompt
type HeatSoakConfig struct {
	DefaultMinutes float64 // Prefilled answer of the prompt
}

// 📐 BrimConfig configures brim clearance inference
type BrimConfig struct {
	WarningThreshold float64 // Clearance in mm above which the operator must confirm
	GapSearchLines   int     // Only this many trailing lines are searched for brim_object_gap
	MinPoints        int     // Exterior brim points needed before a clearance is trusted
	Tolerance        float64 // Margin around the object bounds that still counts as inside
	MinClearance     float64 // Floor of the injected value
}

// 🌡️ ToolchangeConfig configures the toolchange temperature wait
type ToolchangeConfig struct {
	MinWaitTemp   float64 // Targets below this get no wait
	WaitTolerance float64 // Half width of the MINIMUM/MAXIMUM window
}

// 🔧 ToolsConfig configures tool-change deduplication
type ToolsConfig struct {
	MaxToolID     int      // Highest tool identifier recognized as a selection
	RemoveInitial []string // Tools whose initial selection is neutralized together with the duplicate
}

// 📚 Config represents the complete configuration. It is read once at startup.
type Config struct {
	Features   Features
	Estimator  EstimatorConfig
	HeatSoak   HeatSoakConfig
	Brim       BrimConfig
	Toolchange ToolchangeConfig
	Tools      ToolsConfig
}

// 🏭 Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Features: Features{
			HeatSoak:            true,
			BrimDetection:       false,
			RemoveDuplicateTool: true,
			RemoveSpiralMove:    true,
			ToolchangeWait:      true,
			KlipperEstimator:    true,
		},
		Estimator: EstimatorConfig{
			Path:         "/Applications/klipper_estimator_osx",
			MoonrakerURL: "http://192.168.1.4:7125",
			Timeout:      3 * time.Second,
			PollInterval: 100 * time.Millisecond,
		},
		HeatSoak: HeatSoakConfig{
			DefaultMinutes: 5,
		},
		Brim: BrimConfig{
			WarningThreshold: 15,
			GapSearchLines:   2000,
			MinPoints:        10,
			Tolerance:        0.1,
			MinClearance:     0.1,
		},
		Toolchange: ToolchangeConfig{
			MinWaitTemp:   200,
			WaitTolerance: 2,
		},
		Tools: ToolsConfig{
			MaxToolID:     5,
			RemoveInitial: []string{"T4"},
		},
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Features.KlipperEstimator {
		if cfg.Estimator.Path == "" {
			return errors.Errorf("estimator.path is required when the estimator is enabled")
		}
		if cfg.Estimator.MoonrakerURL == "" {
			return errors.Errorf("estimator.moonraker_url is required when the estimator is enabled")
		}
	}
	if cfg.Estimator.Timeout <= 0 {
		return errors.Errorf("estimator.timeout must be positive, got %s", cfg.Estimator.Timeout)
	}
	if cfg.Estimator.PollInterval <= 0 {
		return errors.Errorf("estimator.poll_interval must be positive, got %s", cfg.Estimator.PollInterval)
	}
	if !isFinite(cfg.HeatSoak.DefaultMinutes) || cfg.HeatSoak.DefaultMinutes < 0 {
		return errors.Errorf("heat_soak.default_minutes must be a finite non-negative number, got %v", cfg.HeatSoak.DefaultMinutes)
	}
	if !isFinite(cfg.Brim.WarningThreshold) || !isFinite(cfg.Brim.Tolerance) || !isFinite(cfg.Brim.MinClearance) {
		return errors.Errorf("brim thresholds must be finite numbers")
	}
	if !isFinite(cfg.Toolchange.MinWaitTemp) || !isFinite(cfg.Toolchange.WaitTolerance) {
		return errors.Errorf("toolchange temperatures must be finite numbers")
	}
	if cfg.Brim.WarningThreshold < 0 || cfg.Brim.Tolerance < 0 || cfg.Brim.MinClearance < 0 {
		return errors.Errorf("brim thresholds cannot be negative")
	}
	if cfg.Brim.GapSearchLines <= 0 {
		return errors.Errorf("brim.gap_search_lines must be positive")
	}
	if cfg.Brim.MinPoints <= 0 {
		return errors.Errorf("brim.min_points must be positive")
	}
	if cfg.Toolchange.WaitTolerance < 0 {
		return errors.Errorf("toolchange.wait_tolerance cannot be negative")
	}
	if cfg.Tools.MaxToolID < 0 {
		return errors.Errorf("tools.max_tool_id cannot be negative")
	}

	for _, name := range cfg.Tools.RemoveInitial {
		id, err := ParseToolName(name)
		if err != nil {
			return errors.Errorf("tools.remove_initial: %w", err)
		}
		if id > cfg.Tools.MaxToolID {
			return errors.Errorf("tools.remove_initial: %s is above max_tool_id %d", name, cfg.Tools.MaxToolID)
		}
	}

	return nil
}

// ParseToolName parses a tool name such as "T4" into its identifier
func ParseToolName(name string) (int, error) {
	m := reToolName.FindStringSubmatch(name)
	if m == nil {
		return 0, errors.Errorf("invalid tool name %q", name)
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, errors.Errorf("invalid tool name %q: %w", name, err)
	}
	return id, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("features=%+v estimator=%s@%s", cfg.Features, cfg.Estimator.Path, cfg.Estimator.MoonrakerURL)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
