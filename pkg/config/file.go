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
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🗂️ File is the on-disk configuration schema shared by every parser.
// Unset fields are nil and leave the defaults untouched.
type File struct {
	Features   *FileFeatures   `json:"features,omitempty" yaml:"features,omitempty" hcl:"features,block"`
	Estimator  *FileEstimator  `json:"estimator,omitempty" yaml:"estimator,omitempty" hcl:"estimator,block"`
	HeatSoak   *FileHeatSoak   `json:"heat_soak,omitempty" yaml:"heat_soak,omitempty" hcl:"heat_soak,block"`
	Brim       *FileBrim       `json:"brim,omitempty" yaml:"brim,omitempty" hcl:"brim,block"`
	Toolchange *FileToolchange `json:"toolchange,omitempty" yaml:"toolchange,omitempty" hcl:"toolchange,block"`
	Tools      *FileTools      `json:"tools,omitempty" yaml:"tools,omitempty" hcl:"tools,block"`
}

type FileFeatures struct {
	HeatSoak            *bool `json:"heat_soak,omitempty" yaml:"heat_soak,omitempty" hcl:"heat_soak,optional"`
	BrimDetection       *bool `json:"brim_detection,omitempty" yaml:"brim_detection,omitempty" hcl:"brim_detection,optional"`
	RemoveDuplicateTool *bool `json:"remove_duplicate_tool,omitempty" yaml:"remove_duplicate_tool,omitempty" hcl:"remove_duplicate_tool,optional"`
	RemoveSpiralMove    *bool `json:"remove_spiral_move,omitempty" yaml:"remove_spiral_move,omitempty" hcl:"remove_spiral_move,optional"`
	ToolchangeWait      *bool `json:"toolchange_wait,omitempty" yaml:"toolchange_wait,omitempty" hcl:"toolchange_wait,optional"`
	KlipperEstimator    *bool `json:"klipper_estimator,omitempty" yaml:"klipper_estimator,omitempty" hcl:"klipper_estimator,optional"`
}

type FileEstimator struct {
	Path         *string `json:"path,omitempty" yaml:"path,omitempty" hcl:"path,optional"`
	MoonrakerURL *string `json:"moonraker_url,omitempty" yaml:"moonraker_url,omitempty" hcl:"moonraker_url,optional"`
	Timeout      *string `json:"timeout,omitempty" yaml:"timeout,omitempty" hcl:"timeout,optional"`
	PollInterval *string `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty" hcl:"poll_interval,optional"`
}

type FileHeatSoak struct {
	DefaultMinutes *float64 `json:"default_minutes,omitempty" yaml:"default_minutes,omitempty" hcl:"default_minutes,optional"`
}

type FileBrim struct {
	WarningThreshold *float64 `json:"warning_threshold_mm,omitempty" yaml:"warning_threshold_mm,omitempty" hcl:"warning_threshold_mm,optional"`
	GapSearchLines   *int     `json:"gap_search_lines,omitempty" yaml:"gap_search_lines,omitempty" hcl:"gap_search_lines,optional"`
	MinPoints        *int     `json:"min_points,omitempty" yaml:"min_points,omitempty" hcl:"min_points,optional"`
	Tolerance        *float64 `json:"tolerance_mm,omitempty" yaml:"tolerance_mm,omitempty" hcl:"tolerance_mm,optional"`
	MinClearance     *float64 `json:"min_clearance_mm,omitempty" yaml:"min_clearance_mm,omitempty" hcl:"min_clearance_mm,optional"`
}

type FileToolchange struct {
	MinWaitTemp   *float64 `json:"min_wait_temp,omitempty" yaml:"min_wait_temp,omitempty" hcl:"min_wait_temp,optional"`
	WaitTolerance *float64 `json:"wait_tolerance,omitempty" yaml:"wait_tolerance,omitempty" hcl:"wait_tolerance,optional"`
}

type FileTools struct {
	MaxToolID     *int     `json:"max_tool_id,omitempty" yaml:"max_tool_id,omitempty" hcl:"max_tool_id,optional"`
	RemoveInitial []string `json:"remove_initial,omitempty" yaml:"remove_initial,omitempty" hcl:"remove_initial,optional"`
}

// 🔀 Apply overlays every set field onto cfg
func (f *File) Apply(cfg *Config) error {
	if f == nil {
		return nil
	}

	if ft := f.Features; ft != nil {
		setBool(&cfg.Features.HeatSoak, ft.HeatSoak)
		setBool(&cfg.Features.BrimDetection, ft.BrimDetection)
		setBool(&cfg.Features.RemoveDuplicateTool, ft.RemoveDuplicateTool)
		setBool(&cfg.Features.RemoveSpiralMove, ft.RemoveSpiralMove)
		setBool(&cfg.Features.ToolchangeWait, ft.ToolchangeWait)
		setBool(&cfg.Features.KlipperEstimator, ft.KlipperEstimator)
	}

	if e := f.Estimator; e != nil {
		if e.Path != nil {
			cfg.Estimator.Path = *e.Path
		}
		if e.MoonrakerURL != nil {
			cfg.Estimator.MoonrakerURL = *e.MoonrakerURL
		}
		if err := setDuration(&cfg.Estimator.Timeout, e.Timeout); err != nil {
			return errors.Errorf("estimator.timeout: %w", err)
		}
		if err := setDuration(&cfg.Estimator.PollInterval, e.PollInterval); err != nil {
			return errors.Errorf("estimator.poll_interval: %w", err)
		}
	}

	if h := f.HeatSoak; h != nil {
		setFloat(&cfg.HeatSoak.DefaultMinutes, h.DefaultMinutes)
	}

	if b := f.Brim; b != nil {
		setFloat(&cfg.Brim.WarningThreshold, b.WarningThreshold)
		setInt(&cfg.Brim.GapSearchLines, b.GapSearchLines)
		setInt(&cfg.Brim.MinPoints, b.MinPoints)
		setFloat(&cfg.Brim.Tolerance, b.Tolerance)
		setFloat(&cfg.Brim.MinClearance, b.MinClearance)
	}

	if tc := f.Toolchange; tc != nil {
		setFloat(&cfg.Toolchange.MinWaitTemp, tc.MinWaitTemp)
		setFloat(&cfg.Toolchange.WaitTolerance, tc.WaitTolerance)
	}

	if t := f.Tools; t != nil {
		setInt(&cfg.Tools.MaxToolID, t.MaxToolID)
		if t.RemoveInitial != nil {
			cfg.Tools.RemoveInitial = append([]string(nil), t.RemoveInitial...)
		}
	}

	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return errors.Errorf("parsing duration %q: %w", *v, err)
	}
	*dst = d
	return nil
}
