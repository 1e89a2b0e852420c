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
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix prefixes every environment override, e.g. GCODEPOST_ESTIMATOR_PATH
const EnvPrefix = "GCODEPOST"

// 🎚️ override binds one configuration key to its environment variable and CLI flag
type override struct {
	key   string
	flag  string
	apply func(v *viper.Viper, key string, cfg *Config)
}

var overrides = []override{
	{key: "features.heat_soak", flag: "heat-soak", apply: func(v *viper.Viper, k string, c *Config) { c.Features.HeatSoak = v.GetBool(k) }},
	{key: "features.brim_detection", flag: "brim-detection", apply: func(v *viper.Viper, k string, c *Config) { c.Features.BrimDetection = v.GetBool(k) }},
	{key: "features.remove_duplicate_tool", flag: "remove-duplicate-tool", apply: func(v *viper.Viper, k string, c *Config) { c.Features.RemoveDuplicateTool = v.GetBool(k) }},
	{key: "features.remove_spiral_move", flag: "remove-spiral-move", apply: func(v *viper.Viper, k string, c *Config) { c.Features.RemoveSpiralMove = v.GetBool(k) }},
	{key: "features.toolchange_wait", flag: "toolchange-wait", apply: func(v *viper.Viper, k string, c *Config) { c.Features.ToolchangeWait = v.GetBool(k) }},
	{key: "features.klipper_estimator", flag: "klipper-estimator", apply: func(v *viper.Viper, k string, c *Config) { c.Features.KlipperEstimator = v.GetBool(k) }},
	{key: "estimator.path", flag: "estimator-path", apply: func(v *viper.Viper, k string, c *Config) { c.Estimator.Path = v.GetString(k) }},
	{key: "estimator.moonraker_url", flag: "moonraker-url", apply: func(v *viper.Viper, k string, c *Config) { c.Estimator.MoonrakerURL = v.GetString(k) }},
	{key: "estimator.timeout", flag: "moonraker-timeout", apply: func(v *viper.Viper, k string, c *Config) { c.Estimator.Timeout = v.GetDuration(k) }},
	{key: "heat_soak.default_minutes", flag: "soak-default", apply: func(v *viper.Viper, k string, c *Config) { c.HeatSoak.DefaultMinutes = v.GetFloat64(k) }},
	{key: "brim.warning_threshold_mm", flag: "brim-warning", apply: func(v *viper.Viper, k string, c *Config) { c.Brim.WarningThreshold = v.GetFloat64(k) }},
	{key: "toolchange.min_wait_temp", flag: "min-wait-temp", apply: func(v *viper.Viper, k string, c *Config) { c.Toolchange.MinWaitTemp = v.GetFloat64(k) }},
	{key: "tools.remove_initial", flag: "", apply: func(v *viper.Viper, k string, c *Config) { c.Tools.RemoveInitial = v.GetStringSlice(k) }},
}

// 🎯 Load builds the configuration: defaults, then the optional config file, then
// environment variables, then explicitly set flags
func Load(ctx context.Context, path string, flags *pflag.FlagSet) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	cfg := Default()

	if path != "" {
		logger.Debug().Str("path", path).Msg("loading configuration file")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Errorf("reading config file: %w", err)
		}

		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}

		f, err := p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}

		if err := f.Apply(cfg); err != nil {
			return nil, errors.Errorf("applying config: %w", err)
		}
	}

	if err := applyOverrides(cfg, flags); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return cfg, nil
}

func applyOverrides(cfg *Config, flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, o := range overrides {
		if flags == nil || o.flag == "" {
			continue
		}
		if f := flags.Lookup(o.flag); f != nil {
			if err := v.BindPFlag(o.key, f); err != nil {
				return errors.Errorf("binding flag %s: %w", o.flag, err)
			}
		}
	}

	for _, o := range overrides {
		if v.IsSet(o.key) {
			o.apply(v, o.key, cfg)
		}
	}
	return nil
}
