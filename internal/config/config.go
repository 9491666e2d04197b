/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sketchcanvas/internal/coords"
	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/idgen"
	applog "sketchcanvas/internal/log"
	"sketchcanvas/internal/session"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on load.

type CanvasConfig struct {
	DrawMode     string  `yaml:"draw_mode"` // draw|line|rectangle|circle|arrow|none
	ShapeFilled  bool    `yaml:"shape_filled"`
	StrokeColor  string  `yaml:"stroke_color"`
	StrokeWidth  float64 `yaml:"stroke_width"`
	TouchEnabled bool    `yaml:"touch_enabled"`
	User         string  `yaml:"user"`
	Platform     string  `yaml:"platform"` // ios|android
	PixelDensity float64 `yaml:"pixel_density"`
	IDStrategy   string  `yaml:"id_strategy"` // uuid|random|counter
}

type ExportConfig struct {
	ImageType       string `yaml:"image_type"`
	Folder          string `yaml:"folder"`
	Transparent     bool   `yaml:"transparent"`
	IncludeImage    bool   `yaml:"include_image"`
	IncludeText     bool   `yaml:"include_text"`
	CropToImageSize bool   `yaml:"crop_to_image_size"`
	JPEGQuality     int    `yaml:"jpeg_quality"`
	// SourceImage is drawn under the sketch when include_image is set.
	SourceImage     string `yaml:"source_image"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Canvas: CanvasConfig{
			DrawMode:     "draw",
			StrokeColor:  session.DefaultStrokeColor,
			StrokeWidth:  session.DefaultStrokeWidth,
			TouchEnabled: true,
			Platform:     string(coords.PlatformIOS),
			PixelDensity: 1,
		},
		Export:  ExportConfig{ImageType: "png", IncludeImage: true, IncludeText: true, JPEGQuality: 90},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvDrawMode     = "SKC_DRAW_MODE"
	EnvShapeFilled  = "SKC_SHAPE_FILLED"
	EnvStrokeColor  = "SKC_STROKE_COLOR"
	EnvStrokeWidth  = "SKC_STROKE_WIDTH"
	EnvTouchEnabled = "SKC_TOUCH_ENABLED"
	EnvUser         = "SKC_USER"
	EnvPlatform     = "SKC_PLATFORM"
	EnvPixelDensity = "SKC_PIXEL_DENSITY"
	EnvIDStrategy   = "SKC_ID_STRATEGY"
	EnvExportType   = "SKC_EXPORT_IMAGE_TYPE"
	EnvExportFolder = "SKC_EXPORT_FOLDER"
	EnvExportTransp = "SKC_EXPORT_TRANSPARENT"
	EnvExportSource = "SKC_EXPORT_SOURCE_IMAGE"
	// Logging envs are shared with the logger.
	EnvLogLevel  = applog.EnvLevel
	EnvLogFormat = applog.EnvFormat
	EnvLogSource = applog.EnvSource
	EnvLogFile   = applog.EnvFile
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "SketchCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "SketchCanvas")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "sketchcanvas")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "sketchcanvas")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present) over the defaults and merges
// environment overrides. A malformed file is reported but defaults and env
// overrides are still returned.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	var fileErr error
	if data, err := os.ReadFile(path); err == nil {
		fileErr = decodeInto(&cfg, data)
	}
	applyEnvOverrides(&cfg)
	return cfg, fileErr
}

// LoadFile is Load for an explicit path; a missing file is an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decodeInto(&cfg, data); err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// decodeInto unmarshals on top of cfg so absent keys keep their defaults.
func decodeInto(cfg *AppConfig, data []byte) error {
	file := *cfg
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	normalize(&file)
	*cfg = file
	return nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func normalize(cfg *AppConfig) {
	cfg.Canvas.DrawMode = strings.ToLower(strings.TrimSpace(cfg.Canvas.DrawMode))
	cfg.Canvas.Platform = strings.ToLower(strings.TrimSpace(cfg.Canvas.Platform))
	cfg.Canvas.IDStrategy = strings.ToLower(strings.TrimSpace(cfg.Canvas.IDStrategy))
	cfg.Export.SourceImage = strings.TrimSpace(cfg.Export.SourceImage)
	cfg.Export.ImageType = strings.ToLower(strings.TrimSpace(cfg.Export.ImageType))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.File = strings.TrimSpace(cfg.Logging.File)
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	flag := func(key string, dst *bool) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = truthy(v)
		}
	}
	num := func(key string, dst *float64) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}
	str(EnvDrawMode, &cfg.Canvas.DrawMode)
	flag(EnvShapeFilled, &cfg.Canvas.ShapeFilled)
	str(EnvStrokeColor, &cfg.Canvas.StrokeColor)
	num(EnvStrokeWidth, &cfg.Canvas.StrokeWidth)
	flag(EnvTouchEnabled, &cfg.Canvas.TouchEnabled)
	str(EnvUser, &cfg.Canvas.User)
	str(EnvPlatform, &cfg.Canvas.Platform)
	num(EnvPixelDensity, &cfg.Canvas.PixelDensity)
	str(EnvIDStrategy, &cfg.Canvas.IDStrategy)
	str(EnvExportType, &cfg.Export.ImageType)
	str(EnvExportFolder, &cfg.Export.Folder)
	flag(EnvExportTransp, &cfg.Export.Transparent)
	str(EnvExportSource, &cfg.Export.SourceImage)
	str(EnvLogLevel, &cfg.Logging.Level)
	str(EnvLogFormat, &cfg.Logging.Format)
	flag(EnvLogSource, &cfg.Logging.Source)
	str(EnvLogFile, &cfg.Logging.File)
	normalize(cfg)
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"canvas.draw_mode":     EnvDrawMode,
		"canvas.shape_filled":  EnvShapeFilled,
		"canvas.stroke_color":  EnvStrokeColor,
		"canvas.stroke_width":  EnvStrokeWidth,
		"canvas.touch_enabled": EnvTouchEnabled,
		"canvas.user":          EnvUser,
		"canvas.platform":      EnvPlatform,
		"canvas.pixel_density": EnvPixelDensity,
		"canvas.id_strategy":   EnvIDStrategy,
		"export.image_type":    EnvExportType,
		"export.folder":        EnvExportFolder,
		"export.transparent":   EnvExportTransp,
		"export.source_image":  EnvExportSource,
		"logging.level":        EnvLogLevel,
		"logging.format":       EnvLogFormat,
		"logging.source":       EnvLogSource,
		"logging.file":         EnvLogFile,
	}
	env, ok := names[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// Scaler derives the coordinate scaler from platform and density. An
// unknown platform falls back to scale 1.
func (c CanvasConfig) Scaler() coords.Scaler {
	p, err := coords.ParsePlatform(c.Platform)
	if err != nil {
		return coords.Identity
	}
	return coords.ForPlatform(p, c.PixelDensity)
}

// SessionOptions converts the canvas section into session options.
func (c CanvasConfig) SessionOptions() (session.Options, error) {
	opts := session.DefaultOptions()
	mode, err := domain.ParseDrawMode(c.DrawMode)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	opts.Filled = c.ShapeFilled
	if c.StrokeColor != "" {
		if _, err := domain.ParseColor(c.StrokeColor); err != nil {
			return opts, fmt.Errorf("stroke color: %w", err)
		}
		opts.StrokeColor = c.StrokeColor
	}
	if c.StrokeWidth > 0 {
		opts.StrokeWidth = c.StrokeWidth
	}
	opts.TouchEnabled = c.TouchEnabled
	opts.User = c.User
	opts.Scaler = c.Scaler()
	ids, err := idgen.ByName(c.IDStrategy)
	if err != nil {
		return opts, err
	}
	opts.IDs = ids
	return opts, nil
}

// SavePreference converts the export section. Filename is left empty so the
// session picks a fresh one.
func (e ExportConfig) SavePreference() domain.SavePreference {
	return domain.SavePreference{
		ImageType:       domain.ImageType(e.ImageType),
		Folder:          e.Folder,
		Transparent:     e.Transparent,
		IncludeImage:    e.IncludeImage,
		IncludeText:     e.IncludeText,
		CropToImageSize: e.CropToImageSize,
	}
}

// Options converts the logging section for log.Init.
func (l LoggingConfig) Options() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}
