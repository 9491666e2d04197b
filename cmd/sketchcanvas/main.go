/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sketchcanvas/internal/config"
	"sketchcanvas/internal/crash"
	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/export"
	applog "sketchcanvas/internal/log"
	"sketchcanvas/internal/raster"
	"sketchcanvas/internal/render"
	"sketchcanvas/internal/session"
	"sketchcanvas/internal/version"
	"sketchcanvas/internal/wire"
)

func usage() {
	fmt.Println("SketchCanvas")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sketchcanvas version|-v|--version                 Show version")
	fmt.Println("  sketchcanvas replay <doc.json> <outDir> [png|jpg] [--source <img>] [--crop]")
	fmt.Println("                                                     Ingest a sketch document and save it as an image")
	fmt.Println("  sketchcanvas export <doc.json> <out.pdf|out.svg>   Export a sketch document as vector graphics")
	fmt.Println("  sketchcanvas schema                                Print the JSON schema of sketch documents")
	fmt.Println("  sketchcanvas config                                Print the effective configuration path and values")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.Logging.Options())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed; using defaults", slog.Any("err", cfgErr))
	}
	defer crash.Recover("")

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		case "replay":
			if len(args) < 4 {
				fmt.Println("replay requires <doc.json> and <outDir>")
				usage()
				os.Exit(2)
			}
			ro, err := parseReplayArgs(cfg.Export, args[4:])
			if err != nil {
				fmt.Println("Error:", err)
				usage()
				os.Exit(2)
			}
			path, err := replay(cfg, args[2], args[3], ro)
			if err != nil {
				l.Error("replay failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Saved sketch to", path)
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires <doc.json> and <out.pdf|out.svg>")
				usage()
				os.Exit(2)
			}
			if err := exportVector(args[2], args[3]); err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Exported", args[3])
			return
		case "schema":
			_, _ = os.Stdout.Write(wire.Schema())
			return
		case "config":
			path, _ := config.ConfigPath()
			fmt.Println("Config file:", path)
			fmt.Printf("Canvas: %+v\n", cfg.Canvas)
			fmt.Printf("Export: %+v\n", cfg.Export)
			fmt.Printf("Logging: %+v\n", cfg.Logging)
			return
		}
	}

	usage()
}

// replayOptions are the trailing arguments of replay.
type replayOptions struct {
	ImageType domain.ImageType
	// Source is an image drawn under the sketch; Crop trims the output to it.
	Source string
	Crop   bool
}

// parseReplayArgs reads [png|jpg] [--source <img>] [--crop] on top of the
// configured export defaults.
func parseReplayArgs(cfg config.ExportConfig, args []string) (replayOptions, error) {
	ro := replayOptions{
		ImageType: domain.ImageType(cfg.ImageType),
		Source:    cfg.SourceImage,
		Crop:      cfg.CropToImageSize,
	}
	for i := 0; i < len(args); i++ {
		switch a := args[i]; a {
		case "--source":
			if i+1 >= len(args) {
				return ro, fmt.Errorf("--source requires an image path")
			}
			i++
			ro.Source = args[i]
		case "--crop":
			ro.Crop = true
		default:
			if strings.HasPrefix(a, "-") {
				return ro, fmt.Errorf("unknown replay flag %q", a)
			}
			ro.ImageType = domain.ImageType(strings.ToLower(a))
		}
	}
	return ro, nil
}

// replay feeds a document through a session bound to a raster canvas and
// waits for the asynchronous save to finish.
func replay(cfg config.AppConfig, docPath, outDir string, ro replayOptions) (string, error) {
	l := applog.WithOperation(applog.WithComponent("cli"), "replay")
	doc, err := wire.DecodeFile(docPath)
	if err != nil {
		return "", err
	}
	opts, err := cfg.Canvas.SessionOptions()
	if err != nil {
		return "", err
	}
	opts.Logger = l
	size := doc.Size
	if size.Width <= 0 || size.Height <= 0 {
		size = export.DefaultSize
	}
	ropts := raster.Options{
		Scaler:      opts.Scaler,
		Dir:         outDir,
		JPEGQuality: cfg.Export.JPEGQuality,
	}
	if ro.Source != "" {
		src, err := raster.LoadSource(ro.Source)
		if err != nil {
			return "", err
		}
		ropts.Source = src
	}
	dev := opts.Scaler.Device(domain.Point{X: size.Width, Y: size.Height})
	ropts.Width, ropts.Height = int(math.Ceil(dev.X)), int(math.Ceil(dev.Y))
	canvas := raster.New(ropts)
	defer canvas.Close()

	commands := 0
	counter := render.SinkFunc(func(render.Command) { commands++ })
	s := session.New(render.Tee(canvas, counter), opts)
	s.SetViewport(size)
	paths, shapes := wire.Load(s, doc)
	for _, t := range doc.Texts {
		canvas.Emit(render.AddText{Text: t})
	}
	l.Info("document ingested", slog.String("doc", docPath), slog.Int("paths", paths), slog.Int("shapes", shapes), slog.Int("commands", commands))

	pref := cfg.Export.SavePreference()
	pref.ImageType = ro.ImageType
	pref.Folder = "" // canvas Dir
	pref.Filename = strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	pref.CropToImageSize = ro.Crop
	if ro.Source != "" {
		pref.IncludeImage = true
	}
	s.Save(&pref)

	select {
	case res := <-canvas.Results():
		for _, ev := range s.HandleExportResult(res) {
			l.Debug("event", slog.String("kind", ev.Kind()))
		}
		if !res.Success {
			return "", fmt.Errorf("save %s failed", ro.ImageType)
		}
		return res.Path, nil
	case <-time.After(30 * time.Second):
		return "", fmt.Errorf("save timed out")
	}
}

func exportVector(docPath, outPath string) error {
	doc, err := wire.DecodeFile(docPath)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".pdf":
		return export.ExportPDF(doc, outPath, export.PDFOptions{Title: name})
	case ".svg":
		return export.ExportSVG(doc, outPath, export.SVGOptions{})
	default:
		return fmt.Errorf("unsupported export format %q", filepath.Ext(outPath))
	}
}
