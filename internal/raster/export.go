/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/render"
)

// LoadSource opens a background image for Options.Source.
func LoadSource(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source image: %w", err)
	}
	return img, nil
}

func format(t domain.ImageType) (imaging.Format, string, error) {
	switch domain.ImageType(strings.ToLower(string(t))) {
	case domain.ImagePNG, "":
		return imaging.PNG, "png", nil
	case domain.ImageJPG, "jpeg":
		return imaging.JPEG, "jpg", nil
	}
	return 0, "", fmt.Errorf("unsupported image type %q", t)
}

// Encode composites snap and writes it in the requested format. JPEG has no
// alpha channel, so transparency only applies to PNG. Cropping keeps the
// area of the source image and is a no-op without one.
func (c *Canvas) Encode(w io.Writer, snap Snapshot, req render.ImageRequest) error {
	f, _, err := format(req.ImageType)
	if err != nil {
		return err
	}
	img := Render(snap, Layers{
		Background:  c.opts.Background,
		Transparent: req.Transparent && f == imaging.PNG,
		Source:      c.opts.Source,
		Image:       req.IncludeImage,
		Text:        req.IncludeText,
		Scaler:      c.opts.Scaler,
	})
	var out image.Image = img
	if req.CropToImageSize && c.opts.Source != nil {
		out = imaging.Crop(img, c.opts.Source.Bounds())
	}
	if err := imaging.Encode(w, out, f, imaging.JPEGQuality(c.opts.JPEGQuality)); err != nil {
		return fmt.Errorf("encode %s: %w", req.ImageType, err)
	}
	return nil
}

func imageRequest(p domain.SavePreference) render.ImageRequest {
	return render.ImageRequest{
		ImageType:       p.ImageType,
		Transparent:     p.Transparent,
		IncludeImage:    p.IncludeImage,
		IncludeText:     p.IncludeText,
		CropToImageSize: p.CropToImageSize,
	}
}

// SavePath is where a save with pref is written.
func (c *Canvas) SavePath(pref domain.SavePreference) (string, error) {
	_, ext, err := format(pref.ImageType)
	if err != nil {
		return "", err
	}
	dir := pref.Folder
	if dir == "" {
		dir = c.opts.Dir
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.opts.Dir, dir)
	}
	return filepath.Join(dir, pref.Filename+"."+ext), nil
}

func (c *Canvas) startSave(pref domain.SavePreference, snap Snapshot) {
	c.exports.Add(1)
	go func() {
		defer c.exports.Done()
		path, err := c.save(pref, snap)
		res := domain.ExportResult{Success: err == nil, Path: path}
		if err != nil {
			c.log.Error("save failed", slog.String("path", path), slog.String("err", err.Error()))
		} else {
			c.log.Info("saved", slog.String("path", path))
		}
		select {
		case c.results <- res:
		default:
			c.log.Warn("export result dropped", slog.String("path", path))
		}
	}()
}

func (c *Canvas) save(pref domain.SavePreference, snap Snapshot) (string, error) {
	path, err := c.SavePath(pref)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("create image: %w", err)
	}
	if err := c.Encode(f, snap, imageRequest(pref)); err != nil {
		_ = f.Close()
		return path, err
	}
	return path, f.Close()
}

func (c *Canvas) startBase64(cmd render.TransferToBase64, snap Snapshot) {
	c.exports.Add(1)
	go func() {
		defer c.exports.Done()
		var buf bytes.Buffer
		err := c.Encode(&buf, snap, cmd.Request)
		if cmd.Done == nil {
			return
		}
		if err != nil {
			cmd.Done("", err)
			return
		}
		cmd.Done(base64.StdEncoding.EncodeToString(buf.Bytes()), nil)
	}()
}
