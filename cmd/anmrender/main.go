/*
DESCRIPTION
  anmrender renders ANM sprite animations to PNG stills or VP9/WebM video.
  It can also watch an animation file and re-render it on change.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is an ANM render client.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ausocean/utils/logging"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/ausocean/anm/render"
	"github.com/ausocean/anm/video"
)

// Current software version.
const version = "v1.0.0"

// Logging configuration.
const (
	logPath      = "anmrender.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = true
)

// To indicate package when logging.
const pkg = "anmrender: "

// fileConfig is the optional YAML configuration, overridden by flags.
type fileConfig struct {
	GameRoot     string  `yaml:"gameRoot"`
	DisplayScale float64 `yaml:"displayScale"`
	FFmpeg       string  `yaml:"ffmpeg"`
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version")
		cfgPath     = flag.String("config", "", "optional YAML config file")
		root        = flag.String("root", "", "game root directory holding the animations tree")
		typ         = flag.String("type", "", "animation type: "+strings.Join(render.AnimationTypes[:], "|"))
		id          = flag.String("id", "", "animation identifier")
		frame       = flag.Int("frame", 0, "frame to render for still output")
		videoOut    = flag.Bool("video", false, "render all frames to VP9/WebM video")
		out         = flag.String("out", "", "output file (defaults to <id>.png or <id>.webm)")
		scale       = flag.Float64("scale", 0, "display scale (defaults to 2)")
		ffmpeg      = flag.String("ffmpeg", "", "ffmpeg binary (defaults to ffmpeg on the path)")
		watch       = flag.Bool("watch", false, "re-render whenever the animation file changes")
		verbosity   = flag.Int("verbosity", int(logging.Info), "logging verbosity")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*verbosity), io.MultiWriter(fileLog, os.Stderr), logSuppress)

	cfg := render.Config{Logger: log}
	enc := video.NewEncoder(log)

	if *cfgPath != "" {
		var fc fileConfig
		b, err := os.ReadFile(*cfgPath)
		if err != nil {
			log.Fatal(pkg+"could not read config file", "error", err)
		}
		if err := yaml.Unmarshal(b, &fc); err != nil {
			log.Fatal(pkg+"could not parse config file", "error", err)
		}
		cfg.GameRoot = fc.GameRoot
		cfg.DisplayScale = fc.DisplayScale
		if fc.FFmpeg != "" {
			enc.Binary = fc.FFmpeg
		}
	}

	// Flags override file configuration.
	if *root != "" {
		cfg.GameRoot = *root
	}
	if *scale != 0 {
		cfg.DisplayScale = *scale
	}
	if *ffmpeg != "" {
		enc.Binary = *ffmpeg
	}

	if *typ == "" || *id == "" {
		log.Fatal(pkg + "both -type and -id are required")
	}

	outPath := *out
	if outPath == "" {
		if *videoOut {
			outPath = *id + ".webm"
		} else {
			outPath = *id + ".png"
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := renderOnce(ctx, cfg, enc, *typ, *id, *frame, *videoOut, outPath, log); err != nil {
		log.Fatal(pkg+"render failed", "error", err)
	}

	if *watch {
		watchAndRender(ctx, cfg, enc, *typ, *id, *frame, *videoOut, outPath, log)
	}
}

// renderOnce loads the animation, finds its static sprite and writes one
// still or one video.
func renderOnce(ctx context.Context, cfg render.Config, enc *video.Encoder, typ, id string, frame int, videoOut bool, outPath string, log logging.Logger) error {
	r, err := render.Load(cfg, typ, id)
	if err != nil {
		return fmt.Errorf("could not load animation: %w", err)
	}

	sprite, owner, err := r.FindStaticSprite()
	if err != nil {
		return fmt.Errorf("could not find static sprite: %w", err)
	}
	log.Info(pkg+"found static sprite", "name", sprite.Name, "frames", owner.FrameCount(sprite))

	var b []byte
	if videoOut {
		b, err = owner.RenderVideo(ctx, sprite, enc)
	} else {
		b, err = owner.RenderFrame(sprite, frame, true)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, b, 0644); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	log.Info(pkg+"wrote output", "path", outPath, "bytes", len(b))
	return nil
}

// watchAndRender re-renders the animation whenever its file is written.
func watchAndRender(ctx context.Context, cfg render.Config, enc *video.Encoder, typ, id string, frame int, videoOut bool, outPath string, log logging.Logger) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal(pkg+"could not create watcher", "error", err)
	}
	defer w.Close()

	path := filepath.Join(cfg.GameRoot, "animations", typ, id+".anm")
	if err := w.Add(path); err != nil {
		log.Fatal(pkg+"could not watch animation file", "error", err, "path", path)
	}
	log.Info(pkg+"watching", "path", path)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Info(pkg+"animation changed, re-rendering", "path", ev.Name)
			if err := renderOnce(ctx, cfg, enc, typ, id, frame, videoOut, outPath, log); err != nil {
				log.Error(pkg+"re-render failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Error(pkg+"watcher error", "error", err)
		}
	}
}
