/*
DESCRIPTION
  config.go provides renderer configuration and validation.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package render

import (
	"errors"

	"github.com/ausocean/utils/logging"
)

// Config defaults.
const defaultDisplayScale = 2

// Config errors.
var (
	ErrNoGameRoot = errors.New("game root unset")
	ErrNoLogger   = errors.New("logger unset")
	ErrBadType    = errors.New("unknown animation type")
)

// AnimationTypes is the closed set of animation directory types.
var AnimationTypes = [...]string{
	"npcs",
	"dynamics",
	"equipments",
	"gui",
	"interactives",
	"pets",
	"players",
	"resources",
}

// ValidType reports whether t is a known animation type.
func ValidType(t string) bool {
	for _, v := range AnimationTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Config holds renderer configuration.
type Config struct {
	// GameRoot is the directory holding the animations tree.
	GameRoot string

	// DisplayScale multiplies the per-file scale. Defaults to 2.
	DisplayScale float64

	// Logger is used for renderer logging.
	Logger logging.Logger
}

// Validate checks required fields and applies defaults, logging any
// substitution.
func (c *Config) Validate() error {
	if c.Logger == nil {
		return ErrNoLogger
	}
	if c.GameRoot == "" {
		return ErrNoGameRoot
	}
	if c.DisplayScale <= 0 {
		c.Logger.Info("display scale bad or unset, defaulting", "DisplayScale", defaultDisplayScale)
		c.DisplayScale = defaultDisplayScale
	}
	return nil
}
