/*
DESCRIPTION
  webm.go provides a wrapper around an external ffmpeg binary that
  assembles a directory of PNG frames into alpha-preserving VP9/WebM.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package video wraps the external video encoder used to assemble rendered
// frames into VP9/WebM files.
package video

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/ausocean/utils/logging"
)

// To indicate package when logging.
const pkg = "video: "

// Encoder defaults.
const (
	defaultBinary = "ffmpeg"
	framePattern  = "img_%04d.png"
	outName       = "out.webm"
)

// EncoderFailureError is returned when the external encoder exits
// non-zero.
type EncoderFailureError struct {
	Detail string
}

func (e EncoderFailureError) Error() string {
	return "video encoder failed: " + e.Detail
}

// Encoder invokes an ffmpeg binary to encode staged PNG frames.
type Encoder struct {
	// Binary is the encoder executable. Defaults to ffmpeg on the path.
	Binary string

	log logging.Logger
}

// NewEncoder returns an Encoder logging to l.
func NewEncoder(l logging.Logger) *Encoder {
	return &Encoder{Binary: defaultBinary, log: l}
}

// args builds the encoder invocation for a staging directory and frame
// rate. The pixel format keeps the alpha channel.
func args(dir string, frameRate uint8, out string) []string {
	return []string{
		"-y",
		"-framerate", strconv.Itoa(int(frameRate)),
		"-i", filepath.Join(dir, framePattern),
		"-c:v", "libvpx-vp9",
		"-pix_fmt", "yuva420p",
		out,
	}
}

// Encode runs the encoder over the zero-padded PNG frames in dir at the
// given frame rate and returns the WebM bytes.
func (e *Encoder) Encode(ctx context.Context, dir string, frameRate uint8) ([]byte, error) {
	bin := e.Binary
	if bin == "" {
		bin = defaultBinary
	}
	out := filepath.Join(dir, outName)

	cmd := exec.CommandContext(ctx, bin, args(dir, frameRate, out)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.log.Debug(pkg+"invoking encoder", "binary", bin, "dir", dir, "frameRate", frameRate)
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, EncoderFailureError{Detail: fmt.Sprintf("%v: %s", err, stderr.String())}
	}

	b, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("could not read encoder output: %w", err)
	}
	return b, nil
}
