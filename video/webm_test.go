/*
DESCRIPTION
  webm_test.go provides testing for encoder invocation construction in
  webm.go.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package video

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestArgs checks the encoder arg list: frame rate, zero-padded input
// pattern, VP9 codec and the alpha-preserving pixel format.
func TestArgs(t *testing.T) {
	dir := filepath.Join("tmp", "frames")
	out := filepath.Join(dir, "out.webm")

	got := args(dir, 24, out)
	want := []string{
		"-y",
		"-framerate", "24",
		"-i", filepath.Join(dir, "img_%04d.png"),
		"-c:v", "libvpx-vp9",
		"-pix_fmt", "yuva420p",
		out,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("did not get expected result (-want +got):\n%s", diff)
	}
}

// TestEncoderFailureError checks the error carries the encoder detail.
func TestEncoderFailureError(t *testing.T) {
	err := EncoderFailureError{Detail: "exit status 1: unknown encoder"}
	want := "video encoder failed: exit status 1: unknown encoder"
	if err.Error() != want {
		t.Errorf("did not get expected result.\n Got: %v\n Want: %v\n", err.Error(), want)
	}
}
