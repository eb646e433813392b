// Package audio converts uploaded recordings into the waveform format the
// transcription engine expects.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrToolMissing indicates the ffmpeg binary is not installed.
var ErrToolMissing = errors.New("ffmpeg not found")

// stderrTail caps how much transcoder output is carried in errors.
const stderrTail = 200

// Normalizer shells out to ffmpeg to decode arbitrary container input and
// re-encode it as 16 kHz mono PCM WAV.
type Normalizer struct {
	ffmpegPath string
}

// NewNormalizer creates a normalizer that expects ffmpeg on PATH.
func NewNormalizer() *Normalizer {
	return &Normalizer{ffmpegPath: "ffmpeg"}
}

// Normalize transcodes src into a 16 kHz mono WAV at dst. A corrupt or empty
// upload typically shows up here as a non-zero ffmpeg exit.
func (n *Normalizer) Normalize(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, n.ffmpegPath, "-y", "-i", src, "-ac", "1", "-ar", "16000", dst)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrToolMissing, err)
		}
		return fmt.Errorf("ffmpeg failed: %v: %s", err, tail(out))
	}
	return nil
}

// Probe reports whether ffmpeg is runnable, for the health endpoint.
func (n *Normalizer) Probe(ctx context.Context) error {
	return exec.CommandContext(ctx, n.ffmpegPath, "-version").Run()
}

func tail(out []byte) string {
	if len(out) > stderrTail {
		out = out[len(out)-stderrTail:]
	}
	return string(out)
}
