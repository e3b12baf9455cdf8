package runner_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stagedtimer/internal/runner"
)

type recordingController struct {
	toggles int
	cancels int
}

func (c *recordingController) TogglePause() { c.toggles++ }
func (c *recordingController) Cancel()      { c.cancels++ }

func TestListenKeysMapsKeystrokes(t *testing.T) {
	ctrl := &recordingController{}
	runner.ListenKeys(context.Background(), strings.NewReader(" xpPq p"), ctrl)
	assert.Equal(t, 3, ctrl.toggles)
	assert.Equal(t, 1, ctrl.cancels)
}

func TestListenKeysCtrlC(t *testing.T) {
	ctrl := &recordingController{}
	runner.ListenKeys(context.Background(), strings.NewReader("\x03"), ctrl)
	assert.Equal(t, 1, ctrl.cancels)
}

func TestListenKeysStopsOnEOF(t *testing.T) {
	ctrl := &recordingController{}
	runner.ListenKeys(context.Background(), strings.NewReader(""), ctrl)
	assert.Zero(t, ctrl.toggles+ctrl.cancels)
}

func TestListenKeysHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctrl := &recordingController{}
	runner.ListenKeys(ctx, strings.NewReader("pppq"), ctrl)
	assert.Zero(t, ctrl.toggles+ctrl.cancels)
}
