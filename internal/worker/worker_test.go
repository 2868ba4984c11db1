package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelcut/panelcut/internal/model"
)

func testRequest() model.PackRequest {
	return model.PackRequest{
		Parts: []model.Part{
			{ID: "p1", Name: "panel", MaterialID: "mdf", Width: 600, Height: 400},
		},
		Config: model.DefaultGlobalConfig(),
	}
}

func TestRunner_GenerationsAreMonotonic(t *testing.T) {
	r := NewRunner(3)

	g1 := r.Submit(testRequest())
	g2 := r.Submit(testRequest())
	g3 := r.Submit(testRequest())

	assert.Equal(t, uint64(1), g1)
	assert.Equal(t, uint64(2), g2)
	assert.Equal(t, uint64(3), g3)
	assert.Equal(t, uint64(3), r.Latest())
}

func TestRunner_AllSubmissionsDeliver(t *testing.T) {
	r := NewRunner(4)

	for i := 0; i < 4; i++ {
		r.Submit(testRequest())
	}
	r.Wait()

	seen := map[uint64]bool{}
	for resp := range r.Responses() {
		seen[resp.Generation] = true
		require.NotNil(t, resp.Result.Materials)
		assert.True(t, resp.Result.Materials["mdf"].OK())
	}
	assert.Len(t, seen, 4, "every submission yields exactly one response")
}

func TestRunner_MoreSubmissionsThanBuffer(t *testing.T) {
	// Workers block on send once the buffer fills; Wait must not depend on
	// those sends completing, or waiting before draining deadlocks.
	r := NewRunner(1)

	for i := 0; i < 5; i++ {
		r.Submit(testRequest())
	}
	r.Wait()

	count := 0
	for range r.Responses() {
		count++
	}
	assert.Equal(t, 5, count)
}

func TestRunner_StaleResponseDetectable(t *testing.T) {
	r := NewRunner(2)

	old := r.Submit(testRequest())
	r.Submit(testRequest())
	r.Wait()

	for resp := range r.Responses() {
		if resp.Generation == old {
			assert.Less(t, resp.Generation, r.Latest(), "superseded result reads as stale")
		}
	}
}

func TestRunSync_ReturnsResult(t *testing.T) {
	res, err := RunSync(context.Background(), testRequest())

	require.NoError(t, err)
	require.Contains(t, res.Materials, "mdf")
	assert.Equal(t, 1, res.TotalSheets())
}

func TestRunSync_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A pre-cancelled context can in principle lose the select race to a very
	// fast plan, so retry until cancellation is observed.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := RunSync(ctx, testRequest()); err != nil {
			assert.ErrorIs(t, err, context.Canceled)
			return
		}
	}
	t.Fatal("cancellation never observed")
}
