package tasks

import (
	"context"
	"testing"

	"staybook/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurgeTask_RoundTrip(t *testing.T) {
	in := models.PurgePayload{OwnerID: "L1", PublicIDs: []string{"a", "b"}, Reason: "listing deleted"}
	task, opts, err := NewPurgeTask(TypeListingPurgeImages, in)
	require.NoError(t, err)
	assert.Equal(t, TypeListingPurgeImages, task.Type())
	assert.Len(t, opts, 2)

	out, err := ParsePurgePayload(task)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParsePurgePayload_Invalid(t *testing.T) {
	_, err := ParsePurgePayload(asynq.NewTask(TypeUserPurgePhoto, []byte("{")))
	assert.Error(t, err)
}

func TestAsynqEnqueuer(t *testing.T) {
	mr := miniredis.RunT(t)
	e := NewAsynqEnqueuer(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer e.Close()

	ctx := context.Background()
	require.NoError(t, e.EnqueuePurge(ctx, TypeUserPurgePhoto, models.PurgePayload{}))

	err := e.EnqueuePurge(ctx, TypeUserPurgePhoto, models.PurgePayload{OwnerID: "u1", PublicIDs: []string{"p1"}})
	require.NoError(t, err)

	pending, err := mr.List("asynq:{default}:pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
