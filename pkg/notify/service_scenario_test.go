package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyq/pkg/notify"
	"github.com/dmitrymomot/notifyq/pkg/sequence"
)

// End-to-end flows over the real memory implementations, exercising the
// contract the package promises rather than individual collaborators.

func newScenarioService(t *testing.T) (*notify.Service, *notify.MemoryPresence, *recordingChannel, *notify.MemoryPendingIndex) {
	t.Helper()

	presence := notify.NewMemoryPresence()
	channel := &recordingChannel{}
	pending := notify.NewMemoryPendingIndex()

	svc := notify.NewService(
		notify.NewMemoryStorage(),
		sequence.NewLocal(),
		channel,
		presence,
		notify.WithPendingIndex(pending),
		notify.WithLogger(discardLogger()),
	)

	return svc, presence, channel, pending
}

func TestScenario_CreateAckReplay(t *testing.T) {
	t.Parallel()

	svc, _, channel, pending := newScenarioService(t)
	ctx := context.Background()

	p1, err := svc.Create(ctx, notify.To("u1"), []byte(`"p1"`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), p1.Seq)
	assert.False(t, p1.Delivered)

	p2, err := svc.Create(ctx, notify.To("u1"), []byte(`"p2"`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), p2.Seq)

	ids, err := pending.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{p1.ID, p2.ID}, ids)

	require.NoError(t, svc.Acknowledge(ctx, p1.ID))

	// Replay finds only the unacknowledged notification.
	require.NoError(t, svc.ReplayPendingUndelivered(ctx, "u1"))
	require.Len(t, channel.pushes, 1)
	assert.Equal(t, p2.ID, channel.pushes[0].ID)

	// And the fast index no longer lists the acknowledged one.
	ids, err = svc.PendingIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{p2.ID}, ids)
}

func TestScenario_AcknowledgeIdempotent(t *testing.T) {
	t.Parallel()

	svc, _, channel, _ := newScenarioService(t)
	ctx := context.Background()

	n, err := svc.Create(ctx, notify.To("u1"), []byte(`"p"`))
	require.NoError(t, err)

	require.NoError(t, svc.Acknowledge(ctx, n.ID))
	require.NoError(t, svc.Acknowledge(ctx, n.ID))

	// Still delivered, still excluded from replay.
	require.NoError(t, svc.ReplayPendingUndelivered(ctx, "u1"))
	assert.Empty(t, channel.pushes)
}

func TestScenario_OfflineCreationReplayedLater(t *testing.T) {
	t.Parallel()

	svc, presence, channel, _ := newScenarioService(t)
	ctx := context.Background()

	presence.SetOffline("u1")

	n, err := svc.Create(ctx, notify.To("u1"), []byte(`"while away"`))
	require.NoError(t, err)

	// Dispatch while offline pushes nothing.
	require.NoError(t, svc.DispatchIfOnline(ctx, "u1", n))
	assert.Empty(t, channel.pushes)

	// The record is still undelivered and replay finds it.
	require.NoError(t, svc.ReplayPendingUndelivered(ctx, "u1"))
	require.Len(t, channel.pushes, 1)
	assert.Equal(t, n.ID, channel.pushes[0].ID)
	assert.False(t, channel.pushes[0].Delivered)
}

func TestScenario_ReplayMissedFromWatermark(t *testing.T) {
	t.Parallel()

	svc, _, channel, _ := newScenarioService(t)
	ctx := context.Background()

	var created []notify.Notification
	for range 4 {
		n, err := svc.Create(ctx, notify.To("u1"), []byte(`"x"`))
		require.NoError(t, err)
		created = append(created, n)
	}

	// Client processed up to seq 2 before disconnecting; seq 3 was acked
	// through another device.
	require.NoError(t, svc.Acknowledge(ctx, created[2].ID))

	require.NoError(t, svc.ReplayMissed(ctx, "u1", 2))

	require.Len(t, channel.pushes, 1)
	assert.Equal(t, int64(4), channel.pushes[0].Seq)
}

func TestScenario_UnaddressedNeverReplayed(t *testing.T) {
	t.Parallel()

	svc, _, channel, _ := newScenarioService(t)
	ctx := context.Background()

	n, err := svc.Create(ctx, notify.Recipient{}, []byte(`"fire and forget"`))
	require.NoError(t, err)
	assert.False(t, n.Sequenced())
	assert.Equal(t, int64(0), n.Seq)

	require.NoError(t, svc.ReplayPendingUndelivered(ctx, ""))
	require.NoError(t, svc.ReplayMissed(ctx, "", 0))
	assert.Empty(t, channel.pushes)
}

func TestScenario_CacheOutageDoesNotLoseNotifications(t *testing.T) {
	t.Parallel()

	// Pending index hard-down: appends fail, creation and replay still work.
	pending := new(MockPendingIndex)
	pending.On("Append", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))
	pending.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	channel := &recordingChannel{}
	svc := notify.NewService(
		notify.NewMemoryStorage(),
		sequence.NewLocal(),
		channel,
		notify.NewMemoryPresence(),
		notify.WithPendingIndex(pending),
		notify.WithLogger(discardLogger()),
	)
	ctx := context.Background()

	n, err := svc.Create(ctx, notify.To("u1"), []byte(`"survives"`))
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, int64(1), n.Seq)

	// Fast lookup degrades to empty, durable replay still delivers.
	ids, err := svc.PendingIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, svc.ReplayPendingUndelivered(ctx, "u1"))
	require.Len(t, channel.pushes, 1)
	assert.Equal(t, n.ID, channel.pushes[0].ID)
}

func TestScenario_SendPushesWhenOnline(t *testing.T) {
	t.Parallel()

	svc, presence, channel, _ := newScenarioService(t)
	ctx := context.Background()

	presence.SetOnline("u1")

	n, err := svc.Send(ctx, notify.To("u1"), []byte(`"hello"`))
	require.NoError(t, err)

	require.Len(t, channel.pushes, 1)
	assert.Equal(t, n.ID, channel.pushes[0].ID)

	// Pushed but not yet acknowledged: the flag is still false and a replay
	// would resend it.
	found, err := svc.PendingIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{n.ID}, found)
}
