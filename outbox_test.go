package trebuchet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/trebuchet/pkg/postmark"
)

func TestOutbox_AddReturnsNewLength(t *testing.T) {
	t.Parallel()

	ob := newOutbox(10)
	for i := 1; i <= 5; i++ {
		n, err := ob.add(&postmark.Message{To: "a@x.com"})
		require.NoError(t, err)
		require.Equal(t, i, n)
	}
	require.Equal(t, 5, ob.len())
}

func TestOutbox_RejectsBeyondCapacity(t *testing.T) {
	t.Parallel()

	ob := newOutbox(2)
	_, err := ob.add(&postmark.Message{Subject: "one"})
	require.NoError(t, err)
	_, err = ob.add(&postmark.Message{Subject: "two"})
	require.NoError(t, err)

	n, err := ob.add(&postmark.Message{Subject: "three"})
	require.ErrorIs(t, err, ErrOutboxFull)
	require.Equal(t, 2, n, "length reported on rejection is unchanged")

	msgs := ob.snapshot()
	require.Len(t, msgs, 2)
	require.Equal(t, "one", msgs[0].Subject)
	require.Equal(t, "two", msgs[1].Subject)
}

func TestOutbox_SnapshotPreservesOrderAndIsolation(t *testing.T) {
	t.Parallel()

	ob := newOutbox(10)
	for _, s := range []string{"a", "b", "c"} {
		_, err := ob.add(&postmark.Message{Subject: s})
		require.NoError(t, err)
	}

	msgs := ob.snapshot()
	require.Equal(t, []string{"a", "b", "c"}, []string{msgs[0].Subject, msgs[1].Subject, msgs[2].Subject})

	// Clearing after a snapshot must not affect the snapshot.
	ob.clear()
	require.Len(t, msgs, 3)
	require.Equal(t, 0, ob.len())
}

func TestOutbox_ClearReturnsZero(t *testing.T) {
	t.Parallel()

	ob := newOutbox(10)
	require.Equal(t, 0, ob.clear(), "clearing an empty outbox is fine")

	_, err := ob.add(&postmark.Message{})
	require.NoError(t, err)
	require.Equal(t, 0, ob.clear())
	require.Equal(t, 0, ob.len())
}
