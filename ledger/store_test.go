// SPDX-License-Identifier: MIT
// Package ledger_test verifies the sqlite release ledger.
//
// Purpose:
//   - Anchor append order and listing on disk and in memory.
//   - Lock in the behaviour after Close, including Close racing Append.

package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/dpchain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store, err := ledger.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	want := []ledger.Entry{
		{AccountantID: "a", Sequence: 0, Measurement: "m0", Cost: "0.5", Total: "0.5"},
		{AccountantID: "a", Sequence: 1, Measurement: "m1", Cost: "0.25", Total: "0.75"},
	}
	for _, e := range want {
		require.NoError(t, store.Append(ctx, e))
	}
	require.NoError(t, store.Append(ctx, ledger.Entry{AccountantID: "b", ParentID: "a", Measurement: "m", Cost: "1", Total: "1"}))

	got, err := store.Entries(ctx, "a")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(ledger.Entry{}, "RecordedAt")); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	for _, e := range got {
		assert.False(t, e.RecordedAt.IsZero())
	}

	all, err := store.Entries(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_Memory(t *testing.T) {
	ctx := context.Background()
	store, err := ledger.Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, ledger.Entry{AccountantID: "x", Measurement: "m", Cost: "1", Total: "1"}))
	got, err := store.Entries(ctx, "x")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, store.Close())
	assert.ErrorIs(t, store.Append(ctx, ledger.Entry{}), ledger.ErrClosed)
}

// TestStore_CloseDuringAppend VERIFIES that Close may race with writers.
// Implementation:
//   - Stage 1: Start appenders that write until the store reports ErrClosed.
//   - Stage 2: Close the store while they run, then close it again.
//   - Stage 3: Assert no appender saw an error other than ErrClosed.
func TestStore_CloseDuringAppend(t *testing.T) {
	ctx := context.Background()
	store, err := ledger.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)

	started := make(chan struct{}, 4)
	var g errgroup.Group
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for i := 0; ; i++ {
				err := store.Append(ctx, ledger.Entry{AccountantID: fmt.Sprint(w), Sequence: i, Measurement: "m", Cost: "1", Total: "1"})
				if i == 0 {
					started <- struct{}{}
				}
				if errors.Is(err, ledger.ErrClosed) {
					return nil
				}
				if err != nil {
					return err
				}
			}
		})
	}
	for w := 0; w < 4; w++ {
		<-started
	}
	require.NoError(t, store.Close())
	require.NoError(t, g.Wait())
	require.NoError(t, store.Close())

	_, err = store.Entries(ctx, "")
	assert.ErrorIs(t, err, ledger.ErrClosed)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := ledger.Open(context.Background(), "")
	assert.Error(t, err)
}
