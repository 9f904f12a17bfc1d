package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/sidenote/pkg/core"
)

func TestSource_BridgesStoreEvents(t *testing.T) {
	in := make(chan core.Event, 1)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventModify, Path: "/tmp/notes.json", Timestamp: time.Now().UnixMilli()}

	select {
	case e := <-src.Events():
		require.Contains(t, e.String(), "/tmp/notes.json")
	case <-time.After(time.Second):
		t.Fatal("bridged event never arrived")
	}
}

func TestSource_ClosesWhenInputCloses(t *testing.T) {
	in := make(chan core.Event)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, src.Start(ctx))
	close(in)

	select {
	case _, ok := <-src.Events():
		require.False(t, ok, "output channel must close with the input")
	case <-time.After(time.Second):
		t.Fatal("output channel never closed")
	}
}
