package flow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type counter struct {
	N    int
	Name string
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestStoreUpdateReturnsNewState(t *testing.T) {
	s := NewStore(counter{Name: "a"})
	got := s.Update(func(c counter) counter {
		c.N++
		return c
	})
	require.Equal(t, counter{N: 1, Name: "a"}, got)
	require.Equal(t, got, s.State())

	s.Set(counter{N: 9})
	require.Equal(t, counter{N: 9}, s.State())
}

func TestStoreConcurrentUpdatesAreSerialized(t *testing.T) {
	s := NewStore(counter{})
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(c counter) counter {
				c.N++
				return c
			})
		}()
	}
	wg.Wait()
	require.Equal(t, 200, s.State().N)
}

func TestStoreSubscribeStartsFromCurrentValue(t *testing.T) {
	s := NewStore(counter{N: 1})
	s.Set(counter{N: 2})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	require.Equal(t, 2, recv(t, ch).N)

	for i := 3; i <= 6; i++ {
		s.Set(counter{N: i})
	}
	for i := 3; i <= 6; i++ {
		require.Equal(t, i, recv(t, ch).N)
	}
}

func TestStoreSubscribeEndsWithContext(t *testing.T) {
	s := NewStore(counter{})
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)
	recv(t, ch)
	require.Equal(t, 1, s.Subscribers())

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return s.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestStoreSubscribersAreIndependent(t *testing.T) {
	s := NewStore(counter{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := s.Subscribe(ctx)
	recv(t, a)
	s.Set(counter{N: 1})
	b := s.Subscribe(ctx)

	require.Equal(t, 1, recv(t, a).N)
	require.Equal(t, 1, recv(t, b).N)

	s.Set(counter{N: 2})
	require.Equal(t, 2, recv(t, a).N)
	require.Equal(t, 2, recv(t, b).N)
}
