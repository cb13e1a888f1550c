package pincache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoaderFillsOnMiss(t *testing.T) {
	c := newSeedCache(t, 4)
	l := NewLoader(NewLocked(c))

	var calls atomic.Int32
	fn := func(_ context.Context, key []byte) ([]byte, error) {
		calls.Add(1)
		return key, nil
	}

	v, err := l.GetOrAdd(context.Background(), u32key(1), fn)
	require.NoError(t, err)
	require.Equal(t, u32key(1), v)
	require.Equal(t, int32(1), calls.Load())

	v, err = l.GetOrAdd(context.Background(), u32key(1), fn)
	require.NoError(t, err)
	require.Equal(t, u32key(1), v)
	require.Equal(t, int32(1), calls.Load(), "second call must be a cache hit, fn not invoked again")
}

func TestLoaderCoalescesConcurrentFills(t *testing.T) {
	c := newSeedCache(t, 4)
	l := NewLoader(NewLocked(c))

	var calls atomic.Int32
	block := make(chan struct{})
	fn := func(_ context.Context, key []byte) ([]byte, error) {
		calls.Add(1)
		<-block
		return key, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := l.GetOrAdd(context.Background(), u32key(9), fn)
			require.NoError(t, err)
			require.Equal(t, u32key(9), v)
		}()
	}

	close(block)
	wg.Wait()
	require.Equal(t, int32(1), calls.Load(), "all concurrent misses on the same key must share one fn invocation")
}
