package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/flowmerce/accounts/pkg/idx"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := idx.New()
	require.Len(t, id.String(), ulid.EncodedSize)

	_, err := ulid.ParseStrict(id.String())
	require.NoError(t, err)
}

func TestNewAt_SortsByTime(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())
	require.Less(t, a.String(), b.String())

	tm := time.Unix(1700000000, 0).UTC()
	u := ulid.MustParseStrict(idx.NewAt(tm).String())
	require.WithinDuration(t, tm, ulid.Time(u.Time()), time.Millisecond)
}

func TestNewAt_MonotonicWithinMillisecond(t *testing.T) {
	tm := time.Now().UTC()
	prev := idx.NewAt(tm)
	for range 100 {
		next := idx.NewAt(tm)
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

func TestNewIsUniqueUnderConcurrency(t *testing.T) {
	const workers, perWorker = 8, 200

	var mu sync.Mutex
	seen := make(map[idx.ID]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id := idx.New()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
}
