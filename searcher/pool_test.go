package searcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAllocate(t *testing.T) {
	t.Run("hands out sequential handles", func(t *testing.T) {
		pool := NewPool(3, 4)

		for want := int32(0); want < 3; want++ {
			got, err := pool.Allocate()
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
		require.Equal(t, 3, pool.Used())
	})

	t.Run("reports exhaustion without corrupting state", func(t *testing.T) {
		pool := NewPool(1, 4)
		_, err := pool.Allocate()
		require.NoError(t, err)

		_, err = pool.Allocate()

		require.ErrorIs(t, err, ErrPoolExhausted)
		require.Equal(t, 1, pool.Used())
	})

	t.Run("concurrent allocations never hand out the same node", func(t *testing.T) {
		const size = 64
		pool := NewPool(size, 4)

		handles := make(chan int32, size)
		errs := make(chan error, size)
		var wg sync.WaitGroup
		for i := 0; i < size; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				index, err := pool.Allocate()
				if err != nil {
					errs <- err
					return
				}
				handles <- index
			}()
		}
		wg.Wait()
		close(handles)
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
		seen := make(map[int32]bool)
		for index := range handles {
			require.False(t, seen[index], "handle handed out twice")
			seen[index] = true
		}
		require.Len(t, seen, size)
	})
}

func TestPoolNode(t *testing.T) {
	t.Run("resolves a handle to a stable node", func(t *testing.T) {
		pool := NewPool(2, 4)
		index, err := pool.Allocate()
		require.NoError(t, err)

		require.Same(t, pool.Node(index), pool.Node(index))
	})

	t.Run("panics on an unallocated or sentinel handle", func(t *testing.T) {
		pool := NewPool(2, 4)
		_, err := pool.Allocate()
		require.NoError(t, err)

		require.Panics(t, func() { pool.Node(1) }, "Handle 1 is not allocated yet")
		require.Panics(t, func() { pool.Node(NotExpanded) })
	})
}

func TestPoolReset(t *testing.T) {
	t.Run("recycles every node for the next search", func(t *testing.T) {
		pool := NewPool(2, 4)
		first, err := pool.Allocate()
		require.NoError(t, err)
		require.NoError(t, pool.Node(first).Expand([]PolicyEntry{{Action: 1, Prior: 1.0}}))

		pool.Reset()

		require.Zero(t, pool.Used())
		again, err := pool.Allocate()
		require.NoError(t, err)
		require.Equal(t, first, again, "Reset must reuse storage, not grow it")
		require.Equal(t, 2, pool.Size())
	})
}
