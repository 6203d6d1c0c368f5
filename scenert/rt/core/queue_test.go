package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DrainAllFIFO(t *testing.T) {
	q := NewQueue[int]()
	assert.Empty(t, q.DrainAll())

	for i := 0; i < 5; i++ {
		q.Enqueue(i)
	}
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, q.DrainAll())
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.DrainAll(), "messages must not be delivered twice")
}

func TestQueue_ConcurrentProducer(t *testing.T) {
	q := NewQueue[int]()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Enqueue(i)
		}
	}()

	var got []int
	for len(got) < n {
		got = append(got, q.DrainAll()...)
	}
	wg.Wait()

	require.Len(t, got, n)
	for i, v := range got {
		require.Equal(t, i, v, "order must follow enqueue order")
	}
}

func TestQueues_Pending(t *testing.T) {
	qs := NewQueues()
	qs.Skybox.Enqueue(SkyboxCommand{Name: "sky"})
	qs.Spotlight.Enqueue(SpotlightToggleCommand{})
	qs.Model.Enqueue(ModelCommand{Asset: "lamp", Id: 1, Action: ActionAdd})
	assert.Equal(t, 3, qs.Pending())
}
