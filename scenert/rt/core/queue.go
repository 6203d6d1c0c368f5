package core

import "sync"

// Queue is an unbounded FIFO shared by one producer and the render loop.
// Enqueue never blocks on the consumer; DrainAll hands back everything
// queued so far and leaves the queue empty.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) Enqueue(msg T) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
}

// DrainAll returns the pending messages in enqueue order. The returned
// slice is owned by the caller.
func (q *Queue[T]) DrainAll() []T {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Queues groups the per-category command queues. Control surfaces only
// enqueue; the scene drains them once per frame.
type Queues struct {
	Skybox     *Queue[SkyboxCommand]
	Terrain    *Queue[TerrainCommand]
	Spotlight  *Queue[SpotlightToggleCommand]
	PointLight *Queue[PointLightCommand]
	Model      *Queue[ModelCommand]
}

func NewQueues() *Queues {
	return &Queues{
		Skybox:     NewQueue[SkyboxCommand](),
		Terrain:    NewQueue[TerrainCommand](),
		Spotlight:  NewQueue[SpotlightToggleCommand](),
		PointLight: NewQueue[PointLightCommand](),
		Model:      NewQueue[ModelCommand](),
	}
}

// Pending reports the total number of queued messages.
func (q *Queues) Pending() int {
	return q.Skybox.Len() + q.Terrain.Len() + q.Spotlight.Len() + q.PointLight.Len() + q.Model.Len()
}
