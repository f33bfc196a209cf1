package queue

// Option configures an InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity bounds the number of commands waiting for the worker. Values
// below one keep the default.
func WithCapacity(n int) Option {
	return func(q *InMemoryQueue) {
		if n >= 1 {
			q.capacity = n
		}
	}
}
