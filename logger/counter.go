package logger

import (
	"time"

	"github.com/viant/gmetric/counter"
)

//Counter abstracts a gmetric operation counter
type Counter interface {
	Begin(started time.Time) counter.OnDone
	DecrementValue(value interface{}) int64
	IncrementValue(value interface{}) int64
}

//CounterAdapter guards a possibly absent counter
type CounterAdapter struct {
	counter Counter
}

//NewCounter creates a counter adapter
func NewCounter(counter Counter) *CounterAdapter {
	return &CounterAdapter{counter: counter}
}

func (c *CounterAdapter) Begin(started time.Time) counter.OnDone {
	if c.counter == nil {
		return nopOnDone
	}
	return c.counter.Begin(started)
}

func (c *CounterAdapter) DecrementValue(value interface{}) int64 {
	if c.counter == nil {
		return 0
	}
	return c.counter.DecrementValue(value)
}

func (c *CounterAdapter) IncrementValue(value interface{}) int64 {
	if c.counter == nil {
		return 0
	}
	return c.counter.IncrementValue(value)
}

func nopOnDone(_ time.Time, _ ...interface{}) int64 {
	return 0
}
