package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Record(ctx context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	d.Dispatch(Event{Action: "appointment_created", EntityID: "a1"})
	d.Dispatch(Event{Action: "selection_changed", EntityID: "2"})
	d.Close()

	assert.Len(t, sink.events, 2)
	assert.Equal(t, "appointment_created", sink.events[0].Action)
	assert.Equal(t, "selection_changed", sink.events[1].Action)
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("db down")}
	d := NewDispatcher(sink)

	d.Dispatch(Event{Action: "a"})
	d.Close()
	d.Close()

	assert.Len(t, sink.events, 1)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "ignored"})
}

func TestMultiSinkReturnsFirstError(t *testing.T) {
	a := &recordingSink{err: errors.New("first")}
	b := &recordingSink{err: errors.New("second")}

	err := MultiSink{LogSink{}, a, b}.Record(context.Background(), Event{Action: "x"})

	assert.EqualError(t, err, "first")
	assert.Len(t, b.events, 1)
}
