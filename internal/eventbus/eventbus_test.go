package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInOrder(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan string, 3)
	b.Subscribe(EventValueChanged, func(e DomainEvent) {
		got <- e.(ValueChangedEvent).Value
	})

	for _, v := range []string{"a", "b", "c"} {
		b.Publish(ValueChangedEvent{Value: v})
	}

	var values []string
	for i := 0; i < 3; i++ {
		select {
		case v := <-got:
			values = append(values, v)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestUnsubscribe(t *testing.T) {
	b := New(nil)
	defer b.Close()

	removed := make(chan struct{}, 1)
	kept := make(chan struct{}, 1)
	unsubscribe := b.Subscribe(EventConfigChanged, func(DomainEvent) { removed <- struct{}{} })
	b.Subscribe(EventConfigChanged, func(DomainEvent) { kept <- struct{}{} })
	unsubscribe()

	b.Publish(ConfigChangedEvent{Path: "deck.toml"})

	select {
	case <-kept:
	case <-time.After(time.Second):
		t.Fatal("remaining handler not called")
	}
	assert.Empty(t, removed)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New(nil)
	defer b.Close()

	done := make(chan struct{})
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { close(done) })

	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "handler after a panicking one was not called")
	}
}
