package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcasterCoalesces(t *testing.T) {
	var b Broadcaster
	ch, cancel := b.Subscribe()
	defer cancel()

	b.Notify()
	b.Notify()
	b.Notify()

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce into one")
	default:
	}
}

func TestBroadcasterFanOut(t *testing.T) {
	var b Broadcaster
	a, cancelA := b.Subscribe()
	c, cancelC := b.Subscribe()
	defer cancelC()
	assert.Equal(t, 2, b.Len())

	b.Notify()
	_, okA := <-a
	_, okC := <-c
	assert.True(t, okA)
	assert.True(t, okC)

	cancelA()
	cancelA()
	assert.Equal(t, 1, b.Len())
	_, open := <-a
	assert.False(t, open, "cancel closes the channel")

	b.Notify()
	_, okC = <-c
	assert.True(t, okC)
}
