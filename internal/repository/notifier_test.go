package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifierDeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier()
	var first, second []Change
	n.Subscribe(func(c Change) { first = append(first, c) })
	n.Subscribe(func(c Change) { second = append(second, c) })

	n.Publish(Change{Kind: "events", UserID: "u1"})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, "u1", first[0].UserID)
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := NewNotifier()
	calls := 0
	unsubscribe := n.Subscribe(func(Change) { calls++ })

	n.Publish(Change{Kind: "events", UserID: "u1"})
	unsubscribe()
	n.Publish(Change{Kind: "events", UserID: "u1"})

	assert.Equal(t, 1, calls)
}
