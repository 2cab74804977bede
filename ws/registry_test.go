package ws

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu      sync.Mutex
	closed  bool
	sendErr error
	sent    [][]byte
	closes  int
}

func newFakeChannel() *fakeChannel { return &fakeChannel{} }

func (f *fakeChannel) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, append([]byte(nil), payload...))
	return nil
}

func (f *fakeChannel) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.closes++
	return nil
}

func (f *fakeChannel) frames() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.sent...)
}

func TestRegistry_Forward(t *testing.T) {
	t.Run("delivers to the registered channel", func(t *testing.T) {
		reg := NewRegistry(nil)
		ch := newFakeChannel()
		reg.Register("u1", ch)

		n := reg.Forward("u1", []byte("hi"))

		assert.Equal(t, 1, n)
		assert.Equal(t, [][]byte{[]byte("hi")}, ch.frames())
	})

	t.Run("unknown user gets nothing", func(t *testing.T) {
		reg := NewRegistry(nil)
		assert.Equal(t, 0, reg.Forward("nobody", []byte("hi")))
	})

	t.Run("every channel of a user receives the payload", func(t *testing.T) {
		reg := NewRegistry(nil)
		phone, laptop := newFakeChannel(), newFakeChannel()
		reg.Register("u1", phone)
		reg.Register("u1", laptop)

		n := reg.Forward("u1", []byte("hi"))

		assert.Equal(t, 2, n)
		assert.Len(t, phone.frames(), 1)
		assert.Len(t, laptop.frames(), 1)
	})

	t.Run("other users are not touched", func(t *testing.T) {
		reg := NewRegistry(nil)
		a, b := newFakeChannel(), newFakeChannel()
		reg.Register("u1", a)
		reg.Register("u2", b)

		reg.Forward("u1", []byte("hi"))

		assert.Len(t, a.frames(), 1)
		assert.Empty(t, b.frames())
	})

	t.Run("closed channels are skipped but stay registered", func(t *testing.T) {
		reg := NewRegistry(nil)
		open, closed := newFakeChannel(), newFakeChannel()
		reg.Register("u1", closed)
		reg.Register("u1", open)
		require.NoError(t, closed.Close())

		n := reg.Forward("u1", []byte("hi"))

		assert.Equal(t, 1, n)
		assert.Empty(t, closed.frames())
		assert.Equal(t, 2, reg.ChannelCount("u1"))
	})

	t.Run("send errors are not counted", func(t *testing.T) {
		reg := NewRegistry(nil)
		broken := newFakeChannel()
		broken.sendErr = errors.New("broken pipe")
		reg.Register("u1", broken)

		assert.Equal(t, 0, reg.Forward("u1", []byte("hi")))
	})
}

func TestRegistry_Unregister(t *testing.T) {
	t.Run("unregistered channel receives nothing", func(t *testing.T) {
		reg := NewRegistry(nil)
		ch := newFakeChannel()
		reg.Register("u1", ch)
		reg.Unregister(ch)

		assert.Equal(t, 0, reg.Forward("u1", []byte("hi")))
		assert.Empty(t, ch.frames())
		assert.False(t, reg.IsConnected("u1"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		reg := NewRegistry(nil)
		ch := newFakeChannel()
		reg.Register("u1", ch)

		reg.Unregister(ch)
		reg.Unregister(ch)
		reg.Unregister(newFakeChannel())

		assert.Empty(t, reg.Connected())
	})

	t.Run("keeps the user's other channels", func(t *testing.T) {
		reg := NewRegistry(nil)
		a, b := newFakeChannel(), newFakeChannel()
		reg.Register("u1", a)
		reg.Register("u1", b)

		reg.Unregister(a)

		assert.Equal(t, 1, reg.Forward("u1", []byte("hi")))
		assert.Len(t, b.frames(), 1)
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Run("same channel twice is one entry", func(t *testing.T) {
		reg := NewRegistry(nil)
		ch := newFakeChannel()
		reg.Register("u1", ch)
		reg.Register("u1", ch)

		assert.Equal(t, 1, reg.ChannelCount("u1"))
		assert.Equal(t, 1, reg.Forward("u1", []byte("hi")))
	})

	t.Run("re-registering under another user moves the channel", func(t *testing.T) {
		reg := NewRegistry(nil)
		ch := newFakeChannel()
		reg.Register("u1", ch)
		reg.Register("u2", ch)

		assert.False(t, reg.IsConnected("u1"))
		assert.True(t, reg.IsConnected("u2"))
	})
}

func TestRegistry_ConnectedAndCloseAll(t *testing.T) {
	reg := NewRegistry(nil)
	a, b, c := newFakeChannel(), newFakeChannel(), newFakeChannel()
	reg.Register("u2", a)
	reg.Register("u1", b)
	reg.Register("u1", c)

	assert.Equal(t, []string{"u1", "u2"}, reg.Connected())
	assert.Equal(t, 2, reg.Count())

	reg.CloseAll()

	assert.Empty(t, reg.Connected())
	assert.Zero(t, reg.Count())
	for _, ch := range []*fakeChannel{a, b, c} {
		assert.False(t, ch.IsOpen())
		assert.Equal(t, 1, ch.closes)
	}
	// channels closing afterwards unregister into an empty registry
	reg.Unregister(a)
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := NewRegistry(nil)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("u%d", i%5)
			ch := newFakeChannel()
			reg.Register(user, ch)
			reg.Forward(user, []byte("hi"))
			reg.Connected()
			reg.Unregister(ch)
		}(i)
	}
	wg.Wait()

	assert.Empty(t, reg.Connected())
}
