package ws

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Channel is one open realtime connection.
type Channel interface {
	Send(payload []byte) error
	IsOpen() bool
	Close() error
}

// Registry keeps track of the open channels of each connected user. A user
// may have several channels open at once; a channel belongs to one user.
//
// Registry methods never perform channel I/O while holding the lock.
type Registry struct {
	mu       sync.RWMutex
	channels map[string][]Channel // userID -> channels, in registration order
	owners   map[Channel]string   // channel -> userID
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		channels: make(map[string][]Channel),
		owners:   make(map[Channel]string),
		log:      log,
	}
}

// Register makes ch a forwarding target for userID. Registering the same
// channel again for the same user is a no-op; registering it for another
// user moves it.
func (r *Registry) Register(userID string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.owners[ch]; ok {
		if owner == userID {
			return
		}
		r.removeLocked(owner, ch)
	}
	r.channels[userID] = append(r.channels[userID], ch)
	r.owners[ch] = userID
}

// Unregister removes ch from whichever user it was registered for. It is
// safe to call more than once.
func (r *Registry) Unregister(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.owners[ch]
	if !ok {
		return
	}
	r.removeLocked(owner, ch)
}

func (r *Registry) removeLocked(userID string, ch Channel) {
	delete(r.owners, ch)
	list := r.channels[userID]
	for i, c := range list {
		if c == ch {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(r.channels, userID)
		return
	}
	r.channels[userID] = list
}

// Forward sends payload to every open channel of userID and returns how
// many sends succeeded. Closed channels are skipped but stay registered
// until their own close path unregisters them. A user without channels
// gets nothing and that is not an error.
func (r *Registry) Forward(userID string, payload []byte) int {
	r.mu.RLock()
	targets := append([]Channel(nil), r.channels[userID]...)
	r.mu.RUnlock()

	delivered := 0
	for _, ch := range targets {
		if !ch.IsOpen() {
			continue
		}
		if err := ch.Send(payload); err != nil {
			r.log.Debug("forward failed", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		delivered++
	}
	return delivered
}

// IsConnected returns whether userID has at least one registered channel.
func (r *Registry) IsConnected(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels[userID]) > 0
}

// ChannelCount returns the number of channels registered for userID.
func (r *Registry) ChannelCount(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels[userID])
}

// Count returns the number of users with at least one channel.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// Connected returns the sorted ids of users with at least one channel.
func (r *Registry) Connected() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.channels))
	for id := range r.channels {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// CloseAll empties the registry and closes every channel it held.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]Channel, 0, len(r.owners))
	for ch := range r.owners {
		all = append(all, ch)
	}
	r.channels = make(map[string][]Channel)
	r.owners = make(map[Channel]string)
	r.mu.Unlock()

	for _, ch := range all {
		if err := ch.Close(); err != nil {
			r.log.Debug("close channel", zap.Error(err))
		}
	}
	r.log.Info("closed all channels", zap.Int("count", len(all)))
}
