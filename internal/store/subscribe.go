package store

// subscriber holds a one-slot channel that always carries the newest
// snapshot the subscriber has not read yet.
type subscriber struct {
	ch chan Snapshot
}

// Subscribe registers for change notifications. The channel immediately
// holds the current snapshot; after that a new snapshot is delivered on every
// change. A slow reader only ever sees the latest state: pending snapshots
// are replaced, never queued.
//
// Call the returned function to unsubscribe; it closes the channel and is
// safe to call more than once.
func (s *TripStore) Subscribe() (<-chan Snapshot, func()) {
	sub := &subscriber{ch: make(chan Snapshot, 1)}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	sub.ch <- s.snapshotLocked()
	s.mu.Unlock()

	return sub.ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[sub]; ok {
			delete(s.subs, sub)
			close(sub.ch)
		}
	}
}

// changedLocked bumps the version and publishes a snapshot to every
// subscriber. Callers must hold s.mu.
func (s *TripStore) changedLocked() {
	s.version++
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for sub := range s.subs {
		// Drop the unread snapshot, if any, so the send below cannot block.
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snap
	}
}
