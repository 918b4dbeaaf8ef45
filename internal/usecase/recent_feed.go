package usecase

import "firechat/internal/domain/entity"

// RecentFeed is the consumer-facing ordered view over recent-conversation
// change events. Ordering is not taken from the store: a change for an id that
// is already present removes the old row before the updated row is inserted at
// the front, which is what moves a conversation to the top on new activity.
// Applying the same change twice leaves a single row.
//
// RecentFeed is not safe for concurrent use; each subscriber owns one.
type RecentFeed struct {
	entries []*entity.RecentMessage
}

func NewRecentFeed() *RecentFeed {
	return &RecentFeed{}
}

// Upsert applies an insert/update change for one recent entry.
func (f *RecentFeed) Upsert(entry *entity.RecentMessage) {
	f.Remove(entry.ID)
	f.entries = append([]*entity.RecentMessage{entry}, f.entries...)
}

// Remove applies a delete change. Unknown ids are ignored.
func (f *RecentFeed) Remove(id string) {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}

// Entries returns the current view, most recently touched first.
func (f *RecentFeed) Entries() []*entity.RecentMessage {
	out := make([]*entity.RecentMessage, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *RecentFeed) Len() int {
	return len(f.entries)
}
