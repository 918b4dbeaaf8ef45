package entity

import "time"

// Message is one entry of the append-only conversation log. The same logical
// message is stored under both participants' partitions with the same
// DocumentID; the timestamps are stamped independently by the store on each
// write.
type Message struct {
	DocumentID string    `json:"id" firestore:"-"`
	FromID     string    `json:"from_id" firestore:"fromId"`
	ToID       string    `json:"to_id" firestore:"toId"`
	Text       string    `json:"text" firestore:"text"`
	Timestamp  time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}
