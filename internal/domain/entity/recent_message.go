package entity

import "time"

// RecentMessage is the denormalized "last message" row kept per (owner, peer)
// pair. It is overwritten on every send between the pair; ID is the peer uid.
type RecentMessage struct {
	ID              string    `json:"id" firestore:"-"`
	Text            string    `json:"text" firestore:"text"`
	Email           string    `json:"email" firestore:"email"`
	FromID          string    `json:"from_id" firestore:"fromId"`
	ToID            string    `json:"to_id" firestore:"toId"`
	ProfileImageURL string    `json:"profileImageURL" firestore:"profileImageURL"`
	Timestamp       time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	Status          bool      `json:"status" firestore:"status"`
}
