package entity

type User struct {
	UID             string `json:"uid" firestore:"uid"`
	Email           string `json:"email" firestore:"email"`
	ProfileImageURL string `json:"profileImageURL" firestore:"profileImageURL"`
}
