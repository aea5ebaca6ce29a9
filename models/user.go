package models

// User represents a registered user and the exercises logged against it
type User struct {
	ID        string     `json:"_id" bson:"_id,omitempty"`
	Username  string     `json:"username" bson:"username"`
	Exercises []Exercise `json:"-" bson:"exercises"`
}

// UserSummary is the projection returned when listing users
type UserSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Summary projects the user to its identifier and username
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}
