package model

// User is an entry of the local user directory, kept in sync from the user service.
type User struct {
	ID        string `db:"id" bson:"_id"`
	Nickname  string `db:"nickname" bson:"nickname"`
	AvatarURL string `db:"avatar_url" bson:"avatar_url"`
}

// Participant is the display data of a conversation member.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	IsOnline bool   `json:"isOnline,omitempty"`
}

func (u User) Participant() Participant {
	return Participant{
		ID:     u.ID,
		Name:   u.Nickname,
		Avatar: u.AvatarURL,
	}
}

// UserUpdate is a profile change published by the user service.
type UserUpdate struct {
	UserUUID  string  `json:"user_uuid"`
	Nickname  *string `json:"nickname,omitempty"`
	AvatarURL *string `json:"avatar_link,omitempty"`
}
