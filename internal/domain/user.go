package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is what a verified token says about the caller.
type Identity struct {
	UserID string
	Email  string
}

// Actor is the user performing an engagement action.
type Actor struct {
	ID   string
	Name string
}

func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Name: u.Name}
}
