package models

import "time"

// Avatars are the selectable child avatars; ChildProfile.Avatar indexes them.
var Avatars = [...]string{"🐣", "🐼", "🐰", "🐱", "🐻", "🐨"}

// MinChildAge is the youngest age accepted for a child profile.
const MinChildAge = 5

// User is a parent account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ParentProfile is stored next to the account at signup.
type ParentProfile struct {
	ParentName string    `json:"parentName"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChildProfile is the learner attached to a parent account.
type ChildProfile struct {
	ChildName string     `json:"childName"`
	ChildAge  int        `json:"childAge"`
	Avatar    int        `json:"avatar"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// AvatarIcon returns the avatar glyph, or "" for an out of range index.
func (c ChildProfile) AvatarIcon() string {
	if c.Avatar < 0 || c.Avatar >= len(Avatars) {
		return ""
	}
	return Avatars[c.Avatar]
}

// UserData is everything the store holds for one account.
type UserData struct {
	Profile  *ParentProfile  `json:"profile"`
	Child    *ChildProfile   `json:"child"`
	Progress *ProgressRecord `json:"progress"`
}
