// Package models defines the persisted entities and read views of the service.
package models

import "time"

// Account is a registered doctor.
type Account struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Specialization string    `gorm:"not null;default:''" json:"specialization"`
	Profession     string    `gorm:"not null;default:''" json:"profession"`
	ProfileImage   *string   `json:"profile_image"`
	About          *string   `json:"about"`
	Password       string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountSummary is the identity block returned by login and /me.
type AccountSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
}

// Summary projects the public identity fields.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Specialization: a.Specialization,
	}
}

// Profile is the editable view of an account.
type Profile struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profile_image"`
	About        *string `json:"about"`
	Profession   string  `json:"profession"`
}

// Profile projects the profile view.
func (a *Account) Profile() Profile {
	return Profile{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		ProfileImage: a.ProfileImage,
		About:        a.About,
		Profession:   a.Profession,
	}
}

// ProfileUpdate carries the fields a profile edit may change. A nil
// ProfileImage leaves the stored image untouched.
type ProfileUpdate struct {
	Name         string
	About        string
	Profession   string
	ProfileImage *string
}
