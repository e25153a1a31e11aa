package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile is the public directory record owned by one user. Experience and
// education live inside the row as ordered JSONB collections, newest first.
type Profile struct {
	ID             uuid.UUID                       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID                       `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Company        string                          `json:"company,omitempty"`
	Website        string                          `json:"website,omitempty"`
	Location       string                          `json:"location,omitempty"`
	Status         string                          `gorm:"not null" json:"status"`
	Bio            string                          `json:"bio,omitempty"`
	GithubUsername string                          `json:"githubusername,omitempty"`
	Skills         datatypes.JSONSlice[string]     `gorm:"type:jsonb" json:"skills"`
	Social         datatypes.JSONType[SocialLinks] `gorm:"type:jsonb" json:"social"`
	Experience     datatypes.JSONSlice[Experience] `gorm:"type:jsonb" json:"experience"`
	Education      datatypes.JSONSlice[Education]  `gorm:"type:jsonb" json:"education"`
	CreatedAt      time.Time                       `json:"created_at"`
	UpdatedAt      time.Time                       `json:"updated_at"`

	// Owning user's public fields, populated on reads; never persisted here.
	User *ProfileUser `gorm:"-" json:"user,omitempty"`
}

// ProfileUser is the slice of the owning user exposed alongside a profile.
type ProfileUser struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// SocialLinks maps social platforms to profile URLs.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is one work history entry embedded in a profile.
type Experience struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to,omitempty"`
	Current     bool      `json:"current"`
	Description string    `json:"description,omitempty"`
}

// Education is one schooling entry embedded in a profile.
type Education struct {
	ID           uuid.UUID `json:"id"`
	School       string    `json:"school"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"fieldofstudy"`
	From         string    `json:"from"`
	To           string    `json:"to,omitempty"`
	Current      bool      `json:"current"`
	Description  string    `json:"description,omitempty"`
}
