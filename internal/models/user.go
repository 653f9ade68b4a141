package models

import (
	"errors"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Projects     []string  `json:"projects"`
	Reports      []string  `json:"reports"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Validate() error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return errors.New("username is required")
	}
	if u.Projects == nil {
		u.Projects = []string{}
	}
	if u.Reports == nil {
		u.Reports = []string{}
	}
	return nil
}
