package models

import (
	"errors"
	"strings"
	"time"
)

type Project struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Users       []string  `json:"users"`
	Reports     []string  `json:"reports"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Project) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Users == nil {
		p.Users = []string{}
	}
	if p.Reports == nil {
		p.Reports = []string{}
	}
	return nil
}
