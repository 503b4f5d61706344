// Package entity contains the core business objects of the project.
package entity

import "time"

// ProjectStatus represents the lifecycle state of a posted project.
type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// Project is a work posting created by a client account.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CategoryID  string        `json:"categoryId"`
	Skills      []string      `json:"skills,omitempty"`
	Budget      float64       `json:"budget"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	ClientID    string        `json:"clientId"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Category is an admin-managed project category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
