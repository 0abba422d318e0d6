package model

import "time"

type Board struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// List is a board column. Lists are ordered inside their board by Position.
type List struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID          string    `json:"id"`
	ListID      string    `json:"listId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Finished    bool      `json:"finished"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListTemplate and BoardTemplate seed new boards with a set of colored lists.
type ListTemplate struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type BoardTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Lists       []ListTemplate `json:"lists"`
}
