package store

import (
	"strings"

	"kanban-cli/internal/model"
)

var boardTemplates = []model.BoardTemplate{
	{
		ID:          "everyday",
		Name:        "Everyday Kanban",
		Description: "Simple flow for everyday tasks and small projects.",
		Lists: []model.ListTemplate{
			{Name: "Inbox", Color: "#3949AB"},
			{Name: "Next up", Color: "#29B6F6"},
			{Name: "In progress", Color: "#8E24AA"},
			{Name: "Waiting on others", Color: "#FB8C00"},
			{Name: "Done", Color: "#43A047"},
		},
	},
	{
		ID:          "project",
		Name:        "Project management",
		Description: "Lightweight workflow for work or school projects.",
		Lists: []model.ListTemplate{
			{Name: "Backlog", Color: "#00897B"},
			{Name: "Ready", Color: "#00ACC1"},
			{Name: "In progress", Color: "#3949AB"},
			{Name: "Blocked", Color: "#E53935"},
			{Name: "Review", Color: "#FDD835"},
			{Name: "Done", Color: "#43A047"},
		},
	},
	{
		ID:          "study",
		Name:        "Study planner",
		Description: "Track readings and assignments from start to grading.",
		Lists: []model.ListTemplate{
			{Name: "To read", Color: "#29B6F6"},
			{Name: "Exercises", Color: "#8E24AA"},
			{Name: "In progress", Color: "#FB8C00"},
			{Name: "Waiting for grading", Color: "#D81B60"},
			{Name: "Done", Color: "#43A047"},
		},
	},
}

func BoardTemplates() []model.BoardTemplate {
	out := make([]model.BoardTemplate, len(boardTemplates))
	copy(out, boardTemplates)
	return out
}

func FindBoardTemplate(id string) (model.BoardTemplate, bool) {
	id = strings.TrimSpace(strings.ToLower(id))
	for _, t := range boardTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return model.BoardTemplate{}, false
}
