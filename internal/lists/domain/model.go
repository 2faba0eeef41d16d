package domain

import (
	"fmt"
	"strings"
)

// List is a to-do list. Its identity is the only thing it carries; items point at it.
type List struct {
	ID int64 `json:"id"`
}

// Item is a single to-do entry belonging to exactly one List.
type Item struct {
	ID     int64  `json:"id"`
	ListID int64  `json:"list_id"`
	Text   string `json:"text"`
}

// Stats holds row counts across the store.
type Stats struct {
	Lists int64 `json:"lists"`
	Items int64 `json:"items"`
}

// EmptyItemMessage is shown when a blank item is submitted.
const EmptyItemMessage = "You can't have an empty list item"

// ValidateItemText returns ErrEmptyItem when text is blank after trimming.
func ValidateItemText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyItem
	}
	return nil
}

// ListPath is the URL of the view for list id.
func ListPath(id int64) string {
	return fmt.Sprintf("/lists/%d/", id)
}
