package remote

import (
	"context"
	"fmt"
)

// Team represents a team the current identity belongs to
type Team struct {
	ID   string `json:"$id"`
	Name string `json:"name"`
}

// teamList is the wire shape of a team list response
type teamList struct {
	Total int    `json:"total"`
	Teams []Team `json:"teams"`
}

// ListTeams returns the teams the current session's identity belongs to
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var list teamList
	if err := c.do(ctx, "GET", "/teams", nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return list.Teams, nil
}
