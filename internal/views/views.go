// Package views computes derived read views over the entity cache.
// Every helper is a pure function: it takes the current cache slices and
// returns a fresh filtered/sorted slice, recomputed on every call.
package views

import (
	"sort"
	"strings"
	"time"

	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/sanitize"
	"github.com/samber/lo"
)

// CategoryAll is the sentinel category value meaning "no filter"
const CategoryAll = "all"

// StandaloneDars returns dars that are not part of any series
func StandaloneDars(dars []models.Dars) []models.Dars {
	return lo.Filter(dars, func(d models.Dars, _ int) bool {
		return d.SeriesID == ""
	})
}

// DarsInSeries returns the member dars of a series ordered by their
// position in the series
func DarsInSeries(dars []models.Dars, seriesID string) []models.Dars {
	members := lo.Filter(dars, func(d models.Dars, _ int) bool {
		return d.SeriesID == seriesID
	})
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].SeriesOrder < members[j].SeriesOrder
	})
	return members
}

// SearchDars matches a term case-insensitively against title and description
func SearchDars(dars []models.Dars, term string) []models.Dars {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return dars
	}
	return lo.Filter(dars, func(d models.Dars, _ int) bool {
		return strings.Contains(strings.ToLower(d.Title), term) ||
			strings.Contains(strings.ToLower(d.Description), term)
	})
}

// SearchQuestions matches a term case-insensitively against title and
// the tag-stripped rich-text content
func SearchQuestions(questions []models.Question, term string) []models.Question {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return questions
	}
	return lo.Filter(questions, func(q models.Question, _ int) bool {
		return strings.Contains(strings.ToLower(q.Title), term) ||
			strings.Contains(strings.ToLower(sanitize.StripTags(q.Content)), term)
	})
}

// FilterDarsByCategory filters dars by category; "all" means no filter
func FilterDarsByCategory(dars []models.Dars, category string) []models.Dars {
	if isAllCategories(category) {
		return dars
	}
	return lo.Filter(dars, func(d models.Dars, _ int) bool {
		return d.Category == category
	})
}

// FilterQuestionsByCategory filters questions by category; "all" means no filter
func FilterQuestionsByCategory(questions []models.Question, category string) []models.Question {
	if isAllCategories(category) {
		return questions
	}
	return lo.Filter(questions, func(q models.Question, _ int) bool {
		return q.Category == category
	})
}

// FilterEventsByCategory filters events by category; "all" means no filter
func FilterEventsByCategory(events []models.Event, category string) []models.Event {
	if isAllCategories(category) {
		return events
	}
	return lo.Filter(events, func(e models.Event, _ int) bool {
		return e.Category == category
	})
}

func isAllCategories(category string) bool {
	return category == "" || strings.EqualFold(category, CategoryAll)
}

// RandomDars samples up to n distinct dars, reshuffled on every call.
// Repeated calls can return different results; call sites use it once
// per view mount.
func RandomDars(dars []models.Dars, n int) []models.Dars {
	if n <= 0 {
		return nil
	}
	return lo.Samples(dars, n)
}

// SavedFor returns a user's saved items for one list
func SavedFor(items []models.SavedItem, userID string, listType models.ListType) []models.SavedItem {
	return lo.Filter(items, func(item models.SavedItem, _ int) bool {
		return item.UserID == userID && item.ListType == listType
	})
}

// IsSaved reports whether a (user, item, list) record exists
func IsSaved(items []models.SavedItem, userID, itemID string, listType models.ListType) bool {
	return lo.SomeBy(items, func(item models.SavedItem) bool {
		return item.UserID == userID && item.ItemID == itemID && item.ListType == listType
	})
}

// UpcomingEvents returns events whose date is not in the past,
// soonest first
func UpcomingEvents(events []models.Event, now time.Time) []models.Event {
	upcoming := lo.Filter(events, func(e models.Event, _ int) bool {
		return !e.EventDate.Before(now)
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].EventDate.Before(upcoming[j].EventDate)
	})
	return upcoming
}

// EventsWithinDays returns events falling inside the window
// [now, now+days]; windows in use are 7, 30 and 365 days
func EventsWithinDays(events []models.Event, now time.Time, days int) []models.Event {
	cutoff := now.AddDate(0, 0, days)
	return lo.Filter(events, func(e models.Event, _ int) bool {
		return !e.EventDate.Before(now) && !e.EventDate.After(cutoff)
	})
}

// QuestionsWithinDays returns questions created inside the window
// [now-days, now]
func QuestionsWithinDays(questions []models.Question, now time.Time, days int) []models.Question {
	cutoff := now.AddDate(0, 0, -days)
	return lo.Filter(questions, func(q models.Question, _ int) bool {
		return !q.CreatedAt.Before(cutoff) && !q.CreatedAt.After(now)
	})
}

// RecentlyVisited joins the progress order (most recent first) onto the
// dars cache, returning up to n visited dars
func RecentlyVisited(progress []models.DarsProgress, dars []models.Dars, n int) []models.Dars {
	byID := lo.KeyBy(dars, func(d models.Dars) string { return d.ID })

	visited := make([]models.Dars, 0, n)
	for _, record := range progress {
		if d, ok := byID[record.DarsID]; ok {
			visited = append(visited, d)
			if len(visited) == n {
				break
			}
		}
	}
	return visited
}
