// Package events defines the domain event topics and their payloads.
package events

import "time"

// Topic names
const (
	RoundLoggedTopic     = "chainchaser.round.logged"
	ReviewSubmittedTopic = "chainchaser.review.submitted"
	LayoutEditedTopic    = "chainchaser.course.layout.edited"
)

// RoundLoggedPayload is published after a round is persisted.
type RoundLoggedPayload struct {
	RoundID   int64     `json:"round_id"`
	Username  string    `json:"username"`
	Course    string    `json:"course"`
	Date      string    `json:"date"`
	Holes     int       `json:"holes"`
	Distances []float64 `json:"distances"`
	LoggedAt  time.Time `json:"logged_at"`
}

// ReviewSubmittedPayload is published after a review is stored.
type ReviewSubmittedPayload struct {
	ReviewID int64  `json:"review_id"`
	Username string `json:"username"`
	Course   string `json:"course"`
	Rating   int    `json:"rating"`
	Flagged  bool   `json:"flagged"`
}

// LayoutEditedPayload is published after a developer layout edit commits.
type LayoutEditedPayload struct {
	Course        string `json:"course"`
	Username      string `json:"username"`
	Hole          int    `json:"hole"`
	Point         string `json:"point"`
	BasketID      int    `json:"basket_id,omitempty"`
	LayoutVersion int    `json:"layout_version"`
}
