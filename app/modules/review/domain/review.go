// Package reviewdomain holds review validation and lost-disc detection.
package reviewdomain

import (
	"errors"
	"regexp"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

// LostDiscFlag is stored on reviews whose comment reads like a lost disc
// report.
const LostDiscFlag = "This seems like a lost disc issue, want replacement suggestions?"

var (
	// ErrInvalidRating is returned for a rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrMissingCourse is returned when the review names no course.
	ErrMissingCourse = errors.New("review course is required")
)

var lostDiscPattern = regexp.MustCompile(`(?i)\blost\b.*\bdisc\b|\bdisc\b.*\blost\b|\blose\b.*\bdisc\b`)

// ValidateRating checks the rating bounds.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// FlagLostDisc returns LostDiscFlag when the comment mentions losing a disc.
func FlagLostDisc(comment string) (string, bool) {
	if lostDiscPattern.MatchString(comment) {
		return LostDiscFlag, true
	}
	return "", false
}

// Normalize trims the free-text fields.
func Normalize(course, comment string) (string, string) {
	return strings.TrimSpace(course), strings.TrimSpace(comment)
}
