package pagesdomain

import (
	"fmt"
	"strings"
)

// CustomCourse is the selector entry for a course that is neither saved nor
// found nearby.
const CustomCourse = "Custom Course"

// BroadenStep is how far, in meters, each "broaden search" widens the radius.
const BroadenStep = 10000

const (
	MsgNoCoursesNearby = "No courses found nearby. Try broadening the search radius or adding a custom course."
	MsgPopularSpots    = "Popular spots in Flagstaff include: Thorpe Park (18 holes, city course with pines), " +
		"McPherson Park (24 holes, wooded with elevation and views of San Francisco Peaks), " +
		"Fort Tuthill County Park (18 holes, free public course in historic park), " +
		"Northern Arizona University Campus (9 holes, campus-friendly), " +
		"Little America Hotel (9 holes, resort-style), " +
		"and Arizona Snowbowl (18 holes, mountain terrain with views, seasonal). " +
		"Check UDisc for maps and latest conditions."
	MsgEnableGPS = "Enable GPS for live location and nearby courses."
)

// CourseOptions merges course name lists in order, dropping blanks and
// duplicates, and appends CustomCourse.
func CourseOptions(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, names := range lists {
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" || n == CustomCourse {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return append(out, CustomCourse)
}

// BroadenedRadius is the radius the next "broaden search" would use.
func BroadenedRadius(radius int) int {
	return radius + BroadenStep
}

// NoCoursesMessage is shown on the map page when a search finds nothing.
func NoCoursesMessage(radius int) string {
	return fmt.Sprintf("%s Next search radius: %d m. %s", MsgNoCoursesNearby, BroadenedRadius(radius), MsgPopularSpots)
}
