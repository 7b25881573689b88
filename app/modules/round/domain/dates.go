package rounddomain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout is the stored round date format.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for date input that cannot be recognized.
var ErrInvalidDate = errors.New("could not recognize round date")

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// DateParser turns user input into a YYYY-MM-DD round date.
type DateParser struct {
	clock Clock
	w     *when.Parser
}

// NewDateParser creates a parser resolving relative input against clock.
func NewDateParser(clock Clock) *DateParser {
	if clock == nil {
		clock = SystemClock{}
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &DateParser{clock: clock, w: w}
}

// Parse accepts an ISO date, natural language ("yesterday", "last
// saturday") or empty input meaning today.
func (p *DateParser) Parse(input string) (string, error) {
	now := p.clock.Now()
	input = strings.TrimSpace(input)
	if input == "" {
		return now.Format(DateLayout), nil
	}

	if t, err := time.ParseInLocation(DateLayout, input, now.Location()); err == nil {
		return t.Format(DateLayout), nil
	}

	r, err := p.w.Parse(strings.ToLower(input), now)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidDate, input, err)
	}
	if r == nil {
		return "", fmt.Errorf("%w %q", ErrInvalidDate, input)
	}
	return r.Time.Format(DateLayout), nil
}
