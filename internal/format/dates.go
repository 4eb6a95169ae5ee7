package format

import (
	"strings"
	"sync"
	"time"

	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/internal/domain"
)

const (
	dateLayout     = "Jan 02, 2006"
	dateTimeLayout = "Jan 02, 2006, 03:04 PM"
)

var (
	locationMu      sync.RWMutex
	displayLocation = time.UTC
)

// SetDisplayLocation changes the zone dates are rendered in. A nil location
// resets to UTC.
func SetDisplayLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	locationMu.Lock()
	displayLocation = loc
	locationMu.Unlock()
}

// DisplayLocation returns the zone dates are rendered in.
func DisplayLocation() *time.Location {
	locationMu.RLock()
	defer locationMu.RUnlock()
	return displayLocation
}

// FormatDate renders a timestamp as "Mar 05, 2024".
func FormatDate(value string) string {
	return formatWith(value, dateLayout)
}

// FormatDateTime renders a timestamp as "Mar 05, 2024, 02:30 PM".
func FormatDateTime(value string) string {
	return formatWith(value, dateTimeLayout)
}

func formatWith(value, layout string) string {
	if strings.TrimSpace(value) == "" {
		return constants.Markers.Unknown
	}
	t, ok := domain.ParseTimestamp(value)
	if !ok {
		return value
	}
	return t.In(DisplayLocation()).Format(layout)
}

// Months is the choice list for the monthly figures job form.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
