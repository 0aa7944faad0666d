package sysstats

import (
	"time"

	"github.com/fudanchii/lcdrus/internal/display"
)

const (
	ONE_SECOND_IN_MS  = 1000
	ONE_MINUTE_PERIOD = 60
)

var weekdays = [...]string{
	time.Sunday:    "Воскресенье",
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
}

// DateTime renders the clock line. For the last showDoWPeriod seconds of
// every minute the date is replaced by the day of week.
type DateTime struct {
	callCounter   int
	renderRate    int
	showDoWPeriod int
	timezone      *time.Location
	now           func() time.Time
}

func NewDateTime(timezone string, renderRate, showDoWPeriod int) (*DateTime, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	return &DateTime{
		renderRate:    renderRate,
		showDoWPeriod: showDoWPeriod,
		timezone:      loc,
		now:           time.Now,
	}, nil
}

func (dt *DateTime) String() string {
	var result string

	now := dt.now().In(dt.timezone)

	waitUnit := ONE_SECOND_IN_MS / dt.renderRate
	startDoWAt := (ONE_MINUTE_PERIOD - dt.showDoWPeriod) * waitUnit
	if dt.callCounter >= startDoWAt {
		if dt.callCounter > ONE_MINUTE_PERIOD*waitUnit {
			dt.callCounter = 0
		}

		result = display.Pad(weekdays[now.Weekday()], 12) + now.Format("15:04:05")
	} else {
		result = now.Format("02.01.2006  15:04:05")
	}

	dt.callCounter++

	return result
}
