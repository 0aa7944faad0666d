package humanreadable

import (
	"strconv"
	"strings"
	"time"
)

// Second renders a duration in whole seconds with Russian unit letters,
// e.g. 1д2ч3м4с. Zero units are skipped; negative durations render as 0с.
type Second time.Duration

var units = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "д"},
	{time.Hour, "ч"},
	{time.Minute, "м"},
	{time.Second, "с"},
}

func (sec Second) String() string {
	var b strings.Builder

	rest := time.Duration(sec)
	for _, u := range units {
		if rest < u.size {
			continue
		}

		b.WriteString(strconv.FormatInt(int64(rest/u.size), 10))
		b.WriteString(u.suffix)
		rest %= u.size
	}

	if b.Len() == 0 {
		return "0с"
	}

	return b.String()
}
