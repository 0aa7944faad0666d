package sysstats

import (
	"testing"
	"time"

	"github.com/mackerelio/go-osstat/cpu"
	"github.com/mackerelio/go-osstat/memory"
	"github.com/stretchr/testify/require"

	"github.com/fudanchii/lcdrus"
)

func TestFormatAggregates(t *testing.T) {
	prev := &cpu.Stats{User: 100, System: 50, Idle: 850, Total: 1000}
	curr := &cpu.Stats{User: 125, System: 60, Idle: 915, Total: 1100}
	mem := &memory.Stats{
		Total:     8 << 30,
		Available: 4 << 30,
		Cached:    1536 << 20,
		Active:    2 << 30,
		Inactive:  512 << 20,
		Free:      3 << 30,
	}

	line := formatAggregates(prev, curr, mem, 90*time.Minute)

	require.Equal(t, "пам:8.0 GiB, дост:4.0 GiB, кэш:1.5 GiB, акт:2.0 GiB, неакт:512 MiB, своб:3.0 GiB, цп.польз:25.0%, цп.сист:10.0%, цп.прост:65.0%, работа:1ч30м", line)

	_, err := lcdrus.AppendEncode(nil, line)
	require.NoError(t, err)
}

func TestFormatAggregatesIdleCPU(t *testing.T) {
	same := &cpu.Stats{User: 1, System: 1, Idle: 1, Total: 3}
	line := formatAggregates(same, same, &memory.Stats{}, 0)
	require.Contains(t, line, "цп.польз:0.0%")
}

func TestDateTime(t *testing.T) {
	require := require.New(t)

	dt, err := NewDateTime("UTC", 100, 20)
	require.NoError(err)
	dt.now = func() time.Time {
		return time.Date(2024, time.March, 4, 12, 34, 56, 0, time.UTC)
	}

	line := dt.String()
	require.Equal("04.03.2024  12:34:56", line)
	require.Equal(20, lcdrus.Length(line))

	dt.callCounter = 400
	line = dt.String()
	require.Equal("Понедельник 12:34:56", line)
	require.Equal(20, lcdrus.Length(line))

	_, err = lcdrus.AppendEncode(nil, line)
	require.NoError(err)
}

func TestDateTimeBadZone(t *testing.T) {
	_, err := NewDateTime("Nowhere/Atlantis", 100, 20)
	require.Error(t, err)
}

func TestWeekdaysFit(t *testing.T) {
	for _, name := range weekdays {
		require.LessOrEqual(t, lcdrus.Length(name), 12)
		require.NotPanics(t, func() { lcdrus.Literal(name) })
	}
}

func TestDescribeIfaces(t *testing.T) {
	got := describeIfaces([]ifaceAddrs{
		{name: "lo", addrs: []string{"127.0.0.1/8"}},
		{name: "eth0", addrs: []string{"192.168.1.2/24", "fe80::1/64"}},
		{name: "wlan0"},
		{name: "tun0", addrs: []string{"10.0.0.1/32"}},
	})

	require.Equal(t, "сеть: eth0 ~ 192.168.1.2/24 | tun0 ~ 10.0.0.1/32", got)
	require.Equal(t, "сеть: нет", describeIfaces(nil))
}
