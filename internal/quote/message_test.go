package quote

import (
	"strings"
	"testing"

	"fxpulse/internal/domain"

	"github.com/stretchr/testify/require"
)

var testLabels = domain.Labels{
	Primary:       "Dollar Index ETF (UUP)",
	PrimaryIcon:   "💵",
	Secondary:     "USD/INR Exchange Rate",
	SecondaryIcon: "🇮🇳",
}

func TestComposeMessage_WithPreviousValues(t *testing.T) {
	msg := ComposeMessage(testLabels,
		domain.Quotes{Primary: 101.00, Secondary: 79.5},
		domain.Snapshot{domain.PrimaryKey: 100.00, domain.SecondaryKey: 80.0},
	)

	want := "📈 *Market Update*\n\n" +
		"💵 *Dollar Index ETF (UUP):* `101.00`\n" +
		"🔼 +1.00 (+1.00%)\n\n" +
		"🇮🇳 *USD/INR Exchange Rate:* `79.5000`\n" +
		"🔽 -0.5000 (-0.63%)"
	require.Equal(t, want, msg)
}

func TestComposeMessage_FirstRunOmitsChanges(t *testing.T) {
	msg := ComposeMessage(testLabels, domain.Quotes{Primary: 28.41, Secondary: 83.1245}, domain.Snapshot{})

	want := "📈 *Market Update*\n\n" +
		"💵 *Dollar Index ETF (UUP):* `28.41`\n\n" +
		"🇮🇳 *USD/INR Exchange Rate:* `83.1245`"
	require.Equal(t, want, msg)
	require.NotContains(t, msg, upIndicator)
	require.NotContains(t, msg, downIndicator)
}

func TestComposeMessage_PartialSnapshot(t *testing.T) {
	msg := ComposeMessage(testLabels, domain.Quotes{Primary: 28.41, Secondary: 83.1245}, domain.Snapshot{domain.SecondaryKey: 83.0})

	require.Contains(t, msg, "`28.41`\n\n")
	require.Contains(t, msg, "`83.1245`\n🔼 +0.1245 (+0.15%)")
	require.Equal(t, 1, strings.Count(msg, upIndicator))
}

func TestComposeMessage_NilSnapshot(t *testing.T) {
	msg := ComposeMessage(testLabels, domain.Quotes{Primary: 1, Secondary: 2}, nil)
	require.Contains(t, msg, "`1.00`")
	require.Contains(t, msg, "`2.0000`")
}

func TestComposeMessage_ZeroPreviousIsPresent(t *testing.T) {
	msg := ComposeMessage(testLabels, domain.Quotes{Primary: 0.5, Secondary: 0}, domain.Snapshot{domain.PrimaryKey: 0, domain.SecondaryKey: 0})

	require.Contains(t, msg, "`0.50`\n🔼 +0.50 (n/a)")
	require.Contains(t, msg, "`0.0000`\n🔼 +0.0000 (n/a)")
}

func TestFormatChange(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		places   int32
		want     string
	}{
		{name: "up", current: 101, previous: 100, places: 2, want: "🔼 +1.00 (+1.00%)"},
		{name: "down", current: 79.5, previous: 80, places: 4, want: "🔽 -0.5000 (-0.63%)"},
		{name: "unchanged counts as up", current: 28.41, previous: 28.41, places: 2, want: "🔼 +0.00 (+0.00%)"},
		{name: "tiny drop keeps its sign", current: 83.12449, previous: 83.1245, places: 4, want: "🔽 -0.0000 (-0.00%)"},
		{name: "exchange rate precision", current: 83.1245, previous: 82.9, places: 4, want: "🔼 +0.2245 (+0.27%)"},
		{name: "half rounds away from zero", current: 100.125, previous: 100, places: 2, want: "🔼 +0.13 (+0.13%)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FormatChange(ComputeChange(tc.current, tc.previous), tc.places))
		})
	}
}

func TestComputeChange(t *testing.T) {
	c := ComputeChange(101, 100)
	require.True(t, c.Up())
	require.True(t, c.HasPercent)
	require.Equal(t, "1", c.Delta.String())
	require.Equal(t, "1", c.Percent.String())

	c = ComputeChange(79.5, 80)
	require.False(t, c.Up())
	require.Equal(t, "-0.5", c.Delta.String())
	require.Equal(t, "-0.625", c.Percent.String())

	c = ComputeChange(5, 0)
	require.False(t, c.HasPercent)
	require.True(t, c.Up())
}
