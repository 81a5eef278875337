package quote

import (
	"strings"

	"fxpulse/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	primaryPlaces   int32 = 2
	secondaryPlaces int32 = 4
	percentPlaces   int32 = 2

	upIndicator   = "🔼"
	downIndicator = "🔽"
)

var hundred = decimal.NewFromInt(100)

// Change is the movement of a price against its previous value.
type Change struct {
	Delta   decimal.Decimal
	Percent decimal.Decimal
	// HasPercent is false when the previous value was zero.
	HasPercent bool
}

// Up reports a non-negative move; an unchanged price counts as up.
func (c Change) Up() bool { return c.Delta.Sign() >= 0 }

func ComputeChange(current, previous float64) Change {
	cur := decimal.NewFromFloat(current)
	prev := decimal.NewFromFloat(previous)
	delta := cur.Sub(prev)
	if prev.IsZero() {
		return Change{Delta: delta}
	}
	return Change{
		Delta:      delta,
		Percent:    delta.Div(prev).Mul(hundred),
		HasPercent: true,
	}
}

// ComposeMessage renders the Telegram Markdown update. The change line of a
// price is omitted when the snapshot holds no previous value for it.
func ComposeMessage(labels domain.Labels, quotes domain.Quotes, previous domain.Snapshot) string {
	var b strings.Builder
	b.WriteString("📈 *Market Update*\n\n")
	writePrice(&b, labels.PrimaryIcon, labels.Primary, quotes.Primary, primaryPlaces, previous, domain.PrimaryKey)
	b.WriteString("\n\n")
	writePrice(&b, labels.SecondaryIcon, labels.Secondary, quotes.Secondary, secondaryPlaces, previous, domain.SecondaryKey)
	return b.String()
}

func writePrice(b *strings.Builder, icon, label string, current float64, places int32, previous domain.Snapshot, key string) {
	if icon != "" {
		b.WriteString(icon)
		b.WriteByte(' ')
	}
	b.WriteString("*" + label + ":* `" + decimal.NewFromFloat(current).StringFixed(places) + "`")

	prev, ok := previous.Value(key)
	if !ok {
		return
	}
	b.WriteByte('\n')
	b.WriteString(FormatChange(ComputeChange(current, prev), places))
}

// FormatChange renders e.g. "🔽 -0.5000 (-0.63%)".
func FormatChange(c Change, places int32) string {
	indicator := upIndicator
	if !c.Up() {
		indicator = downIndicator
	}
	percent := "n/a"
	if c.HasPercent {
		percent = signed(c.Percent, percentPlaces) + "%"
	}
	return indicator + " " + signed(c.Delta, places) + " (" + percent + ")"
}

// signed rounds half away from zero and always prints the sign of the unrounded value.
func signed(d decimal.Decimal, places int32) string {
	sign := "+"
	if d.Sign() < 0 {
		sign = "-"
	}
	return sign + d.Abs().StringFixed(places)
}
