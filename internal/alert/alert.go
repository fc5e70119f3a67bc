// Package alert decides between alert and status presentation for a
// selected offer and renders the text. Pure formatting, no side effects.
package alert

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farewatch/farewatch/internal/offer"
)

// Result is the outcome of evaluating one selected offer against the
// configured ceiling.
type Result struct {
	// Triggered is true when the price is strictly below the ceiling.
	Triggered bool
	Text      string
}

// Evaluate picks alert mode when price < ceiling, else a terse status line.
// dest is the route key used for the status line; departureDate feeds the
// booking deep link.
func Evaluate(s offer.Summary, ceiling decimal.Decimal, dest, departureDate string) Result {
	if s.Price.LessThan(ceiling) {
		return Result{Triggered: true, Text: renderAlert(s, departureDate)}
	}
	return Result{
		Text: fmt.Sprintf("%s: %s %s (%s)", dest, s.Price.String(), s.Currency, s.CarrierName),
	}
}

func renderAlert(s offer.Summary, departureDate string) string {
	var b strings.Builder
	b.WriteString("PRICE ALERT\n")
	fmt.Fprintf(&b, "route: %s -> %s\n", s.Origin, s.Destination)
	fmt.Fprintf(&b, "price: %s %s\n", s.Price.String(), s.Currency)
	fmt.Fprintf(&b, "airline: %s - flight %s\n", s.CarrierName, s.FlightNumber)
	fmt.Fprintf(&b, "departure: %s\n", s.Departure)
	fmt.Fprintf(&b, "arrival: %s\n", s.Arrival)
	fmt.Fprintf(&b, "duration: %s\n", HumanDuration(s.Duration))
	fmt.Fprintf(&b, "stops: %d\n", s.Stops)
	fmt.Fprintf(&b, "book: %s", DeepLink(s.Origin, s.Destination, departureDate))
	return b.String()
}

// HumanDuration turns an ISO-8601 duration like "PT11H30M" into "11h30m".
func HumanDuration(iso string) string {
	return strings.ToLower(strings.TrimPrefix(iso, "PT"))
}

// DeepLink is the public Google Flights page for manual booking lookup.
func DeepLink(origin, destination, departureDate string) string {
	return fmt.Sprintf("https://www.google.com/flights?hl=es#flt=%s.%s.%s", origin, destination, departureDate)
}
