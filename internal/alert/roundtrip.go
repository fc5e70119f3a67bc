package alert

import (
	"fmt"
	"strings"

	"github.com/farewatch/farewatch/internal/amadeus"
	"github.com/farewatch/farewatch/internal/offer"
)

// RenderRoundTrip renders every itinerary of an offer with per-leg detail,
// then cabin class, included checked bags, and the total price. Used for
// the bot's /search reply; works for one-way offers too.
func RenderRoundTrip(o amadeus.Offer) string {
	var b strings.Builder
	for i, it := range offer.Itineraries(o) {
		direction := "OUTBOUND"
		if i > 0 {
			direction = "RETURN"
		}
		fmt.Fprintf(&b, "PRICE ALERT (%s)\n", direction)
		for _, leg := range it.Legs {
			fmt.Fprintf(&b, "route: %s -> %s\n", leg.Origin, leg.Destination)
			fmt.Fprintf(&b, "airline: %s - flight %s\n", offer.CarrierName(leg.Carrier), leg.FlightNumber)
			fmt.Fprintf(&b, "departure: %s\n", leg.Departure)
			fmt.Fprintf(&b, "arrival: %s\n", leg.Arrival)
		}
		fmt.Fprintf(&b, "total duration: %s\n", HumanDuration(it.Duration))
		fmt.Fprintf(&b, "stops: %d\n\n", it.Stops)
	}
	if cabin, bags, ok := offer.CabinBags(o); ok {
		fmt.Fprintf(&b, "cabin: %s | checked bags: %d\n", cabin, bags)
	}
	fmt.Fprintf(&b, "total price: %s %s", o.Price.Total.String(), o.Price.Currency)
	return b.String()
}
