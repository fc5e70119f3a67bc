package alert

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farewatch/farewatch/internal/amadeus"
)

func TestRenderRoundTrip(t *testing.T) {
	o := amadeus.Offer{
		Price: amadeus.Price{Total: decimal.RequireFromString("812.40"), Currency: "USD"},
		Itineraries: []amadeus.Itinerary{
			{
				Duration: "PT11H30M",
				Segments: []amadeus.Segment{{
					Departure:   amadeus.Endpoint{IATACode: "LAX", At: "2025-10-23T10:15:00"},
					Arrival:     amadeus.Endpoint{IATACode: "CDG", At: "2025-10-24T06:45:00"},
					CarrierCode: "AF",
					Number:      "77",
				}},
			},
			{
				Duration: "PT12H10M",
				Segments: []amadeus.Segment{{
					Departure:   amadeus.Endpoint{IATACode: "CDG", At: "2025-10-29T11:00:00"},
					Arrival:     amadeus.Endpoint{IATACode: "LAX", At: "2025-10-29T14:30:00"},
					CarrierCode: "AF",
					Number:      "66",
				}},
			},
		},
		TravelerPricings: []amadeus.TravelerPricing{{
			FareDetailsBySegment: []amadeus.FareDetail{{
				Cabin:               "ECONOMY",
				IncludedCheckedBags: amadeus.CheckedBags{Quantity: 1},
			}},
		}},
	}

	text := RenderRoundTrip(o)
	if !strings.Contains(text, "PRICE ALERT (OUTBOUND)") || !strings.Contains(text, "PRICE ALERT (RETURN)") {
		t.Fatalf("expected both directions: %s", text)
	}
	if !strings.Contains(text, "route: LAX -> CDG") || !strings.Contains(text, "route: CDG -> LAX") {
		t.Fatalf("expected both routes: %s", text)
	}
	if !strings.Contains(text, "cabin: ECONOMY | checked bags: 1") {
		t.Fatalf("expected cabin line: %s", text)
	}
	if !strings.Contains(text, "total price: 812.4 USD") {
		t.Fatalf("expected total price line: %s", text)
	}
	if !strings.Contains(text, "total duration: 11h30m") {
		t.Fatalf("expected humanized duration: %s", text)
	}
}
