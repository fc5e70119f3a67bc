package amadeus

import "github.com/shopspring/decimal"

// SearchQuery is one flight-offers request. Immutable per request.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Currency      string
	Max           int
}

// Offer is a priced, bookable itinerary option as returned by the
// flight-offers endpoint. One itinerary for a one-way search, two for a
// round trip.
type Offer struct {
	Price                  Price             `json:"price"`
	Itineraries            []Itinerary       `json:"itineraries"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings"`
}

type Price struct {
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// Itinerary is one direction of travel: an ordered sequence of segments
// plus an ISO-8601 total duration such as "PT11H30M".
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Segment is a single flight leg on one carrier.
type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

type Endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type TravelerPricing struct {
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment"`
}

type FareDetail struct {
	Cabin               string      `json:"cabin"`
	IncludedCheckedBags CheckedBags `json:"includedCheckedBags"`
}

type CheckedBags struct {
	Quantity int `json:"quantity"`
}
