// Package offer contains the pure selection and summarization logic applied
// to raw Amadeus offers.
package offer

import (
	"github.com/shopspring/decimal"

	"github.com/farewatch/farewatch/internal/amadeus"
)

// Summary carries the display fields derived from the first itinerary of a
// selected offer.
type Summary struct {
	Price        decimal.Decimal
	Currency     string
	Carrier      string
	CarrierName  string
	Origin       string
	Destination  string
	Departure    string
	Arrival      string
	Duration     string
	Stops        int
	FlightNumber string
}

// Leg is one segment of an itinerary, flattened for display.
type Leg struct {
	Origin       string
	Destination  string
	Carrier      string
	FlightNumber string
	Departure    string
	Arrival      string
}

// ItineraryDetail is one direction of a round trip with its per-leg detail.
type ItineraryDetail struct {
	Legs     []Leg
	Duration string
	Stops    int
}

// Cheapest returns the offer with the strictly minimal total price. Ties
// keep the first-encountered offer. ok is false for an empty list.
func Cheapest(offers []amadeus.Offer) (amadeus.Offer, bool) {
	if len(offers) == 0 {
		return amadeus.Offer{}, false
	}
	best := offers[0]
	for _, o := range offers[1:] {
		if o.Price.Total.LessThan(best.Price.Total) {
			best = o
		}
	}
	return best, true
}

// Summarize derives the display fields of an offer from its first
// itinerary: origin from the first segment, destination and arrival from
// the last, stop count = segments - 1.
func Summarize(o amadeus.Offer) Summary {
	s := Summary{
		Price:    o.Price.Total,
		Currency: o.Price.Currency,
	}
	if len(o.ValidatingAirlineCodes) > 0 {
		s.Carrier = o.ValidatingAirlineCodes[0]
		s.CarrierName = CarrierName(s.Carrier)
	}
	if len(o.Itineraries) == 0 {
		return s
	}
	it := o.Itineraries[0]
	s.Duration = it.Duration
	if len(it.Segments) == 0 {
		return s
	}
	first := it.Segments[0]
	last := it.Segments[len(it.Segments)-1]
	s.Origin = first.Departure.IATACode
	s.Destination = last.Arrival.IATACode
	s.Departure = first.Departure.At
	s.Arrival = last.Arrival.At
	s.Stops = len(it.Segments) - 1
	s.FlightNumber = first.CarrierCode + first.Number
	if s.Carrier == "" {
		s.Carrier = first.CarrierCode
		s.CarrierName = CarrierName(s.Carrier)
	}
	return s
}

// Itineraries flattens every itinerary of an offer for per-leg display.
// Round-trip offers yield two entries, outbound first.
func Itineraries(o amadeus.Offer) []ItineraryDetail {
	details := make([]ItineraryDetail, 0, len(o.Itineraries))
	for _, it := range o.Itineraries {
		d := ItineraryDetail{
			Duration: it.Duration,
			Stops:    len(it.Segments) - 1,
			Legs:     make([]Leg, 0, len(it.Segments)),
		}
		for _, seg := range it.Segments {
			d.Legs = append(d.Legs, Leg{
				Origin:       seg.Departure.IATACode,
				Destination:  seg.Arrival.IATACode,
				Carrier:      seg.CarrierCode,
				FlightNumber: seg.Number,
				Departure:    seg.Departure.At,
				Arrival:      seg.Arrival.At,
			})
		}
		details = append(details, d)
	}
	return details
}

// CabinBags extracts the cabin class and included checked-baggage count
// from the first traveler pricing block. ok is false when the offer does
// not carry pricing detail.
func CabinBags(o amadeus.Offer) (cabin string, bags int, ok bool) {
	if len(o.TravelerPricings) == 0 || len(o.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return "", 0, false
	}
	fd := o.TravelerPricings[0].FareDetailsBySegment[0]
	return fd.Cabin, fd.IncludedCheckedBags.Quantity, true
}
