package amadeus

import "errors"

var (
	// ErrAuth marks a failed client-credentials exchange. The whole poll
	// cycle is skipped when the token cannot be obtained.
	ErrAuth = errors.New("amadeus auth failed")
	// ErrQuery marks a failed or malformed flight-offers response.
	// Non-fatal: the caller logs it and moves to the next route.
	ErrQuery = errors.New("amadeus query failed")
	// ErrNoOffers marks a successful search with an empty result list.
	ErrNoOffers = errors.New("no offers returned")
)
