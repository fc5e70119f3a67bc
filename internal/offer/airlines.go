package offer

// airlineNames maps the carrier codes seen on the watched routes to their
// display names. Unknown codes fall back to the code itself.
var airlineNames = map[string]string{
	"AC": "Air Canada",
	"IB": "Iberia",
	"AF": "Air France",
	"KL": "KLM",
	"LH": "Lufthansa",
	"AA": "American Airlines",
	"UA": "United",
	"DL": "Delta",
	"GP": "Gambia Bird Airlines",
}

func CarrierName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code
}
