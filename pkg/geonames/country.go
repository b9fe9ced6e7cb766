package geonames

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Country identifies one upstream per-country dataset. The zero value
// is CountryAll, the combined "allCountries" postal dataset.
type Country int

const (
	CountryAll Country = iota
	CountryAustralia
	CountryAustria
	CountryBelgium
	CountryBrazil
	CountryCanada
	CountryCanadaFull
	CountryDenmark
	CountryFinland
	CountryFrance
	CountryGermany
	CountryGreatBritain
	CountryGreatBritainFull
	CountryIndia
	CountryIreland
	CountryItaly
	CountryJapan
	CountryMexico
	CountryNetherlands
	CountryNetherlandsFull
	CountryNewZealand
	CountryNorway
	CountryPoland
	CountryPortugal
	CountrySpain
	CountrySweden
	CountrySwitzerland
	CountryUnitedKingdomFull
	CountryUnitedStates
)

// countryIDs maps countries to their canonical upstream identifiers,
// used verbatim in download URLs, archive entry names, and cache keys.
var countryIDs = map[Country]string{
	CountryAll:               "allCountries",
	CountryAustralia:         "AU",
	CountryAustria:           "AT",
	CountryBelgium:           "BE",
	CountryBrazil:            "BR",
	CountryCanada:            "CA",
	CountryCanadaFull:        "CA_full",
	CountryDenmark:           "DK",
	CountryFinland:           "FI",
	CountryFrance:            "FR",
	CountryGermany:           "DE",
	CountryGreatBritain:      "GB",
	CountryGreatBritainFull:  "GB_full",
	CountryIndia:             "IN",
	CountryIreland:           "IE",
	CountryItaly:             "IT",
	CountryJapan:             "JP",
	CountryMexico:            "MX",
	CountryNetherlands:       "NL",
	CountryNetherlandsFull:   "NL_full",
	CountryNewZealand:        "NZ",
	CountryNorway:            "NO",
	CountryPoland:            "PL",
	CountryPortugal:          "PT",
	CountrySpain:             "ES",
	CountrySweden:            "SE",
	CountrySwitzerland:       "CH",
	CountryUnitedKingdomFull: "UK_full",
	CountryUnitedStates:      "US",
}

// ID returns the canonical upstream identifier, e.g. "GB" or "GB_full".
func (c Country) ID() string { return countryIDs[c] }

// String implements fmt.Stringer.
func (c Country) String() string { return c.ID() }

// Variant classifies a country's upstream file layout.
type Variant int

const (
	// VariantStandard countries publish a .zip postal archive and a
	// gazetteer dump.
	VariantStandard Variant = iota
	// VariantExtendedCSVOnly countries (the four "*_full" extended
	// datasets) publish their postal archive as .csv.zip and have no
	// gazetteer dump at all. This is a fixed upstream constraint, not
	// configuration.
	VariantExtendedCSVOnly
)

// Variant reports the upstream layout for this country. The result
// feeds both URL construction and gazetteer feasibility.
func (c Country) Variant() Variant {
	switch c {
	case CountryGreatBritainFull, CountryUnitedKingdomFull, CountryNetherlandsFull, CountryCanadaFull:
		return VariantExtendedCSVOnly
	default:
		return VariantStandard
	}
}

// ParseCountry resolves an upstream identifier (case-insensitive) back
// to a Country.
func ParseCountry(id string) (Country, error) {
	for c, s := range countryIDs {
		if strings.EqualFold(s, id) {
			return c, nil
		}
	}
	return 0, eris.Errorf("geonames: unknown country %q", id)
}

// Kind selects one of the two dataset kinds published per country.
type Kind int

const (
	KindPostal Kind = iota
	KindGazetteer
)

// String implements fmt.Stringer; the result doubles as the cache key
// prefix for the kind.
func (k Kind) String() string {
	if k == KindGazetteer {
		return "gazetteer"
	}
	return "postal"
}

// ParseKind resolves a dataset kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "postal":
		return KindPostal, nil
	case "gazetteer":
		return KindGazetteer, nil
	default:
		return 0, eris.Errorf("geonames: unknown dataset kind %q", s)
	}
}
