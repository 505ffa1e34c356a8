package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"realestate-agent/internal/model"
)

// matcher inspects a lowercased query and reports a value when it applies
type matcher[T any] func(query string) (T, bool)

// firstMatch returns the value of the first matcher that applies, in order
func firstMatch[T any](matchers []matcher[T], query string) (T, bool) {
	for _, m := range matchers {
		if v, ok := m(query); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// containsAny builds a matcher yielding value when any keyword is a substring
func containsAny[T any](value T, keywords ...string) matcher[T] {
	return func(query string) (T, bool) {
		for _, kw := range keywords {
			if strings.Contains(query, kw) {
				return value, true
			}
		}
		var zero T
		return zero, false
	}
}

// typeSynonyms is scanned in declared order. "villa" resolves to house even
// though villa is also an enumerated type of its own.
var typeSynonyms = []matcher[model.PropertyType]{
	containsAny(model.PropertyTypeFlat, "flat", "apartment", "bhk"),
	containsAny(model.PropertyTypeHouse, "house", "villa", "bungalow"),
	containsAny(model.PropertyTypePlot, "plot", "land"),
	containsAny(model.PropertyTypeShop, "shop", "commercial", "showroom"),
	containsAny(model.PropertyTypeOffice, "office", "workspace"),
}

var bedroomPattern = regexp.MustCompile(`(\d+)\s*bhk`)

var bedroomRules = []matcher[int]{
	func(query string) (int, bool) {
		m := bedroomPattern.FindStringSubmatch(query)
		if m == nil {
			return 0, false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	},
}

// priceUnits maps the unit word of a price phrase to its multiplier
var priceUnits = map[string]int64{
	"thousand": 1_000,
	"lakh":     100_000,
	"crore":    10_000_000,
}

var pricePhrases = []matcher[int64]{
	pricePhrase(`(?i)under\s*(\d+)\s*(lakh|crore|thousand)`),
	pricePhrase(`(?i)below\s*(\d+)\s*(lakh|crore|thousand)`),
	pricePhrase(`(?i)(\d+)\s*(lakh|crore|thousand)\s*budget`),
}

func pricePhrase(pattern string) matcher[int64] {
	re := regexp.MustCompile(pattern)
	return func(query string) (int64, bool) {
		m := re.FindStringSubmatch(query)
		if m == nil {
			return 0, false
		}
		amount, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, false
		}
		mult := priceUnits[strings.ToLower(m[2])]
		if amount > math.MaxInt64/mult {
			return 0, false
		}
		return amount * mult, true
	}
}

// knownLocations is checked in this order, not by longest match, so "goa"
// shadows "north goa" and "south goa" whenever both occur.
var knownLocations = []string{
	"goa", "north goa", "south goa", "panaji", "margao", "mapusa",
	"ponda", "vasco", "calangute", "baga", "anjuna",
}

var locationRules = func() []matcher[string] {
	rules := make([]matcher[string], len(knownLocations))
	for i, loc := range knownLocations {
		rules[i] = containsAny(loc, loc)
	}
	return rules
}()

// Rent wins over sale when both words appear.
var intentRules = []matcher[bool]{
	containsAny(false, "rent", "rental"),
	containsAny(true, "buy", "sale", "purchase"),
}

// ParseQuery maps free text onto a structured filter. It never fails: a
// dimension with no recognizable signal is simply left unset.
func ParseQuery(query string) model.Filter {
	q := strings.ToLower(query)
	filter := model.NewFilter()

	if t, ok := firstMatch(typeSynonyms, q); ok {
		filter.Type = &t
	}
	if n, ok := firstMatch(bedroomRules, q); ok {
		filter.Bedrooms = &n
	}
	if price, ok := firstMatch(pricePhrases, q); ok {
		filter.Price = &model.PriceCeiling{LTE: price}
	}
	if loc, ok := firstMatch(locationRules, q); ok {
		filter.Location = &loc
	}
	if forSale, ok := firstMatch(intentRules, q); ok {
		filter.ForSale = &forSale
	}

	return filter
}
