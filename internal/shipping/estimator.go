package shipping

import (
	"math"
	"strings"
	"time"
)

// Address is the subset of an address the estimator interprets. State is a
// two-letter USPS code.
type Address struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// RateQuote is one carrier/service estimate.
type RateQuote struct {
	Carrier           string    `json:"carrier"`
	Service           string    `json:"service"`
	EstimatedDays     int       `json:"estimated_days"`
	PriceCents        int64     `json:"price_cents"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

// catalogEntry is a fixed carrier/service tuple with base price and transit.
type catalogEntry struct {
	carrier        string
	service        string
	basePriceCents int64
	baseDays       int
}

var rateCatalog = []catalogEntry{
	{carrier: "USPS", service: "Ground Advantage", basePriceCents: 599, baseDays: 5},
	{carrier: "USPS", service: "Priority Mail", basePriceCents: 899, baseDays: 3},
	{carrier: "UPS", service: "Ground", basePriceCents: 749, baseDays: 4},
	{carrier: "FedEx", service: "Express Saver", basePriceCents: 1299, baseDays: 2},
}

// distanceMultiplier picks the price factor for a route. Checks run in
// priority order and the first match wins: same state 1.0, adjacent states
// 1.2, same census region 1.5, everything else 2.0.
func distanceMultiplier(fromState, toState string) float64 {
	from := strings.ToUpper(strings.TrimSpace(fromState))
	to := strings.ToUpper(strings.TrimSpace(toState))

	switch {
	case from == to && from != "":
		return 1.0
	case statesAdjacent(from, to):
		return 1.2
	case sameRegion(from, to):
		return 1.5
	default:
		return 2.0
	}
}

// weightMultiplier charges per pound, rounding any partial pound up, with a
// minimum multiplier of 1.
func weightMultiplier(weightOz float64) float64 {
	m := math.Ceil(weightOz / 16)
	if m < 1 {
		return 1
	}
	return m
}

// EstimateRates quotes every catalog service for a route and weight.
// now anchors the delivery-date estimates.
func EstimateRates(from, to Address, weightOz float64, now time.Time) []RateQuote {
	dist := distanceMultiplier(from.State, to.State)
	weight := weightMultiplier(weightOz)

	quotes := make([]RateQuote, 0, len(rateCatalog))
	for _, entry := range rateCatalog {
		price := int64(math.Round(float64(entry.basePriceCents) * dist * weight))
		quotes = append(quotes, RateQuote{
			Carrier:           entry.carrier,
			Service:           entry.service,
			EstimatedDays:     entry.baseDays,
			PriceCents:        price,
			EstimatedDelivery: estimateDelivery(now, entry.baseDays),
		})
	}
	return quotes
}

// estimateDelivery adds transit days as calendar days, then rolls the final
// landing day forward past a weekend. Weekends passed through mid-transit
// are not skipped, only a Saturday/Sunday arrival.
func estimateDelivery(now time.Time, days int) time.Time {
	delivery := now.AddDate(0, 0, days)
	for delivery.Weekday() == time.Saturday || delivery.Weekday() == time.Sunday {
		delivery = delivery.AddDate(0, 0, 1)
	}
	return delivery
}
