package domain

import "strings"

// unitsPerUSD is an approximate, fixed conversion rate applied to every
// non-USD currency. It is not a live quote.
const unitsPerUSD = 80.0

// Location is where a college is based.
type Location struct {
	Country string `json:"country" bson:"country"`
	State   string `json:"state" bson:"state"`
	City    string `json:"city" bson:"city"`
}

// Fees are expressed in the college's own currency.
type Fees struct {
	Tuition  float64 `json:"tuition" bson:"tuition"`
	Total    float64 `json:"total" bson:"total"`
	Currency string  `json:"currency" bson:"currency"`
}

// Ranking values are positive integers; lower is better.
type Ranking struct {
	Global   int `json:"global" bson:"global"`
	National int `json:"national" bson:"national"`
}

// College is a listing record of the directory.
type College struct {
	ID              string   `json:"id" bson:"_id"`
	Name            string   `json:"name" bson:"name"`
	Location        Location `json:"location" bson:"location"`
	Type            string   `json:"type,omitempty" bson:"type,omitempty"`
	EstablishedYear int      `json:"established_year,omitempty" bson:"establishedYear,omitempty"`
	Fees            Fees     `json:"fees" bson:"fees"`
	Programs        []string `json:"programs" bson:"programs"`
	Ranking         Ranking  `json:"ranking" bson:"ranking"`
	AcceptanceRate  float64  `json:"acceptance_rate" bson:"acceptanceRate"`
	Image           string   `json:"image,omitempty" bson:"image,omitempty"`
	Description     string   `json:"description,omitempty" bson:"description,omitempty"`
}

// TotalFeeUSD returns the total fee normalized to approximate USD. Fees in
// any currency other than USD are divided by unitsPerUSD.
func (c *College) TotalFeeUSD() float64 {
	if strings.EqualFold(strings.TrimSpace(c.Fees.Currency), "USD") {
		return c.Fees.Total
	}
	return c.Fees.Total / unitsPerUSD
}

// OffersProgram reports whether any program tag contains term, ignoring case.
func (c *College) OffersProgram(term string) bool {
	term = strings.ToLower(term)
	for _, p := range c.Programs {
		if strings.Contains(strings.ToLower(p), term) {
			return true
		}
	}
	return false
}
