package models

import "time"

// MonthDuration is the fixed month unit used for subscription extension
// math. Extensions always add whole 31-day blocks rather than calendar
// months; renewal dates drift slightly, but the arithmetic stays exact.
const MonthDuration = 31 * 24 * time.Hour

type Plan struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Price   float64 `json:"price"`
	Months  int     `json:"months"`
	Billing string  `json:"billing"`
}

// Plans is the fixed set of purchasable plans. Plan data is reference data:
// prices and durations come from here, never from a request body.
var Plans = []Plan{
	{ID: "1m", Label: "1 Month", Price: 99, Months: 1, Billing: "Monthly"},
	{ID: "3m", Label: "3 Months", Price: 150, Months: 3, Billing: "Quarterly"},
	{ID: "12m", Label: "12 Months", Price: 500, Months: 12, Billing: "Yearly"},
}

func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
