// Package model holds the request and response shapes of the travel card
// lookup: what clients post, and what the transit API returns for a card.
package model

import "encoding/json"

// TravelCard is the `data.travelCard` object returned by the transit API.
//
// The HTTP response forwards the upstream object verbatim; this type is
// used to read a summary of it for logs and traces.
type TravelCard struct {
	Tickets []Ticket `json:"tickets,omitempty"`
}

// Ticket is one product loaded on a travel card.
type Ticket struct {
	ValidAllZones bool           `json:"validAllZones"`
	ProductName   *ProductName   `json:"productName,omitempty"`
	CarnetDetails *CarnetDetails `json:"carnetDetails,omitempty"`
	Zones         []Zone         `json:"zones,omitempty"`
}

type ProductName struct {
	Name string `json:"name"`
}

// CarnetDetails describes a prepaid multi-ride product: how many rides are
// left, until when they can be used, and the rides activated so far.
type CarnetDetails struct {
	RemainingConsumptions       int           `json:"remainingConsumptions"`
	LastPossibleConsumptionDate string        `json:"lastPossibleConsumptionDate"`
	ConsumptionLog              []Consumption `json:"consumptionLog,omitempty"`
}

// Consumption is one activation of a carnet.
type Consumption struct {
	NumberOfConsumptions int      `json:"numberOfConsumptions"`
	Validity             Validity `json:"validity"`
}

type Validity struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Zone struct {
	Name string `json:"name"`
}

// Summary is a flat view of a travel card used for log fields and trace
// attributes.
type Summary struct {
	Tickets               int
	CarnetTickets         int
	RemainingConsumptions int
}

// Summarize decodes raw as a TravelCard and counts its contents. ok is false
// when raw does not have the expected shape; the upstream object is still
// forwarded to the client in that case.
func Summarize(raw json.RawMessage) (summary Summary, ok bool) {
	var card TravelCard
	if err := json.Unmarshal(raw, &card); err != nil {
		return Summary{}, false
	}

	summary.Tickets = len(card.Tickets)
	for _, t := range card.Tickets {
		if t.CarnetDetails != nil {
			summary.CarnetTickets++
			summary.RemainingConsumptions += t.CarnetDetails.RemainingConsumptions
		}
	}
	return summary, true
}
