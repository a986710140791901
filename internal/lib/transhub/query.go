package transhub

// OperationName is the GraphQL operation sent for every lookup.
const OperationName = "GetTravelCard"

// GetTravelCardQuery requests ticket, zone and carnet details of one card.
const GetTravelCardQuery = `
query GetTravelCard($travelCardNumber: Int!) {
    travelCard(id: $travelCardNumber) {
        tickets {
            validAllZones
            productName { name }
            carnetDetails {
                remainingConsumptions
                lastPossibleConsumptionDate
                consumptionLog {
                    numberOfConsumptions
                    validity {
                        startDate
                        endDate
                    }
                }
            }
            zones {
                name
            }
        }
    }
}
`

// QueryPayload is the JSON body posted to the GraphQL endpoint.
type QueryPayload struct {
	OperationName string    `json:"operationName"`
	Variables     Variables `json:"variables"`
	Query         string    `json:"query"`
}

// Variables of GetTravelCard. A nil TravelCardNumber is sent as null and
// left for the upstream to reject.
type Variables struct {
	TravelCardNumber *int64 `json:"travelCardNumber"`
}

// NewGetTravelCardPayload builds the fixed lookup payload for one card.
func NewGetTravelCardPayload(travelCardNumber *int64) QueryPayload {
	return QueryPayload{
		OperationName: OperationName,
		Variables:     Variables{TravelCardNumber: travelCardNumber},
		Query:         GetTravelCardQuery,
	}
}
