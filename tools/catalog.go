package tools

import "github.com/ollama/ollama/api"

// Logical tool names exposed by the travel backend.
const (
	FindTrips         = "findTrips"
	GetWeather        = "getWeather"
	GetPlaceEvents    = "getPlaceEvents"
	GetStationInfo    = "getStationInfo"
	GetTrainFormation = "getTrainFormation"
)

// Catalog returns the travel tool schemas handed to the function-calling
// model. Parameter names line up with what the resolver fills in from
// extracted entities and session context.
func Catalog() []api.Tool {
	return []api.Tool{
		NewBuilder(FindTrips, "Searches train connections between two stations.").
			StringParam("origin", "Departure station name, e.g. 'Zürich HB'", true).
			StringParam("destination", "Arrival station name, e.g. 'Bern'", true).
			StringParam("date", "Travel date in YYYY-MM-DD; defaults to today", false).
			StringParam("time", "Departure time in 24-hour HH:MM", false).
			Build(),
		NewBuilder(GetWeather, "Returns the weather forecast for a place.").
			StringParam("location", "City or station name", true).
			StringParam("date", "Forecast date in YYYY-MM-DD; defaults to today", false).
			Build(),
		NewBuilder(GetPlaceEvents, "Lists arrivals or departures at a station.").
			StringParam("station", "Station name, e.g. 'Zürich HB'", true).
			EnumParam("type", "Board type to list", []string{"arrivals", "departures"}, false).
			Build(),
		NewBuilder(GetStationInfo, "Returns facilities and accessibility information for a station.").
			StringParam("station", "Station name", true).
			Build(),
		NewBuilder(GetTrainFormation, "Returns the carriage formation of a specific train.").
			StringParam("journeyId", "Journey identifier from a previous trip search", true).
			Build(),
	}
}

// Find returns the schema for name, or false when the model hallucinated a
// tool that is not in the catalog.
func Find(catalog []api.Tool, name string) (api.Tool, bool) {
	for _, t := range catalog {
		if t.Function.Name == name {
			return t, true
		}
	}
	return api.Tool{}, false
}
