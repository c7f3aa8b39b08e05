package pages

import (
	"strconv"
	"strings"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/web/templates/layout"
)

// TransportListData is the route listing model
type TransportListData struct {
	layout.PageData
	Options     []model.TransportOption
	Search      string
	Destination string
	Error       string
}

func routeEnds(o model.TransportOption) string {
	return o.DepartureLocation + " → " + o.Destination
}

func routeTimes(o model.TransportOption) string {
	if o.ArrivalTime == "" {
		return o.DepartureTime
	}
	return o.DepartureTime + " – " + o.ArrivalTime
}

func routeDays(o model.TransportOption) string {
	return strings.Join(o.DaysOfOperation, ", ")
}

func seatsAvailable(o model.TransportOption) string {
	return strconv.Itoa(o.AvailableSeats) + " seats available"
}

func bookURL(o model.TransportOption) string {
	return "/book/" + string(o.ID)
}
