package layout

import "github.com/mcoot/buitransport/internal/model"

// FlashMessage is a one-shot message shown on the next page
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData is common to every page
type PageData struct {
	Title string
	User  *model.Identity
	Flash *FlashMessage
	// RefreshSeconds reloads the page after a delay when positive
	RefreshSeconds int
}

// Money formats an amount in naira
func Money(v float64) string {
	return model.Naira(v)
}

// Amount formats an API amount in naira
func Amount(a model.Amount) string {
	return Money(a.Float())
}
