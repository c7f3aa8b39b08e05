package pages

import "github.com/mcoot/buitransport/internal/web/templates/layout"

// ErrorData is the model of a page that only shows a message
type ErrorData struct {
	layout.PageData
	Message string
}
