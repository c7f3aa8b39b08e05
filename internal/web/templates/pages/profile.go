package pages

import (
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/web/templates/layout"
)

// ProfileData is the profile page model
type ProfileData struct {
	layout.PageData
	Identity model.Identity
	Profile  model.Profile
	Fields   []model.ProfileField
	Error    string
}

type accountRow struct {
	Label string
	Value string
}

func (d ProfileData) accountRows() []accountRow {
	return []accountRow{
		{"Name", d.Identity.DisplayName()},
		{"Email", d.Identity.Email},
		{"Phone", d.Identity.PhoneNumber},
		{"Account type", d.Identity.Role.Label()},
	}
}

// showForm reports whether the profile loaded; a failed save still shows it
func (d ProfileData) showForm() bool {
	return d.Error == "" || d.Profile != nil
}
