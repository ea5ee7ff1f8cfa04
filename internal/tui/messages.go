package tui

import "github.com/muhammadidrees/raseed/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenFormMsg tells a details screen to open its edit form
type OpenFormMsg struct{}

// firstRunCheckMsg reports which details are still missing
type firstRunCheckMsg struct {
	missing domain.Violations
}
