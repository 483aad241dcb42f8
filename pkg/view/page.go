package view

import "homura.shop/app/internal/modules/layout"

// Page is what every full-page template receives besides its own body.
type Page struct {
	Title     string
	Layout    layout.Data
	Flash     *Flash
	RequestID string
}
