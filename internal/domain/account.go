package domain

import (
	"strings"
	"time"
)

type AccountType string

const (
	AccountActive   AccountType = "active"
	AccountProspect AccountType = "prospect"
	AccountInactive AccountType = "inactive"
)

// Represents a customer business owned by a sales rep.
// Coordinates are optional; accounts without them cannot be routed.
type Account struct {
	ID              int64
	UserID          string
	BusinessName    string
	ContactName     string
	Phone           string
	Email           string
	StreetAddress   string
	City            string
	State           string
	ZipCode         string
	Latitude        *float64
	Longitude       *float64
	AccountType     AccountType
	LastContactDate time.Time
	Notes           string
}

// Location returns the account coordinates when both are present.
// Range validity is not checked here.
func (a Account) Location() (GeoPoint, bool) {
	if a.Latitude == nil || a.Longitude == nil {
		return GeoPoint{}, false
	}
	return GeoPoint{Latitude: *a.Latitude, Longitude: *a.Longitude}, true
}

// FormattedAddress joins the non-empty address parts with ", ".
func (a Account) FormattedAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.StreetAddress, a.City, a.State, a.ZipCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
