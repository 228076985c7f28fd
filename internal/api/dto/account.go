package dto

import "time"

type AccountResponse struct {
	ID              int64      `json:"id"`
	BusinessName    string     `json:"business_name"`
	ContactName     string     `json:"contact_name"`
	Phone           string     `json:"phone,omitempty"`
	Email           string     `json:"email,omitempty"`
	Address         string     `json:"address"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	AccountType     string     `json:"account_type"`
	LastContactDate *time.Time `json:"last_contact_date"`
	// Whether the account has usable coordinates for route planning.
	Routable bool `json:"routable"`
}

type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
