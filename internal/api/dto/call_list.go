package dto

import "time"

type CallListEntryResponse struct {
	AccountID       int64      `json:"account_id"`
	BusinessName    string     `json:"business_name"`
	ContactName     string     `json:"contact_name"`
	Phone           string     `json:"phone,omitempty"`
	AccountType     string     `json:"account_type"`
	LastContactDate *time.Time `json:"last_contact_date"`
	// Null when the account was never contacted.
	DaysSinceContact *int `json:"days_since_contact"`
	Priority         int  `json:"priority"`
}

type CallListResponse struct {
	ThresholdDays int                     `json:"threshold_days"`
	Entries       []CallListEntryResponse `json:"entries"`
}
