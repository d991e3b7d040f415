package entity

type AdminDashboard struct {
	CustomerCount   int64 `json:"customerCount"`
	QuoteCount      int64 `json:"quoteCount"`
	ActiveEmployees int64 `json:"activeEmployees"`
	NewQuotes       int64 `json:"newQuotes"`
	UnreadMessages  int64 `json:"unreadMessages"`
}

type CustomerDashboard struct {
	Customer       User  `json:"customer"`
	UnreadMessages int64 `json:"unreadMessages"`
}
