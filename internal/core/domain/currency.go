package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	Symbol      string `json:"symbol"`      // Primary Key (e.g., "USD")
	NumericCode int    `json:"numericCode"` // ISO 4217 numeric code (e.g., 840)
	Name        string `json:"name"`        // e.g., "US Dollar"
}
