package commander

import "time"

// AllStores is store ID of command generating feeds of all configured stores.
const AllStores = 0

// GenerateCommand requests feed generation of a store.
type GenerateCommand struct {
	StoreID int `json:"storeId"`
}

// FeedGenerated is published after feed generation of a store finished.
type FeedGenerated struct {
	StoreID     int        `json:"storeId"`
	Success     bool       `json:"success"`
	URL         string     `json:"url,omitempty"`
	Items       int        `json:"items,omitempty"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
	Message     string     `json:"message,omitempty"`
}
