package types

import "fmt"

// Listing is an item a user offers for sale or trade.
type Listing struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// String renders the listing the way the browse and search views show it.
func (l *Listing) String() string {
	return fmt.Sprintf("Name: %s, Category: %s, Price: %s, Description: %s",
		l.Name, l.Category, FormatPrice(l.Price), l.Description)
}
