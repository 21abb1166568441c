package entity

import (
	"time"

	"github.com/lib/pq"
)

type ListingCategory string

const (
	CategoryAccommodation  ListingCategory = "accommodation"
	CategoryTransportation ListingCategory = "transportation"
	CategoryTours          ListingCategory = "tours"
	CategoryFood           ListingCategory = "food"
	CategoryEntertainment  ListingCategory = "entertainment"
	CategoryShopping       ListingCategory = "shopping"
	CategoryOther          ListingCategory = "other"
)

func (c ListingCategory) Valid() bool {
	switch c {
	case CategoryAccommodation, CategoryTransportation, CategoryTours,
		CategoryFood, CategoryEntertainment, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// Listing is a travel service offered by an agent.
type Listing struct {
	ID           string          `db:"id"`
	Title        string          `db:"title"`
	Description  string          `db:"description"`
	Pictures     pq.StringArray  `db:"pictures"`
	Phone        string          `db:"phone"`
	ContactEmail string          `db:"contact_email"`
	Address      string          `db:"address"`
	Website      string          `db:"website"`
	Category     ListingCategory `db:"category"`
	Price        float64         `db:"price"`
	City         string          `db:"city"`
	State        string          `db:"state"`
	Country      string          `db:"country"`
	Latitude     float64         `db:"latitude"`
	Longitude    float64         `db:"longitude"`
	AgentID      string          `db:"agent_id"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
