package listings

import (
	"context"
	"fmt"
)

// AllCuisines is the cuisine facet offered by the filter panel.
var AllCuisines = []string{
	"Pizza", "Burger", "Sushi", "Italian", "Chinese",
	"Mexican", "Indian", "Japanese", "American", "Vegetarian", "Salad",
}

// Source supplies the catalog snapshot a query runs against.
type Source interface {
	Listings(ctx context.Context) ([]Listing, error)
}

// StaticSource serves a fixed, pre-validated catalog.
type StaticSource struct {
	listings []Listing
}

// NewStaticSource validates listings and keeps a private copy.
func NewStaticSource(listings []Listing) (*StaticSource, error) {
	seen := make(map[string]struct{}, len(listings))
	copied := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("duplicate listing id %s", l.ID)
		}
		seen[l.ID] = struct{}{}
		copied = append(copied, l.clone())
	}
	return &StaticSource{listings: copied}, nil
}

// Listings returns the catalog. Callers must treat it as read-only.
func (s *StaticSource) Listings(context.Context) ([]Listing, error) {
	return s.listings, nil
}

// ReferenceCatalog is the built-in ten-restaurant catalog.
func ReferenceCatalog() []Listing {
	return []Listing{
		{ID: "1", Name: "Pizza Palace", ImageURL: "https://source.unsplash.com/random/400x225/?pizza", Cuisines: []string{"Pizza", "Italian"}, Rating: 4.5, DeliveryTime: DeliveryTime{25, 35}},
		{ID: "2", Name: "Burger Bonanza", ImageURL: "https://source.unsplash.com/random/400x225/?burger", Cuisines: []string{"Burger", "American"}, Rating: 4.2, DeliveryTime: DeliveryTime{20, 30}},
		{ID: "3", Name: "Sushi Central", ImageURL: "https://source.unsplash.com/random/400x225/?sushi", Cuisines: []string{"Sushi", "Japanese"}, Rating: 4.8, DeliveryTime: DeliveryTime{30, 40}},
		{ID: "4", Name: "Curry House", ImageURL: "https://source.unsplash.com/random/400x225/?curry", Cuisines: []string{"Indian", "Vegetarian"}, Rating: 4.6, DeliveryTime: DeliveryTime{35, 45}},
		{ID: "5", Name: "Pasta Perfection", ImageURL: "https://source.unsplash.com/random/400x225/?pasta", Cuisines: []string{"Italian"}, Rating: 4.3, DeliveryTime: DeliveryTime{25, 35}},
		{ID: "6", Name: "Wok Wonders", ImageURL: "https://source.unsplash.com/random/400x225/?wok,chinese", Cuisines: []string{"Chinese"}, Rating: 4.0, DeliveryTime: DeliveryTime{20, 30}},
		{ID: "7", Name: "Taco Town", ImageURL: "https://source.unsplash.com/random/400x225/?taco", Cuisines: []string{"Mexican"}, Rating: 4.7, DeliveryTime: DeliveryTime{15, 25}},
		{ID: "8", Name: "Green Garden", ImageURL: "https://source.unsplash.com/random/400x225/?salad,vegetarian", Cuisines: []string{"Vegetarian", "Salad"}, Rating: 4.9, DeliveryTime: DeliveryTime{20, 30}},
		{ID: "9", Name: "Luigi's Pizzeria", ImageURL: "https://source.unsplash.com/random/400x225/?pizzeria", Cuisines: []string{"Pizza", "Italian"}, Rating: 3.9, DeliveryTime: DeliveryTime{40, 50}},
		{ID: "10", Name: "The Burger Joint", ImageURL: "https://source.unsplash.com/random/400x225/?burgers,fastfood", Cuisines: []string{"Burger"}, Rating: 4.1, DeliveryTime: DeliveryTime{25, 35}},
	}
}
