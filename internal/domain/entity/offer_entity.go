package entity

import (
	"time"
)

// City is one of the six cities offers can be published in.
type City string

const (
	CityParis      City = "Paris"
	CityCologne    City = "Cologne"
	CityBrussels   City = "Brussels"
	CityAmsterdam  City = "Amsterdam"
	CityHamburg    City = "Hamburg"
	CityDusseldorf City = "Dusseldorf"
)

func ParseCity(s string) (City, bool) {
	switch City(s) {
	case CityParis, CityCologne, CityBrussels, CityAmsterdam, CityHamburg, CityDusseldorf:
		return City(s), true
	default:
		return "", false
	}
}

// HousingType classifies the rented property.
type HousingType string

const (
	HousingApartment HousingType = "apartment"
	HousingHouse     HousingType = "house"
	HousingRoom      HousingType = "room"
	HousingHotel     HousingType = "hotel"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Offer is the aggregate root for the offer domain. Rating and CommentsCount
// are denormalized values recomputed from the comment set; IsFavorite is a
// per-request, per-user view flag and is never persisted.
type Offer struct {
	ID            string
	Title         string
	Description   string
	City          City
	PostDate      time.Time
	PreviewPath   string
	ImagePaths    []string
	IsPremium     bool
	IsFavorite    bool
	Rating        float64
	Type          HousingType
	Rooms         int
	Guests        int
	Price         int
	Amenities     []string
	OwnerID       string
	CommentsCount int
	Coordinates   Coordinates
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy reports the offer's owning user for ownership checks.
func (o *Offer) OwnedBy() string { return o.OwnerID }
