package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidCriteria wraps every criteria validation failure
var ErrInvalidCriteria = errors.New("invalid search criteria")

// DefaultAmenities are used when a search does not name any
var DefaultAmenities = []string{"kitchen", "wifi", "air_conditioning"}

// PropertyType is the kind of accommodation a search asks for
type PropertyType string

const (
	PropertyEntirePlace PropertyType = "entire_place"
	PropertyPrivateRoom PropertyType = "private_room"
	PropertySharedRoom  PropertyType = "shared_room"
	PropertyHotelRoom   PropertyType = "hotel_room"
	PropertyApartment   PropertyType = "apartment"
)

var propertyTypes = []PropertyType{
	PropertyEntirePlace,
	PropertyPrivateRoom,
	PropertySharedRoom,
	PropertyHotelRoom,
	PropertyApartment,
}

// ParsePropertyType maps free text like "Entire place" or "hotel-room" onto the enumeration
func ParsePropertyType(s string) (PropertyType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if key == "" {
		return PropertyEntirePlace, nil
	}
	for _, pt := range propertyTypes {
		if string(pt) == key {
			return pt, nil
		}
	}
	return "", fmt.Errorf("%w: unknown property type %q", ErrInvalidCriteria, s)
}

// SearchCriteria describes one search run. It is treated as immutable once built.
type SearchCriteria struct {
	Location         string
	CheckIn          time.Time
	CheckOut         time.Time
	Guests           int
	MaxPricePerNight float64
	PropertyType     PropertyType
	Amenities        []string

	// NearbyLocales are lowercase tokens of places close to the primary locale
	NearbyLocales []string
}

// NewSearchCriteria builds criteria, filling the default property type and amenity set
func NewSearchCriteria(location string, checkIn, checkOut time.Time, guests int, maxPrice float64) SearchCriteria {
	return SearchCriteria{
		Location:         location,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Guests:           guests,
		MaxPricePerNight: maxPrice,
		PropertyType:     PropertyEntirePlace,
		Amenities:        append([]string(nil), DefaultAmenities...),
	}
}

// Validate checks the invariants the engine relies on
func (c SearchCriteria) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Location, validation.Required),
		validation.Field(&c.CheckIn, validation.Required),
		validation.Field(&c.CheckOut, validation.Required, validation.By(c.checkOutAfterCheckIn)),
		validation.Field(&c.Guests, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxPricePerNight, validation.Min(0.0)),
		validation.Field(&c.PropertyType, validation.By(knownPropertyType)),
		validation.Field(&c.Amenities, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	return nil
}

func (c SearchCriteria) checkOutAfterCheckIn(value interface{}) error {
	checkOut, _ := value.(time.Time)
	if !checkOut.After(c.CheckIn) {
		return errors.New("must be after check-in")
	}
	return nil
}

func knownPropertyType(value interface{}) error {
	pt, _ := value.(PropertyType)
	for _, known := range propertyTypes {
		if pt == known {
			return nil
		}
	}
	return fmt.Errorf("unknown property type %q", pt)
}

// Nights is the length of the stay, at least 1
func (c SearchCriteria) Nights() int {
	n := int(c.CheckOut.Sub(c.CheckIn).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// PrimaryLocale is the lowercase first segment of the location, "bar" for "Bar, Montenegro"
func (c SearchCriteria) PrimaryLocale() string {
	first, _, _ := strings.Cut(c.Location, ",")
	return strings.ToLower(strings.TrimSpace(first))
}

// PrimaryLocaleName is the first segment of the location as typed, "Bar" for "Bar, Montenegro"
func (c SearchCriteria) PrimaryLocaleName() string {
	first, _, _ := strings.Cut(c.Location, ",")
	return strings.TrimSpace(first)
}
