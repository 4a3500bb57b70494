package listing

import "time"

// Property types accepted by the catalog.
const (
	TypeHouse     = "house"
	TypeApartment = "apartment"
	TypeCondo     = "condo"
	TypeTownhouse = "townhouse"
)

// Listing lifecycle states.
const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusSold    = "sold"
)

// ValidPropertyType reports whether t is a known property type.
func ValidPropertyType(t string) bool {
	return t == TypeHouse || t == TypeApartment || t == TypeCondo || t == TypeTownhouse
}

// ValidStatus reports whether s is a known listing state.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusPending || s == StatusSold
}

// Coordinates is an optional lat/lng pair on a location.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Location describes where the property is.
type Location struct {
	Address     string       `bson:"address,omitempty" json:"address,omitempty"`
	City        string       `bson:"city,omitempty" json:"city,omitempty"`
	State       string       `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode     string       `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// Image is one catalog photo with an optional caption.
type Image struct {
	URL     string `bson:"url" json:"url"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// OwnerSummary is the only owner information exposed on listing responses.
type OwnerSummary struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Listing is a property record offered in the catalog. CreatedBy holds the
// owning user's directory id and is set once at creation; responses carry the
// populated Owner instead.
type Listing struct {
	ID            string        `bson:"_id,omitempty" json:"id"`
	Title         string        `bson:"title" json:"title"`
	Description   string        `bson:"description" json:"description"`
	Price         float64       `bson:"price" json:"price"`
	Location      Location      `bson:"location" json:"location"`
	PropertyType  string        `bson:"propertyType" json:"propertyType"`
	Bedrooms      float64       `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     float64       `bson:"bathrooms" json:"bathrooms"`
	SquareFootage float64       `bson:"squareFootage,omitempty" json:"squareFootage,omitempty"`
	Features      []string      `bson:"features,omitempty" json:"features,omitempty"`
	Images        []Image       `bson:"images,omitempty" json:"images,omitempty"`
	Status        string        `bson:"status" json:"status"`
	CreatedBy     string        `bson:"createdBy" json:"-"`
	Owner         *OwnerSummary `bson:"-" json:"createdBy,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Filter carries the optional listing constraints. A nil field means "no
// constraint on that field"; supplied fields combine conjunctively.
type Filter struct {
	PropertyType *string
	City         *string // case-insensitive substring match on location.city
	Bedrooms     *float64
	MinPrice     *float64 // inclusive
	MaxPrice     *float64 // inclusive
}

// Patch carries the optional fields of a partial update. Nil fields are left
// untouched on the stored record.
type Patch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	Location      *Location `json:"location,omitempty"`
	PropertyType  *string   `json:"propertyType,omitempty"`
	Bedrooms      *float64  `json:"bedrooms,omitempty"`
	Bathrooms     *float64  `json:"bathrooms,omitempty"`
	SquareFootage *float64  `json:"squareFootage,omitempty"`
	Features      *[]string `json:"features,omitempty"`
	Images        *[]Image  `json:"images,omitempty"`
	Status        *string   `json:"status,omitempty"`
}

// Page is one page of query results.
type Page struct {
	Items       []*Listing `json:"items"`
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int64      `json:"currentPage"`
}
