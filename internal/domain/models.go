package domain

import (
	"fmt"
	"strconv"
)

// Item is one selectable entry in a dropdown's candidate list
type Item struct {
	ID          any
	Title       string
	Subtitle    string
	HasSubtitle bool           // false when no subtitle key is mapped or the value is empty
	Original    map[string]any // unmodified source record
}

// Key returns the id in the form used for lookups
func (i Item) Key() string {
	return IDKey(i.ID)
}

// IDKey converts an item id to a comparable string so that 1, 1.0 and "1" all match.
func IDKey(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// ProviderKind distinguishes individual practitioners from organizations
type ProviderKind string

const (
	KindIndividual   ProviderKind = "Individual"
	KindOrganization ProviderKind = "Organization"
	KindUnknown      ProviderKind = "Unknown"
)

// Address is a provider practice or mailing address
type Address struct {
	Purpose    string // LOCATION, PRIMARY, MAILING
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string // already trimmed to five digits
	Phone      string
}

// OneLine returns the address as a single line suitable for geocoding
func (a Address) OneLine() string {
	s := a.Line1
	if a.Line2 != "" {
		s += ", " + a.Line2
	}
	if a.City != "" {
		s += ", " + a.City
	}
	if a.State != "" {
		s += ", " + a.State
	}
	if a.PostalCode != "" {
		s += " " + a.PostalCode
	}
	return s
}

// IsZero reports whether the address carries no street or city
func (a Address) IsZero() bool {
	return a.Line1 == "" && a.City == ""
}

// Card is the view-model for one provider in the results area
type Card struct {
	NPI              string
	Name             string
	Kind             ProviderKind
	Specialty        string   // first taxonomy description
	OtherSpecialties []string // remaining taxonomy descriptions in order
	Address          Address
}

// ResultPage is the view-model for one search response
type ResultPage struct {
	Count int // result_count as reported by the registry
	Cards []Card
}

// GeoPoint is a latitude/longitude pair
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Marker is a map pin for one result card
type Marker struct {
	Index int // position of the card in the result page
	Label string
	Point GeoPoint
}
