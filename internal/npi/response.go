package npi

import "encoding/json"

// Response is a registry search result page
type Response struct {
	ResultCount int              `json:"result_count"`
	Results     []Provider       `json:"results"`
	Errors      []APIErrorDetail `json:"Errors,omitempty"`
}

// Provider is one registry record
type Provider struct {
	Number          json.Number `json:"number"`
	EnumerationType string      `json:"enumeration_type"` // NPI-1 individual, NPI-2 organization
	Basic           Basic       `json:"basic"`
	Addresses       []Address   `json:"addresses"`
	Taxonomies      []Taxonomy  `json:"taxonomies"`
}

// Basic holds the name fields of a record
type Basic struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	MiddleName       string `json:"middle_name"`
	NamePrefix       string `json:"name_prefix"`
	Credential       string `json:"credential"`
	Gender           string `json:"gender"`
	OrganizationName string `json:"organization_name"`
	Status           string `json:"status"`
	EnumerationDate  string `json:"enumeration_date"`
	LastUpdated      string `json:"last_updated"`

	AuthorizedOfficialFirstName  string `json:"authorized_official_first_name"`
	AuthorizedOfficialLastName   string `json:"authorized_official_last_name"`
	AuthorizedOfficialCredential string `json:"authorized_official_credential"`
}

// Address purposes
const (
	PurposeLocation = "LOCATION"
	PurposePrimary  = "PRIMARY"
	PurposeMailing  = "MAILING"
)

// Address is a practice or mailing address of a record
type Address struct {
	CountryCode     string `json:"country_code"`
	AddressPurpose  string `json:"address_purpose"`
	AddressType     string `json:"address_type"`
	Address1        string `json:"address_1"`
	Address2        string `json:"address_2"`
	City            string `json:"city"`
	State           string `json:"state"`
	PostalCode      string `json:"postal_code"`
	TelephoneNumber string `json:"telephone_number"`
	FaxNumber       string `json:"fax_number"`
}

// Taxonomy is one specialty of a record
type Taxonomy struct {
	Code          string `json:"code"`
	Desc          string `json:"desc"`
	Primary       bool   `json:"primary"`
	State         string `json:"state"`
	License       string `json:"license"`
	TaxonomyGroup string `json:"taxonomy_group"`
}

// APIErrorDetail is one entry of the registry's Errors list
type APIErrorDetail struct {
	Description string `json:"description"`
	Field       string `json:"field"`
	Number      string `json:"number"`
}
