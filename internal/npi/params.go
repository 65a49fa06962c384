package npi

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

const (
	// SearchPath is where the registry API is mounted on the proxy
	SearchPath = "/api/"

	DefaultVersion = "2.1"
	DefaultLimit   = 99
	// MaxLimit is the largest page the registry will return
	MaxLimit = 200
)

// ErrNoCriteria is returned when a search has nothing to search by
var ErrNoCriteria = errors.New("enter at least one search criterion such as a state or specialty")

// SearchParams are the registry search criteria. Empty fields are omitted.
type SearchParams struct {
	TaxonomyDescription string
	FirstName           string
	LastName            string
	City                string
	State               string
	PostalCode          string

	Version string // defaults to DefaultVersion
	Limit   int    // defaults to DefaultLimit, capped at MaxLimit
}

// Empty reports whether no criterion is set
func (p SearchParams) Empty() bool {
	for _, v := range p.criteria() {
		if v.value != "" {
			return false
		}
	}
	return true
}

// Set assigns the criterion named by its query key, such as "state" or
// "taxonomy_description". It reports false for an unknown key.
func (p *SearchParams) Set(key, value string) bool {
	switch key {
	case "taxonomy_description":
		p.TaxonomyDescription = value
	case "first_name":
		p.FirstName = value
	case "last_name":
		p.LastName = value
	case "city":
		p.City = value
	case "state":
		p.State = value
	case "postal_code":
		p.PostalCode = value
	default:
		return false
	}
	return true
}

// IsCriterion reports whether key names a search criterion
func IsCriterion(key string) bool {
	var p SearchParams
	return p.Set(key, "")
}

type param struct {
	key   string
	value string
}

func (p SearchParams) criteria() []param {
	return []param{
		{"taxonomy_description", strings.TrimSpace(p.TaxonomyDescription)},
		{"first_name", strings.TrimSpace(p.FirstName)},
		{"last_name", strings.TrimSpace(p.LastName)},
		{"city", strings.TrimSpace(p.City)},
		{"state", strings.TrimSpace(p.State)},
		{"postal_code", strings.TrimSpace(p.PostalCode)},
	}
}

// Encode builds the query string. Criteria come first in a fixed order,
// then version and limit.
func (p SearchParams) Encode() (string, error) {
	if p.Empty() {
		return "", ErrNoCriteria
	}

	var b strings.Builder
	add := func(k, v string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}

	for _, c := range p.criteria() {
		if c.value != "" {
			add(c.key, c.value)
		}
	}

	version := p.Version
	if version == "" {
		version = DefaultVersion
	}
	add("version", version)
	add("limit", strconv.Itoa(p.limit()))

	return b.String(), nil
}

func (p SearchParams) limit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}
