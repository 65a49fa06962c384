// Package results turns registry responses into provider cards.
package results

import (
	"fmt"
	"net/url"
	"strings"

	"npisearch/internal/domain"
	"npisearch/internal/npi"
)

const (
	NoResultsMessage = "No results found."
	NameUnavailable  = "Name not available"
)

// ProxyHint tells the user where the search requests were sent.
// baseURL is the configured registry endpoint, normally the local proxy.
func ProxyHint(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return "Make sure the proxy server is running."
	}
	if port := u.Port(); port != "" {
		return fmt.Sprintf("Make sure the proxy server is running on port %s.", port)
	}
	return fmt.Sprintf("Make sure the proxy server is reachable at %s.", u.Host)
}

// Build converts a registry response into a result page
func Build(resp *npi.Response) domain.ResultPage {
	if resp == nil {
		return domain.ResultPage{}
	}

	page := domain.ResultPage{
		Count: resp.ResultCount,
		Cards: make([]domain.Card, 0, len(resp.Results)),
	}
	for _, p := range resp.Results {
		page.Cards = append(page.Cards, BuildCard(p))
	}
	return page
}

// BuildCard converts one registry record
func BuildCard(p npi.Provider) domain.Card {
	name, kind := ProviderName(p.Basic)
	card := domain.Card{
		NPI:  p.Number.String(),
		Name: name,
		Kind: kind,
	}

	if len(p.Taxonomies) > 0 {
		card.Specialty = p.Taxonomies[0].Desc
		for _, t := range p.Taxonomies[1:] {
			card.OtherSpecialties = append(card.OtherSpecialties, t.Desc)
		}
	}

	if addr, ok := PreferredAddress(p.Addresses); ok {
		card.Address = domain.Address{
			Purpose:    addr.AddressPurpose,
			Line1:      addr.Address1,
			Line2:      addr.Address2,
			City:       addr.City,
			State:      addr.State,
			PostalCode: FormatZip(addr.PostalCode),
			Phone:      addr.TelephoneNumber,
		}
	}
	return card
}

// ProviderName formats the display name. Individuals need both first and last
// name; otherwise the organization name is used.
func ProviderName(b npi.Basic) (string, domain.ProviderKind) {
	switch {
	case b.FirstName != "" && b.LastName != "":
		name := b.FirstName + " " + b.LastName
		if b.Credential != "" {
			name += ", " + b.Credential
		}
		return name, domain.KindIndividual
	case b.OrganizationName != "":
		return b.OrganizationName, domain.KindOrganization
	default:
		return NameUnavailable, domain.KindUnknown
	}
}

// PreferredAddress picks LOCATION, then PRIMARY, then MAILING, then the first address
func PreferredAddress(addrs []npi.Address) (npi.Address, bool) {
	for _, purpose := range []string{npi.PurposeLocation, npi.PurposePrimary, npi.PurposeMailing} {
		for _, a := range addrs {
			if a.AddressPurpose == purpose {
				return a, true
			}
		}
	}
	if len(addrs) > 0 {
		return addrs[0], true
	}
	return npi.Address{}, false
}

// FormatZip strips dashes and whitespace and keeps the first five characters
func FormatZip(zip string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, zip)
	if len(clean) > 5 {
		return clean[:5]
	}
	return clean
}

// Headline is the summary line above the cards
func Headline(page domain.ResultPage) string {
	if len(page.Cards) == 0 {
		return NoResultsMessage
	}
	return fmt.Sprintf("Found %d providers", page.Count)
}

// CityLine is the "city, state zip" line of an address
func CityLine(a domain.Address) string {
	if a.City == "" && a.State == "" && a.PostalCode == "" {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", a.City, a.State, a.PostalCode))
}

// StreetLine is "line1, line2"
func StreetLine(a domain.Address) string {
	if a.Line2 != "" {
		return a.Line1 + ", " + a.Line2
	}
	return a.Line1
}

// OtherSpecialties joins the secondary specialties with "; "
func OtherSpecialties(c domain.Card) string {
	return strings.Join(c.OtherSpecialties, "; ")
}
