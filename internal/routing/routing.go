// Package routing holds the single authoritative issue-type table: which
// issue types the portal accepts and which civic authority department is
// responsible for each. The complaint form, the admin listing and the
// notification bot all consult this table, so the enumerations cannot drift.
package routing

import "strings"

// DefaultAuthority is returned for unknown or empty issue types.
// Absence of a mapping is a defined fallback, not an error.
const DefaultAuthority = "General Administration"

// IssueType is one entry of the portal's issue enumeration.
type IssueType struct {
	Slug      string
	Label     string
	Category  string
	Authority string
}

// IssueTypes enumerates every issue the complaint form offers, in display
// order. Slugs are the stored values; labels are what the views render.
var IssueTypes = []IssueType{
	{Slug: "streetlight", Label: "Street Light Issues", Category: "Infrastructure",
		Authority: "Nagar Nigam / Municipal Corporation (Street Lighting Division)"},
	{Slug: "pothole", Label: "Pothole/Road Damage", Category: "Roads",
		Authority: "Public Works Department (PWD)"},
	{Slug: "garbage", Label: "Garbage Collection", Category: "Sanitation",
		Authority: "Nagar Nigam / Municipal Corporation"},
	{Slug: "drainage", Label: "Drainage Problems", Category: "Water",
		Authority: "Jal Board / Water Supply Department"},
	{Slug: "water", Label: "Water Supply Issues", Category: "Water",
		Authority: "Jal Board / Water Supply Department"},
	{Slug: "electricity", Label: "Power Outage", Category: "Utilities",
		Authority: "Electricity Department"},
	{Slug: "transport", Label: "Public Transport", Category: "Transport",
		Authority: "Local Transport Authority / RTO"},
	{Slug: "noise", Label: "Noise Pollution", Category: "Environment",
		Authority: "Pollution Control Board / Local Police Authority"},
	{Slug: "others", Label: "Other Issues", Category: "General",
		Authority: DefaultAuthority},
}

// index maps both slugs and labels (lowercased) to their entry.
var index = func() map[string]IssueType {
	m := make(map[string]IssueType, 2*len(IssueTypes))
	for _, it := range IssueTypes {
		m[strings.ToLower(it.Slug)] = it
		m[strings.ToLower(it.Label)] = it
	}
	return m
}()

// Lookup resolves an issue-type string (slug or display label, any case)
// to its table entry.
func Lookup(issueType string) (IssueType, bool) {
	it, ok := index[strings.ToLower(strings.TrimSpace(issueType))]
	return it, ok
}

// AuthorityFor returns the responsible civic authority department for an
// issue type, falling back to DefaultAuthority for unrecognized input.
func AuthorityFor(issueType string) string {
	if it, ok := Lookup(issueType); ok {
		return it.Authority
	}
	return DefaultAuthority
}

// IsKnown reports whether the issue type is part of the enumeration.
func IsKnown(issueType string) bool {
	_, ok := Lookup(issueType)
	return ok
}
