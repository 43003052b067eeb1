// Package planner holds the journey planner matching rules: a hierarchical
// region/district/ward location filter, a category filter and grouping of
// the matched services by provider.
package planner

import (
	"strings"

	"isafari/internal/models"
)

// Normalize lower-cases and trims s. The empty result means "absent".
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizePtr(s *string) string {
	if s == nil {
		return ""
	}
	return Normalize(*s)
}

type LocationFilter struct {
	Region   string `json:"region,omitempty"`
	District string `json:"district,omitempty"`
	Ward     string `json:"ward,omitempty"`
}

func (f LocationFilter) normalized() LocationFilter {
	return LocationFilter{
		Region:   Normalize(f.Region),
		District: Normalize(f.District),
		Ward:     Normalize(f.Ward),
	}
}

// IsEmpty reports whether no location level is set after normalization.
func (f LocationFilter) IsEmpty() bool {
	n := f.normalized()
	return n.Region == "" && n.District == "" && n.Ward == ""
}

// ServiceLocation is the part of a service the location rules look at.
type ServiceLocation struct {
	Region   *string
	District *string
	Area     *string
}

func LocationOf(s models.Service) ServiceLocation {
	return ServiceLocation{Region: s.Region, District: s.District, Area: s.Area}
}

// MatchesLocation applies the hierarchy rules. A service registered without
// a district covers every district of its region, and one registered without
// an area covers every ward of its district. Services without a region never
// match a location search.
func MatchesLocation(loc ServiceLocation, f LocationFilter) bool {
	f = f.normalized()
	if f.Region == "" && f.District == "" && f.Ward == "" {
		return true
	}

	region := normalizePtr(loc.Region)
	district := normalizePtr(loc.District)
	area := normalizePtr(loc.Area)

	if region == "" {
		return false
	}
	if f.Region != "" && region != f.Region {
		return false
	}

	if f.District != "" {
		if district != f.District && district != "" {
			return false
		}
	}

	if f.Ward != "" {
		wardMatch := area == f.Ward
		districtLevel := area == "" && district == f.District
		regionLevel := area == "" && district == ""
		if !wardMatch && !districtLevel && !regionLevel {
			return false
		}
	}

	return true
}
