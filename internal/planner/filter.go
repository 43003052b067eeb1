package planner

import "isafari/internal/models"

type ProviderGroup struct {
	ID           int              `json:"id"`
	BusinessName string           `json:"business_name"`
	Services     []models.Service `json:"services"`
	ServiceCount int              `json:"service_count"`
}

type Criteria struct {
	Location   LocationFilter `json:"location"`
	Categories []string       `json:"categories"`
}

type Result struct {
	Services       []models.Service `json:"services"`
	Providers      []ProviderGroup  `json:"providers"`
	TotalServices  int              `json:"total_services"`
	TotalProviders int              `json:"total_providers"`
	Criteria       Criteria         `json:"search_criteria"`
}

// Filter returns the services that satisfy both the location and the
// category rules, in input order. The input slice is not modified.
func Filter(services []models.Service, f LocationFilter, categories []string) []models.Service {
	wanted := NormalizeCategories(categories)
	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if !MatchesLocation(LocationOf(s), f) {
			continue
		}
		if !MatchesCategory(s.Category, wanted) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// GroupByProvider collapses services into one entry per provider, ordered by
// first appearance. Services without a provider are skipped.
func GroupByProvider(services []models.Service) []ProviderGroup {
	groups := make([]ProviderGroup, 0)
	index := make(map[int]int)
	for _, s := range services {
		if s.ProviderID == nil {
			continue
		}
		id := *s.ProviderID
		i, ok := index[id]
		if !ok {
			groups = append(groups, ProviderGroup{ID: id, BusinessName: s.BusinessName})
			i = len(groups) - 1
			index[id] = i
		}
		groups[i].Services = append(groups[i].Services, s)
		groups[i].ServiceCount++
	}
	return groups
}

// Search runs Filter and GroupByProvider in one pass over the candidates.
func Search(services []models.Service, c Criteria) Result {
	matched := Filter(services, c.Location, c.Categories)
	providers := GroupByProvider(matched)
	return Result{
		Services:       matched,
		Providers:      providers,
		TotalServices:  len(matched),
		TotalProviders: len(providers),
		Criteria:       c,
	}
}
