package catalog

// SentinelAll is the reserved filter value meaning "no constraint on this
// dimension".
const SentinelAll = "All"

type Availability string

const (
	AvailabilityAll       Availability = "all"
	AvailabilityAvailable Availability = "available"
	AvailabilityRented    Availability = "rented"
)

// ParseAvailability maps a raw query value onto an Availability, defaulting
// unknown values to "all" so the engine stays a total function.
func ParseAvailability(s string) Availability {
	switch Availability(s) {
	case AvailabilityAvailable, AvailabilityRented:
		return Availability(s)
	}
	return AvailabilityAll
}

type SortOption string

const (
	SortDefault   SortOption = "default"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
	SortNewest    SortOption = "newest"
)

// ParseSortOption maps a raw query value onto a SortOption; anything
// unrecognized keeps the original order.
func ParseSortOption(s string) SortOption {
	switch SortOption(s) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest:
		return SortOption(s)
	}
	return SortDefault
}

// PriceRange is a closed interval, inclusive at both ends. Min > Max is the
// caller's problem: such a range matches nothing, no correction is applied.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Criteria is the combined search/filter specification for one query. It is
// a plain value rebuilt per request; the engine never retains it.
type Criteria struct {
	SearchQuery  string
	Category     string
	SubCategory  string
	Brand        string
	Location     string
	Availability Availability
	PriceRange   PriceRange
}

// DefaultCriteria matches the storefront's initial filter state: everything
// unconstrained except availability, which defaults to available items, and
// the price slider's initial bounds.
func DefaultCriteria() Criteria {
	return Criteria{
		Category:     SentinelAll,
		SubCategory:  SentinelAll,
		Brand:        SentinelAll,
		Location:     SentinelAll,
		Availability: AvailabilityAvailable,
		PriceRange:   PriceRange{Min: 0, Max: 50000},
	}
}

// normalized coerces zero values onto their documented defaults so a
// partially-filled Criteria never accidentally matches nothing.
func (c Criteria) normalized() Criteria {
	if c.Category == "" {
		c.Category = SentinelAll
	}
	if c.SubCategory == "" {
		c.SubCategory = SentinelAll
	}
	if c.Brand == "" {
		c.Brand = SentinelAll
	}
	if c.Location == "" {
		c.Location = SentinelAll
	}
	if c.Availability == "" {
		c.Availability = AvailabilityAll
	}
	return c
}
