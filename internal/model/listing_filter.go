package model

// ListingFilter is the feed search criteria. Zero values mean "not filtered".
// All set fields are AND-combined on top of the base is_available predicate.
// Amenity tags are only applied when requested true; a false tag does not
// exclude listings that have the amenity.

type ListingFilter struct {
	Query     string // substring of the location display address, case-insensitive
	College   string // substring of the referenced college name, case-insensitive
	Category  string
	Sharing   string
	Furnished string
	Gender    string
	MinPrice  int // inclusive, 0 = unset
	MaxPrice  int // inclusive, 0 = unset

	AC             bool
	Cooler         bool
	NoBrokerage    bool
	Wifi           bool
	Cook           bool
	Maid           bool
	Geyser         bool
	MetroNear      bool
	NoRestrictions bool
}
