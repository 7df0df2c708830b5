package settings

import "time"

// Indonesian timezones selectable in the store profile.
const (
	TimezoneWIB  = "WIB"
	TimezoneWITA = "WITA"
	TimezoneWIT  = "WIT"
)

var timezoneOffsets = map[string]int{
	TimezoneWIB:  7,
	TimezoneWITA: 8,
	TimezoneWIT:  9,
}

// NormalizeTimezone coerces unknown values to WIB.
func NormalizeTimezone(name string) string {
	if _, ok := timezoneOffsets[name]; ok {
		return name
	}
	return TimezoneWIB
}

// Location resolves the fixed UTC offset for a store timezone; unknown
// names resolve as WIB.
func Location(name string) *time.Location {
	name = NormalizeTimezone(name)
	return time.FixedZone(name, timezoneOffsets[name]*3600)
}

// TimezoneChoices lists the selectable values in display order.
func TimezoneChoices() []string {
	return []string{TimezoneWIB, TimezoneWITA, TimezoneWIT}
}
