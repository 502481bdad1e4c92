package utils

// Token and session time constants
const (
	// AccessTokenTTLSeconds is the time-to-live for access tokens in seconds (86400 seconds = 24 hours)
	AccessTokenTTLSeconds = 86400
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Inventory constants
const (
	// AssetCodePrefix opens every generated asset code
	AssetCodePrefix = "VU"

	// MaintenanceListLimit caps the maintenance listing page
	MaintenanceListLimit = 50

	// RecentAssetsLimit caps the dashboard recent-asset strip
	RecentAssetsLimit = 5

	// TopLocationsLimit caps the per-location report breakdown
	TopLocationsLimit = 10
)
