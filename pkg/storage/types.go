package storage

// Cache kinds. Each remote endpoint gets its own namespace so they can
// be cleared independently.
const (
	KindAppDetails = "appdetails"
	KindReviews    = "reviews"
	KindProtonDB   = "protondb"
	KindRAWG       = "rawg"
	KindPage       = "page"
)

// SteamApp is one row of the Steam app index.
type SteamApp struct {
	AppID int
	Name  string
}

const metaAppsUpdated = "steam_apps_updated_at"
