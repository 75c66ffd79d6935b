// internal/domain/models/collections.go
package models

// DefaultDatabase is the database name used when none is configured.
const DefaultDatabase = "spondon-db"

// Collection names.
const (
	CollUsers            = "users"
	CollActiveDonors     = "activeDonors"
	CollVolunteers       = "volunteers"
	CollRequests         = "requests"
	CollApprovedRequests = "approvedRequests"
)

// AllCollections lists every collection the service owns.
var AllCollections = []string{
	CollUsers,
	CollActiveDonors,
	CollVolunteers,
	CollRequests,
	CollApprovedRequests,
}
