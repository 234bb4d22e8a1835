package store

// Collection names, used by every caller of the engine.
const (
	Players              = "players"
	Teams                = "teams"
	Users                = "users"
	Notifications        = "notifications"
	Invitations          = "invitations"
	CaptainStats         = "captain_stats"
	RegistrationRequests = "registration_requests"
	Matches              = "matches"
	ScoutProfiles        = "scout_profiles"
	ScoutActivities      = "scout_activities"
	Kits                 = "kits"
	KitRequests          = "kit_requests"
)

// TargetVersion is the schema version the current build expects. Opening the
// store at this version creates whatever the on-device database is missing.
const TargetVersion = 6

// Collection declares one named record set: its primary-key field, its
// secondary lookup indexes, and the schema version that introduced it.
// Key and index names refer to fields of the stored JSON document.
type Collection struct {
	Name    string
	Key     string
	Indexes []string
	Since   int
}

// Catalog is the full declarative schema. Migration is additive only: entries
// are never removed or renamed, new collections get a new Since version, and
// new indexes on existing collections ride along with the version that adds
// them (CREATE IF NOT EXISTS keeps the pass idempotent).
var Catalog = []Collection{
	{Name: Players, Key: "id", Indexes: []string{"teamId", "userId"}, Since: 1},
	{Name: Teams, Key: "id", Indexes: []string{"captainId"}, Since: 1},
	{Name: Users, Key: "id", Indexes: []string{"username"}, Since: 1},
	{Name: Notifications, Key: "id", Indexes: []string{"userId"}, Since: 2},
	{Name: Invitations, Key: "id", Indexes: []string{"playerId", "teamId"}, Since: 2},
	{Name: CaptainStats, Key: "userId", Since: 3},
	{Name: RegistrationRequests, Key: "id", Indexes: []string{"status"}, Since: 3},
	{Name: Matches, Key: "id", Indexes: []string{"teamId"}, Since: 4},
	{Name: ScoutProfiles, Key: "id", Indexes: []string{"userId"}, Since: 5},
	{Name: ScoutActivities, Key: "id", Indexes: []string{"scoutId"}, Since: 5},
	{Name: Kits, Key: "id", Indexes: []string{"teamId"}, Since: 6},
	{Name: KitRequests, Key: "id", Indexes: []string{"teamId", "status"}, Since: 6},
}

// catalogByName resolves a collection declaration; ok is false for anything
// not in the catalog, which callers must treat as a caller error.
func catalogByName(name string) (Collection, bool) {
	for _, c := range Catalog {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// declaresIndex reports whether the collection declares the given index.
func (c Collection) declaresIndex(field string) bool {
	for _, idx := range c.Indexes {
		if idx == field {
			return true
		}
	}
	return false
}
