package schema

// UserPreferencesTable represents the 'users.preference' table
type UserPreferencesTable struct {
	Table            string
	UserID           string
	Timezone         string
	WeekStart        string
	EmailDigest      string
	DefaultPlatforms string
	NotifyOnApproval string
	NotifyOnComment  string
}

// UserPreferences is the schema definition for users.preference
var UserPreferences = UserPreferencesTable{
	Table:            "users.preference",
	UserID:           "userid",
	Timezone:         "timezone",
	WeekStart:        "weekstart",
	EmailDigest:      "emaildigest",
	DefaultPlatforms: "defaultplatforms",
	NotifyOnApproval: "notifyonapproval",
	NotifyOnComment:  "notifyoncomment",
}

// Columns returns all standard column names
func (t UserPreferencesTable) Columns() []string {
	return []string{t.UserID, t.Timezone, t.WeekStart, t.EmailDigest, t.DefaultPlatforms, t.NotifyOnApproval, t.NotifyOnComment}
}
