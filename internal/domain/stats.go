package domain

// Leaderboard point weights. A shout-out scores points both for its
// sender and for every named recipient; receiving recognition is worth
// more than giving it.
const (
	PointsPerSent     = 10
	PointsPerReceived = 15
)

// UserCount pairs a user's display name with an activity count.
type UserCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DepartmentCount pairs a department label with its shout-out count.
// Departments with zero posts still appear with count 0.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// AdminStats is the aggregate dashboard snapshot, computed fresh from
// collection state on every call.
type AdminStats struct {
	TotalShoutouts       int               `json:"total_shoutouts"`
	TotalUsers           int               `json:"total_users"`
	TopContributors      []UserCount       `json:"top_contributors"`
	MostTaggedUsers      []UserCount       `json:"most_tagged_users"`
	DepartmentEngagement []DepartmentCount `json:"department_engagement"`
}

// LeaderboardEntry annotates a directory user with derived activity
// counts and the weighted point total.
type LeaderboardEntry struct {
	User          User `json:"user"`
	SentCount     int  `json:"sent_count"`
	ReceivedCount int  `json:"received_count"`
	Points        int  `json:"points"`
}
