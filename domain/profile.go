package domain

// Role describes what a signed-in user may do.
type Role string

const (
	RoleReader Role = "reader"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// Profile is the signed-in user's account as reported by the API.
type Profile struct {
	ID          string
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   string
	Role        Role
}

// IsAdmin reports whether the profile may open the admin screens.
func (p Profile) IsAdmin() bool { return p.Role == RoleAdmin }

// Name returns the best display name available.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

// Settings holds the site-wide options editable from the admin screen.
type Settings struct {
	SiteTitle       string
	SiteDescription string
	CommentsEnabled bool
	PageSize        int
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	Posts      int
	Comments   int
	Users      int
	Likes      int
	ViewsByDay []DayViews // Most recent day last.
}

// DayViews is one day's view counter for the dashboard sparkline.
type DayViews struct {
	Day   string // YYYY-MM-DD
	Views int
}
