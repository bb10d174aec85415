package domain

// Route describes an API endpoint that can be granted to roles or permissions.
type Route struct {
	ID           string
	Name         string
	Path         string
	HTTPMethod   string
	ModuleID     string
	RequiresAuth bool
	IsEnabled    bool
	Audit
}
