package permission

// RouteEnforcer decides whether a role may call a route. path is the route
// template as registered with the router, e.g. /requests/:id.
type RouteEnforcer interface {
	Enforce(role, path, method string) (bool, error)
}
