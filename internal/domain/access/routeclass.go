// Package access classifies request paths for the access gateway.
package access

import (
	"sort"
	"strings"

	"shelfwatch/internal/shared/constants"
)

type RouteClass int

const (
	// RouteUnclassified passes through the gateway untouched.
	RouteUnclassified RouteClass = iota
	// RoutePublic holds the auth forms; authenticated subjects are sent away.
	RoutePublic
	// RouteProtected requires a subject.
	RouteProtected
	// RouteAdminProtected requires a subject holding the admin role.
	RouteAdminProtected
)

func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RouteProtected:
		return "protected"
	case RouteAdminProtected:
		return "admin_protected"
	default:
		return "unclassified"
	}
}

// RequiresSubject is true for protected and admin-protected routes.
func (c RouteClass) RequiresSubject() bool {
	return c == RouteProtected || c == RouteAdminProtected
}

type routeRule struct {
	prefix string
	class  RouteClass
}

// routeTable is fixed; it is not configurable at runtime.
var routeTable = sortedRules([]routeRule{
	{constants.PathDashboard, RouteProtected},
	{constants.PathProducts, RouteProtected},
	{constants.PathSettings, RouteProtected},
	{constants.PathAdmin, RouteAdminProtected},
	{constants.PathLogin, RoutePublic},
	{constants.PathSignup, RoutePublic},
})

// sortedRules orders rules longest prefix first so the first match wins.
func sortedRules(rules []routeRule) []routeRule {
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].prefix) > len(rules[j].prefix)
	})
	return rules
}

// Classify maps a request path onto its RouteClass using the longest
// matching prefix. A prefix matches the path itself or any path below it
// ("/admin" matches "/admin/users" but not "/administrator").
func Classify(path string) RouteClass {
	for _, rule := range routeTable {
		if matchesPrefix(path, rule.prefix) {
			return rule.class
		}
	}
	return RouteUnclassified
}

func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}
