package permission

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minerepair/repairhub/internal/shared/authorization"
)

// RouteRule grants a set of methods on one route template.
type RouteRule struct {
	Path    string   `yaml:"path"`
	Methods []string `yaml:"methods"`
}

// PolicyFile is the YAML form of the route policy, keyed by role.
type PolicyFile struct {
	Roles map[string][]RouteRule `yaml:"roles"`
}

func LoadPolicyFile(path string) (*PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicyFile(data)
}

func ParsePolicyFile(data []byte) (*PolicyFile, error) {
	var pf PolicyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if len(pf.Roles) == 0 {
		return nil, fmt.Errorf("policy file defines no roles")
	}
	return &pf, nil
}

var knownMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
	"*":               true,
}

// Rules flattens the file into casbin rules {role, path, method}.
func (pf *PolicyFile) Rules() ([][]string, error) {
	var rules [][]string
	for roleName, routes := range pf.Roles {
		role, err := authorization.ParseUserRole(roleName)
		if err != nil {
			return nil, err
		}
		for _, route := range routes {
			if !strings.HasPrefix(route.Path, "/") {
				return nil, fmt.Errorf("role %s: path %q must start with /", role, route.Path)
			}
			if len(route.Methods) == 0 {
				return nil, fmt.Errorf("role %s: path %s lists no methods", role, route.Path)
			}
			for _, m := range route.Methods {
				method := strings.ToUpper(m)
				if !knownMethods[method] {
					return nil, fmt.Errorf("role %s: unknown method %q", role, m)
				}
				rules = append(rules, []string{role.String(), route.Path, method})
			}
		}
	}
	return rules, nil
}
