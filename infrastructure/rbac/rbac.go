package rbac

import (
	"strings"
	"sync"
)

const (
	RoleAdmin = "admin"
	RoleKasir = "kasir"
)

// Resource maps a role to one method+path it may call.
type Resource struct {
	Role   string
	Method string
	Path   string
}

// Rbac stores route resources per role. Routes are registered once at
// startup; validation runs on every authenticated request.
type Rbac struct {
	mu        sync.RWMutex
	resources map[string][]Resource
}

func New() *Rbac {
	return &Rbac{resources: make(map[string][]Resource)}
}

func (r *Rbac) Add(role, method, path string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[role] = append(r.resources[role], Resource{
		Role:   role,
		Method: strings.ToUpper(method),
		Path:   path,
	})
}

// Allowed reports whether any of the user's roles may call method+path.
// Admin passes every registered check.
func (r *Rbac) Allowed(roles []string, urlPath, method string) bool {
	if r == nil || len(roles) == 0 {
		return false
	}
	for _, role := range roles {
		if role == RoleAdmin {
			return true
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	method = strings.ToUpper(method)
	for _, role := range roles {
		for _, res := range r.resources[role] {
			if res.Method != method {
				continue
			}
			if matchPath(res.Path, urlPath) {
				return true
			}
		}
	}
	return false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	pattern = strings.Trim(pattern, "/")
	path = strings.Trim(path, "/")

	patternSeg := strings.Split(pattern, "/")
	pathSeg := strings.Split(path, "/")

	// Segment wildcard matching: /a/*/c and /a/*/*/d.
	if len(patternSeg) == len(pathSeg) {
		for i := range patternSeg {
			if patternSeg[i] == "*" {
				continue
			}
			if patternSeg[i] != pathSeg[i] {
				return false
			}
		}
		return true
	}

	// Prefix wildcard matching: /a/b/* should match any deeper suffix.
	if len(patternSeg) > 0 && patternSeg[len(patternSeg)-1] == "*" {
		prefix := "/" + strings.Join(patternSeg[:len(patternSeg)-1], "/")
		return strings.HasPrefix("/"+path, prefix+"/") || "/"+path == prefix
	}

	return false
}
