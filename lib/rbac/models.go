package rbac

import (
	"regexp"
	"task-flow-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// methodRules правила одного http метода. Точные пути проверяются раньше шаблонов,
// поэтому /tasks/export не перекрывается шаблоном /tasks/{id}
type methodRules struct {
	exact    map[string]models.RbacFunc
	patterns []patternRule
}

type patternRule struct {
	pattern *regexp.Regexp
	handler models.RbacFunc
}

func (r *methodRules) find(path string) (models.RbacFunc, bool) {
	if r == nil {
		return nil, false
	}
	if handler, ok := r.exact[path]; ok {
		return handler, true
	}
	for _, rule := range r.patterns {
		if rule.pattern.MatchString(path) {
			return rule.handler, true
		}
	}
	return nil, false
}
