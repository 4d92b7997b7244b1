package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	components map[string]Pinger
}

// New creates a Service checking the search engine. Optional backends are added with With.
func New(engine Pinger) *Service {
	return &Service{components: map[string]Pinger{"search_engine": engine}}
}

// With registers an optional backend. A nil pinger is ignored.
func (s *Service) With(name string, p Pinger) *Service {
	if p != nil {
		s.components[name] = p
	}
	return s
}

// Components returns the checked component names, sorted.
func (s *Service) Components() []string {
	names := make([]string, 0, len(s.components))
	for name := range s.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components))
	status := Healthy
	for name, p := range s.components {
		if err := p.Ping(ctx); err != nil {
			checks[name] = CheckError
			status = Degraded
			continue
		}
		checks[name] = CheckOK
	}
	return Report{Status: status, Checks: checks}
}
