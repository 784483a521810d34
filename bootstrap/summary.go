package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/simplemovies/observability"
)

// InfrastructureInfo describes a backing store.
type InfrastructureInfo struct {
	Name    string
	Type    string
	Details string
}

// ServiceInfo describes a registered domain service and what it sits on.
type ServiceInfo struct {
	Name    string
	Backing string
}

// ClientInfo describes an outbound client.
type ClientInfo struct {
	Name   string
	Target string
	Type   string
}

// RouteInfo describes a registered HTTP route.
type RouteInfo struct {
	Method string
	Path   string
}

// Summary collects what bootstrap wired and prints it once startup is done.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	infrastructure  []InfrastructureInfo
	services        []ServiceInfo
	clients         []ClientInfo
	routes          []RouteInfo
}

// NewSummary creates an empty Summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackInfrastructure records a backing store.
func (s *Summary) TrackInfrastructure(name, kind, details string) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{Name: name, Type: kind, Details: details})
}

// TrackService records a domain service.
func (s *Summary) TrackService(name, backing string) {
	s.services = append(s.services, ServiceInfo{Name: name, Backing: backing})
}

// TrackClient records an outbound client.
func (s *Summary) TrackClient(name, target, kind string) {
	s.clients = append(s.clients, ClientInfo{Name: name, Target: target, Type: kind})
}

// TrackRoute records an HTTP route.
func (s *Summary) TrackRoute(method, path string) {
	s.routes = append(s.routes, RouteInfo{Method: method, Path: path})
}

// Routes returns the tracked routes.
func (s *Summary) Routes() []RouteInfo {
	return append([]RouteInfo(nil), s.routes...)
}

// Display writes the summary, with live health from checkers, to w.
func (s *Summary) Display(ctx context.Context, w io.Writer, checkers []observability.HealthChecker) {
	version := s.version
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(w, "\n🚀 %s %s started in %.2fs\n", s.serviceName, version, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "\n📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			fmt.Fprintf(w, "   %s %s [%s]: %s\n", branch(i, len(s.infrastructure)), inf.Name, inf.Type, inf.Details)
		}
	}

	if len(s.services) > 0 {
		fmt.Fprintf(w, "\n💼 Services\n")
		for i, svc := range s.services {
			fmt.Fprintf(w, "   %s %s → %s\n", branch(i, len(s.services)), svc.Name, svc.Backing)
		}
	}

	if len(s.clients) > 0 {
		fmt.Fprintf(w, "\n🔌 Clients\n")
		for i, c := range s.clients {
			fmt.Fprintf(w, "   %s %s → %s [%s]\n", branch(i, len(s.clients)), c.Name, c.Target, c.Type)
		}
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-7s %s\n", branch(i, len(s.routes)), r.Method, r.Path)
		}
	}

	if len(checkers) > 0 {
		sh := observability.Check(ctx, s.serviceName, s.version, checkers...)
		fmt.Fprintf(w, "\n🏥 Health (%s)\n", sh.Status)
		for i, h := range sh.Components {
			msg := ""
			if h.Message != "" {
				msg = " - " + h.Message
			}
			fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(sh.Components)), healthIcon(h.Status), h.Name, h.Status, msg)
		}
	}
	fmt.Fprintln(w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return "✅"
	case observability.HealthStatusDegraded:
		return "⚠️"
	case observability.HealthStatusDown:
		return "❌"
	default:
		return "❓"
	}
}
