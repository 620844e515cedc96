package bootstrap

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kbukum/depin/di"
	"github.com/kbukum/depin/logger"
)

// Summary tracks and displays the registry state of a runtime at startup.
type Summary struct {
	serviceName   string
	version       string
	started       time.Time
	registrations []di.RegistrationInfo
}

// NewSummary creates a new summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		started:     time.Now(),
	}
}

// Collect snapshots the registrations of c.
func (s *Summary) Collect(c di.Container) {
	s.registrations = c.Registrations()
}

// Registrations returns the last collected snapshot.
func (s *Summary) Registrations() []di.RegistrationInfo {
	return s.registrations
}

// Display prints the summary to stdout and logs the registration count.
func (s *Summary) Display(log *logger.Logger) {
	s.Render(os.Stdout)
	log.Info("registry summary", logger.Fields(
		logger.FieldCount, len(s.registrations),
		"uptime", time.Since(s.started).String(),
	))
}

// Render writes the summary as a tree to w.
func (s *Summary) Render(w io.Writer) {
	version := s.version
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(w, "\n🚀 %s %s ready in %.2fs\n\n", s.serviceName, version, time.Since(s.started).Seconds())

	fmt.Fprintf(w, "📦 Services (%d)\n", len(s.registrations))
	if len(s.registrations) == 0 {
		fmt.Fprintf(w, "   └── No services registered\n\n")
		return
	}

	built := 0
	for i, info := range s.registrations {
		prefix := "├──"
		if i == len(s.registrations)-1 {
			prefix = "└──"
		}
		fmt.Fprintf(w, "   %s %s %s [%s, %s]\n",
			prefix, registrationIcon(info), info.Key, info.Mode, info.Scope)
		if info.Initialized {
			built++
		}
	}
	fmt.Fprintf(w, "\n✅ %d/%d built, the rest resolve on first use\n\n", built, len(s.registrations))
}

func registrationIcon(info di.RegistrationInfo) string {
	switch {
	case info.Initialized:
		return "✅"
	case info.Scope == di.ScopeTransient:
		return "🔁"
	default:
		return "⚡"
	}
}
