package deptest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/hooks"
)

// Runner is the subset of [testing.M] that Main needs. Accepting the
// interface keeps Main testable without building a real test binary.
type Runner interface {
	Run() int
}

// Session observes every deprecation emission between Start and Stop.
type Session struct {
	id       uuid.UUID
	out      io.Writer
	annotate bool

	mu     sync.Mutex
	prev   hooks.EmissionHooks
	events []hooks.EmissionEvent
	active bool
}

// Option configures a session at Start.
type Option func(*Session)

// WithOutput sets where Main writes summaries and annotations.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithAnnotations forces GitHub Actions annotations on or off, overriding
// the GITHUB_ACTIONS environment detection.
func WithAnnotations(enabled bool) Option {
	return func(s *Session) { s.annotate = enabled }
}

// Start installs the session as the process emission hook and begins
// collecting. The previously installed hook keeps receiving every emission,
// so a session can stack on top of logging hooks without silencing them.
// Call Stop to restore the previous hook.
func Start(opts ...Option) *Session {
	s := &Session{
		id:       uuid.New(),
		out:      os.Stdout,
		annotate: os.Getenv("GITHUB_ACTIONS") == "true",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.prev = hooks.SetEmissionHooks(s)
	s.active = true
	s.mu.Unlock()
	return s
}

// Stop restores the emission hook that was installed when the session
// started and freezes the collected events. Safe to call more than once.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	prev := s.prev
	s.mu.Unlock()

	hooks.SetEmissionHooks(prev)
}

// OnEmission implements [hooks.EmissionHooks]. Emissions are recorded while
// the session is active and always forwarded to the previous hook.
func (s *Session) OnEmission(e hooks.EmissionEvent) {
	s.mu.Lock()
	if s.active {
		s.events = append(s.events, e)
	}
	prev := s.prev
	s.mu.Unlock()

	if prev != nil {
		prev.OnEmission(e)
	}
}

// ID returns the session identifier used in summaries.
func (s *Session) ID() string {
	return s.id.String()
}

// Len returns the number of emissions observed so far.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// Expired returns the expired-state emissions in the order observed.
func (s *Session) Expired() []hooks.EmissionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []hooks.EmissionEvent
	for _, e := range s.events {
		if e.State == deprecation.Expired.String() {
			expired = append(expired, e)
		}
	}
	return expired
}

// Failed reports whether any expired deprecation was emitted.
func (s *Session) Failed() bool {
	return len(s.Expired()) > 0
}

// GitHub workflow commands require percent-encoding of newlines; properties
// additionally encode the command delimiters.
var (
	annotationData = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	annotationProp = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// WriteAnnotations writes one GitHub Actions error annotation per expired
// emission, pointing at the emission site when one was captured.
func (s *Session) WriteAnnotations(w io.Writer) error {
	for _, e := range s.Expired() {
		var err error
		if e.File != "" {
			_, err = fmt.Fprintf(w, "::error file=%s,line=%d,title=deprecation::%s\n",
				annotationProp.Replace(e.File), e.Line, annotationData.Replace(e.Message))
		} else {
			_, err = fmt.Fprintf(w, "::error title=deprecation::%s\n",
				annotationData.Replace(e.Message))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes a short session report listing the expired emissions.
func (s *Session) WriteSummary(w io.Writer) error {
	expired := s.Expired()
	if _, err := fmt.Fprintf(w, "\ndeprecation session %s: %d emitted, %d expired\n",
		s.id, s.Len(), len(expired)); err != nil {
		return err
	}
	for _, e := range expired {
		site := e.Locator
		if site == "" {
			site = e.Package
		}
		if _, err := fmt.Fprintf(w, "  %s (gone %s): %s\n",
			site, e.GoneIn, firstLine(e.Message)); err != nil {
			return err
		}
	}
	return nil
}

// Main wraps a test run in a session and turns expired emissions into a
// session-level failure. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(deptest.Main(m))
//	}
//
// When the run itself passes but expired deprecations were emitted, Main
// prints a summary and returns 1. A failing run keeps its own exit code, with
// the summary appended for context. Annotations are written when running
// under GitHub Actions.
func Main(m Runner, opts ...Option) int {
	s := Start(opts...)
	code := m.Run()
	s.Stop()

	if s.annotate {
		_ = s.WriteAnnotations(s.out)
	}
	if s.Failed() {
		_ = s.WriteSummary(s.out)
		if code == 0 {
			code = 1
		}
	}
	return code
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
