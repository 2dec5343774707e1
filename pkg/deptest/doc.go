// Package deptest fails test runs that exercise expired deprecations.
//
// A test binary opts in through TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(deptest.Main(m))
//	}
//
// Every deprecation emitted while the tests run is collected; if any of them
// is in the expired state, the run fails with exit code 1 even when all
// individual tests passed. The summary lists each expired emission with its
// gone-by version, and under GitHub Actions each one also becomes an error
// annotation on the emitting file and line.
//
// For finer control, Start and Stop scope a session to part of a run:
//
//	s := deptest.Start()
//	defer s.Stop()
//	// exercise code paths
//	if s.Failed() {
//		t.Errorf("expired deprecations: %v", s.Expired())
//	}
//
// Sessions chain: the emission hook that was installed before Start keeps
// receiving events, so logging and collection can coexist.
package deptest
