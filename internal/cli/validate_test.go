package cli

import (
	"context"
	"testing"

	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/discovery"
	"github.com/matzehuels/sunset/pkg/errors"
)

const cleanManifest = `[project]
name = "billing"
version = "1.0.0"

[[deprecations]]
message = "legacy invoice export"
warn_in = "0.5.0"
gone_in = "2.0.0"
`

func TestRunValidateFailsOnExpired(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, projectManifest))

	err := c.runValidate(context.Background(), "")
	if !errors.Is(err, errors.ErrCodeExpiredFound) {
		t.Fatalf("runValidate() error = %v, want EXPIRED_FOUND", err)
	}
	if code := errors.ExitCode(err); code != 1 {
		t.Errorf("ExitCode() = %d, want 1", code)
	}
}

func TestRunValidateCleanProject(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, cleanManifest))

	if err := c.runValidate(context.Background(), ""); err != nil {
		t.Errorf("runValidate() error = %v, want nil", err)
	}
}

func TestRunValidateSinglePackage(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, projectManifest))

	if err := c.runValidate(context.Background(), "billing"); err != nil {
		t.Errorf("runValidate(billing) error = %v, want nil (record is only active)", err)
	}

	err := c.runValidate(context.Background(), ":reports")
	if !errors.Is(err, errors.ErrCodeExpiredFound) {
		t.Errorf("runValidate(:reports) error = %v, want EXPIRED_FOUND", err)
	}
}

func TestRunValidateUnknownPackage(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, projectManifest))

	err := c.runValidate(context.Background(), "untracked")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("runValidate() error = %v, want NOT_FOUND", err)
	}
}

func TestRunValidateRegistrations(t *testing.T) {
	c := newTestCLI(t, "")

	t.Run("consistent catalog", func(t *testing.T) {
		discovery.Reset()
		t.Cleanup(discovery.Reset)

		d := deprecation.MustNew("acme-api", deprecation.MustVersion("1.0.0"))
		discovery.MustRegisterDeprecator("acme-api", func() *deprecation.Deprecator { return d })

		if err := c.runValidateRegistrations(); err != nil {
			t.Errorf("runValidateRegistrations() error = %v, want nil", err)
		}
	})

	t.Run("mismatched name", func(t *testing.T) {
		discovery.Reset()
		t.Cleanup(discovery.Reset)

		d := deprecation.MustNew("acme-api", deprecation.MustVersion("1.0.0"))
		discovery.MustRegisterDeprecator("wrong-name", func() *deprecation.Deprecator { return d })

		err := c.runValidateRegistrations()
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Fatalf("runValidateRegistrations() error = %v, want INVALID_CONFIG", err)
		}
		if code := errors.ExitCode(err); code != 2 {
			t.Errorf("ExitCode() = %d, want 2", code)
		}
	})
}
