package manifest

import (
	"fmt"
	"os"

	"github.com/matzehuels/sunset/pkg/errors"
)

const scaffoldTemplate = `[project]
name = %q
%s
# framework = %q   # registry identity, defaults to the project name

# [[deprecations]]
# message = "describe what is going away"
# warn_in = "1.2.0"
# gone_in = "2.0.0"
# replace_with = "the supported alternative"

# [[packages]]
# name = ":internal-api"
# version = "0.1.0"
#
# [[packages.deprecations]]
# message = "old fixture layout"
# gone_in = "0.2.0"
`

// Scaffold writes a starter manifest to path.
//
// When version is empty the version line is emitted commented out, leaving
// resolution to the registry. An existing file is never overwritten unless
// force is set; the refusal is an INVALID_STATE error.
func Scaffold(path, name, version string, force bool) error {
	if err := errors.ValidateManifestPath(path); err != nil {
		return err
	}
	if err := errors.ValidatePackageName(name); err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidState, "manifest %s already exists (use force to overwrite)", path)
		}
	}

	versionLine := `# version = "1.0.0"   # omitted: resolved from the installed package`
	if version != "" {
		versionLine = fmt.Sprintf("version = %q", version)
	}

	content := fmt.Sprintf(scaffoldTemplate, name, versionLine, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write manifest %s", path)
	}
	return nil
}
