// Package manifest reads sunset.toml project files.
//
// A manifest declares deprecation schedules in configuration: the project's
// own records plus any additional tracked packages. [Load] parses and
// validates a file, [Find] discovers one by walking parent directories, and
// [File.Apply] replays the declarations into a registry:
//
//	path, err := manifest.Find(".")
//	if err != nil {
//		return err
//	}
//	f, err := manifest.Load(path)
//	if err != nil {
//		return err
//	}
//	reg := deprecation.NewRegistry(f.Framework())
//	if err := f.Apply(ctx, reg); err != nil {
//		return err
//	}
//
// [Scaffold] writes a starter file for new projects.
package manifest
