package main

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/cli/logging"
	"github.com/kdt3rd/constructor/src/hostapi"
	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/kdt3rd/constructor/src/scope"
	"github.com/kdt3rd/constructor/src/transform"
)

// resolveProject loads the project rooted at subdir and runs the Transform
// pass over it. Parsing the project's own script file is delegated to an
// external script-host runtime that calls into src/hostapi to build up the
// item graph; constructing that runtime is out of scope here, so this
// entrypoint only demonstrates wiring an already-populated host through to
// the Transform pass.
func resolveProject(subdir string) error {
	dir := ospath.NewDirectory(subdir)
	ospath.Pushd(dir)
	defer func() { _ = ospath.Popd() }()

	host := hostapi.New()
	outDir := dir.Clone()
	outDir.Cd("build")

	ts, err := transform.NewSet(outDir)
	if err != nil {
		return fmt.Errorf("resolveProject: %w", err)
	}

	root := scope.Root()
	conf := scope.Default()
	if conf == nil {
		conf = scope.LastConfiguration()
	}

	if err := transform.TransformScope(host.Arena, root, conf, ts); err != nil {
		return fmt.Errorf("resolveProject: %w", err)
	}
	logging.Log.Infof("resolved project under %s into %s", dir.FullPath(), outDir.FullPath())
	return nil
}
