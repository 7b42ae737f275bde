package validate

import (
	"log/slog"
	"os"
	"slices"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

// FileSystem answers existence probes for resolved paths. It is the only
// I/O the engine performs.
type FileSystem interface {
	Exists(path string) bool
}

// OSFileSystem probes the local disk.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Options configures a validation pass.
type Options struct {
	// Disabled categories are merged with the project's own
	// disabledValidations option.
	Disabled []spec.ValidationCategory
	// FS defaults to OSFileSystem.
	FS FileSystem
	// Logger receives debug traces of the pass; nil discards them.
	Logger *slog.Logger
}

func (o Options) fileSystem() FileSystem {
	if o.FS == nil {
		return OSFileSystem{}
	}
	return o.FS
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) isDisabled(p *spec.Project, c spec.ValidationCategory) bool {
	return p.Options.IsDisabled(c) || slices.Contains(o.Disabled, c)
}
