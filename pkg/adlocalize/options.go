// Package adlocalize exports tabular localization data to platform string
// resources.
package adlocalize

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/merge"
	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/platform"
)

// DefaultOutputPath is the export folder used when none is given.
const DefaultOutputPath = "exports"

// Options configures an export run. Every field is optional; Resolve fills
// the defaults.
type Options struct {
	// OutputPath is the export root. If nil, defaults to DefaultOutputPath.
	OutputPath *string
	// Platforms restricts the exported platforms. If empty, all supported
	// platforms are exported.
	Platforms []string
	// Merge combines several sources into one export. If nil, each source is
	// exported on its own under a directory named after it.
	Merge *merge.Policy
	// Fs is the filesystem written to. If nil, the OS filesystem is used.
	Fs afero.Fs
	// Logger receives progress messages. If nil, nothing is logged.
	Logger *zap.SugaredLogger
}

// resolved holds Options with defaults applied and platforms validated.
type resolved struct {
	outputPath string
	platforms  []platform.Platform
	merge      *merge.Policy
	fs         afero.Fs
	logger     *zap.SugaredLogger
}

// resolve applies defaults and validates the platform list.
func (o Options) resolve() (*resolved, error) {
	r := &resolved{
		outputPath: DefaultOutputPath,
		merge:      o.Merge,
		fs:         o.Fs,
		logger:     o.Logger,
	}
	if o.OutputPath != nil && *o.OutputPath != "" {
		r.outputPath = *o.OutputPath
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.logger == nil {
		r.logger = zap.NewNop().Sugar()
	}

	if len(o.Platforms) == 0 {
		r.platforms = platform.All()
		return r, nil
	}
	seen := make(map[platform.Platform]bool)
	for _, name := range o.Platforms {
		p, err := platform.ParsePlatform(name)
		if err != nil {
			return nil, &UnsupportedPlatformError{Platform: name}
		}
		if !seen[p] {
			seen[p] = true
			r.platforms = append(r.platforms, p)
		}
	}
	return r, nil
}

// String returns a pointer to s, for optional Options fields.
func String(s string) *string {
	return &s
}

// Policy returns a pointer to p, for Options.Merge.
func Policy(p merge.Policy) *merge.Policy {
	return &p
}
