package adlocalize

import "github.com/ukaji3/adlocalize-go/pkg/adlocalize/platform"

// Report describes what a run exported.
type Report struct {
	// Exports has one entry per exported dataset, in export order.
	Exports []DatasetExport
	// Warnings holds recoverable problems, such as *EmptyDatasetWarning.
	Warnings []error
	// Skipped lists sources ignored because of their file type.
	Skipped []string
}

// DatasetExport is the export of one dataset to every platform.
type DatasetExport struct {
	// Source is the dataset's source; the first source for merged data.
	Source string
	// Suffix is the per-source directory, empty for single or merged exports.
	Suffix string
	// Locales are the exported locales.
	Locales []string
	// Records is the number of keys in the dataset.
	Records int
	// Platforms has one result per platform, in export order.
	Platforms []PlatformResult
}

// PlatformResult is the outcome of exporting a dataset to one platform.
type PlatformResult struct {
	Platform platform.Platform
	// Files are the written files, in locale order.
	Files []string
	// Err is set when the platform export failed; Files then lists the files
	// written before the failure.
	Err error
}

// Files returns every file written during the run.
func (r *Report) Files() []string {
	var files []string
	for _, e := range r.Exports {
		for _, p := range e.Platforms {
			files = append(files, p.Files...)
		}
	}
	return files
}

// Failed reports whether any platform export failed.
func (r *Report) Failed() bool {
	for _, e := range r.Exports {
		for _, p := range e.Platforms {
			if p.Err != nil {
				return true
			}
		}
	}
	return false
}
