package adlocalize

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/merge"
	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/parser"
	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/platform"
)

// Source is one tabular input, either a file path or in-memory content.
type Source struct {
	// Path is the file to read when Content is nil.
	Path string
	// Name identifies Content; its extension selects the format.
	// Defaults to Path.
	Name string
	// Content is the raw file content, if already loaded.
	Content []byte
}

// PathSources returns one Source per file path.
func PathSources(paths ...string) []Source {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = Source{Path: p}
	}
	return sources
}

func (s Source) name() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Path
}

// baseName is the file name of the source without extension.
func (s Source) baseName() string {
	base := filepath.Base(s.name())
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run parses sources and exports them to every requested platform.
//
// Several sources are merged when opts.Merge is set, and exported one by one
// into per-source directories otherwise. Parsing stops at the first invalid
// source, before anything is written. A platform that fails to export does
// not stop the others; the failures are returned as an *ExportError along
// with the report.
func Run(sources []Source, opts Options) (*Report, error) {
	if len(sources) == 0 {
		return nil, ErrNoInput
	}
	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	log := cfg.logger
	report := &Report{}

	var selected []Source
	for _, src := range sources {
		if _, err := parser.DetectFormat(src.name()); err != nil {
			log.Warnf("Skipping %s: not a CSV or XLSX file", src.name())
			report.Skipped = append(report.Skipped, src.name())
			continue
		}
		selected = append(selected, src)
	}
	if len(selected) == 0 {
		return report, ErrNoInput
	}

	datasets := make([]*models.Dataset, 0, len(selected))
	for _, src := range selected {
		log.Infof("Parsing %s", src.name())
		ds, err := extract(src)
		if err != nil {
			return report, err
		}
		log.Debugf("Found %d keys and locales %v in %s", ds.Len(), ds.Locales(), src.name())
		datasets = append(datasets, ds)
	}

	e := &exporter{cfg: cfg, report: report}
	switch {
	case len(datasets) == 1:
		e.export(datasets[0], "")
	case cfg.merge != nil:
		log.Infof("Merging %d sources (%s)", len(datasets), *cfg.merge)
		merged, err := merge.Merge(datasets, *cfg.merge)
		if err != nil {
			return report, err
		}
		e.export(merged, "")
	default:
		for i, ds := range datasets {
			e.export(ds, selected[i].baseName())
		}
	}

	if len(e.failures) > 0 {
		return report, &ExportError{Failures: e.failures}
	}
	return report, nil
}

func extract(src Source) (*models.Dataset, error) {
	var ds *models.Dataset
	var err error
	if src.Content != nil {
		format, ferr := parser.DetectFormat(src.name())
		if ferr != nil {
			return nil, ferr
		}
		ds, err = parser.Extract(src.name(), bytes.NewReader(src.Content), format)
	} else {
		ds, err = parser.ExtractFile(src.Path)
	}
	if err == nil {
		return ds, nil
	}

	var csvErr *csv.ParseError
	if errors.Is(err, parser.ErrNoKeyColumn) || errors.Is(err, parser.ErrInvalidLocale) || errors.As(err, &csvErr) {
		return nil, &MalformedInputError{Source: src.name(), Err: err}
	}
	return nil, &IOError{Op: "read", Path: src.name(), Err: err}
}

// exporter writes datasets to every resolved platform and fills the report.
type exporter struct {
	cfg      *resolved
	report   *Report
	failures []PlatformFailure
}

func (e *exporter) export(ds *models.Dataset, suffix string) {
	log := e.cfg.logger
	if ds.IsEmpty() {
		warning := &EmptyDatasetWarning{Source: ds.Source()}
		log.Error(warning.Error())
		e.report.Warnings = append(e.report.Warnings, warning)
		return
	}

	locales := ds.Locales()
	result := DatasetExport{Source: ds.Source(), Suffix: suffix, Locales: locales, Records: ds.Len()}
	var defaultLocale string
	if len(locales) > 0 {
		defaultLocale = locales[0]
	}

	for _, p := range e.cfg.platforms {
		pr := PlatformResult{Platform: p}
		f, err := platform.New(p, platform.Config{
			Fs:            e.cfg.fs,
			Root:          e.cfg.outputPath,
			PlatformDir:   len(e.cfg.platforms) > 1,
			Suffix:        suffix,
			DefaultLocale: defaultLocale,
		})
		if err != nil {
			pr.Err = err
		} else {
			pr.Files, pr.Err = exportLocales(f, ds, locales)
		}

		if pr.Err != nil {
			log.Errorf("Export to %s failed: %v", p, pr.Err)
			e.failures = append(e.failures, PlatformFailure{Source: ds.Source(), Platform: p, Err: pr.Err})
		} else {
			log.Infof("Exported %d %s files for %s", len(pr.Files), p, ds.Source())
		}
		result.Platforms = append(result.Platforms, pr)
	}

	e.report.Exports = append(e.report.Exports, result)
}

// exportLocales writes one file per locale and stops at the first failure.
func exportLocales(f platform.Formatter, ds *models.Dataset, locales []string) ([]string, error) {
	var files []string
	for _, locale := range locales {
		path, err := f.Export(locale, ds)
		if err != nil {
			if errors.Is(err, platform.ErrKeyConflict) {
				return files, err
			}
			return files, &IOError{Op: "write", Path: f.Path(locale), Err: err}
		}
		files = append(files, path)
	}
	return files, nil
}
