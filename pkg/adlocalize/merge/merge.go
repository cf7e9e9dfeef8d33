// Package merge combines several datasets into one.
package merge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

// Policy decides which value survives when two datasets translate the same
// key into the same locale.
type Policy string

const (
	// Replace keeps the value of the later dataset.
	Replace Policy = "replace"
	// Preserve keeps the value of the earlier dataset.
	Preserve Policy = "keep"
)

// ErrNoDatasets is returned when Merge is called without datasets.
var ErrNoDatasets = errors.New("no datasets to merge")

// ErrUnknownPolicy is returned by ParsePolicy for unrecognized names.
var ErrUnknownPolicy = errors.New("unknown merge policy")

// ParsePolicy converts a policy name into a Policy.
// "keep" and "preserve" both select Preserve.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "replace":
		return Replace, nil
	case "keep", "preserve":
		return Preserve, nil
	default:
		return "", fmt.Errorf("%w: %q (must be replace or keep)", ErrUnknownPolicy, s)
	}
}

// String returns the policy name.
func (p Policy) String() string {
	return string(p)
}

// Merge folds datasets left to right into a new dataset. Collisions are
// resolved per key and locale according to policy, so the order of datasets
// matters. A single dataset is returned as is. Inputs are never modified.
func Merge(datasets []*models.Dataset, policy Policy) (*models.Dataset, error) {
	if len(datasets) == 0 {
		return nil, ErrNoDatasets
	}
	if len(datasets) == 1 {
		return datasets[0], nil
	}
	if policy != Replace && policy != Preserve {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}

	b := models.NewBuilder(datasets[0].Source())
	for _, ds := range datasets {
		for _, locale := range ds.Locales() {
			b.AddLocale(locale)
		}
	}

	for i, ds := range datasets {
		for _, rec := range ds.Records() {
			b.AddKey(rec.Key)
			for _, locale := range ds.Locales() {
				value, ok := rec.Value(locale)
				if !ok {
					continue
				}
				if i > 0 && policy == Preserve && b.Has(rec.Key, locale) {
					continue
				}
				b.Set(rec.Key, locale, value)
			}
		}
	}

	return b.Build(), nil
}
