// Package models defines the normalized in-memory form of localization data.
package models

// Record is one translatable unit: a key and its per-locale values.
type Record struct {
	// Key is the translation key, unique within a Dataset.
	Key string `json:"key"`
	// Values maps locale to translation. A missing locale means absent,
	// an empty string is a blank translation.
	Values map[string]string `json:"values"`
}

// Value returns the translation for locale and whether it is present.
func (r Record) Value(locale string) (string, bool) {
	v, ok := r.Values[locale]
	return v, ok
}

// Dataset is an ordered set of records plus the locales they use.
// A Dataset is read-only once built; use a Builder to create one.
type Dataset struct {
	source  string
	locales []string
	records []Record
	index   map[string]int
}

// Source returns the name of the input the dataset was built from.
func (d *Dataset) Source() string {
	return d.source
}

// Locales returns the locales in first-seen order.
func (d *Dataset) Locales() []string {
	out := make([]string, len(d.locales))
	copy(out, d.locales)
	return out
}

// HasLocale reports whether locale is part of the dataset.
func (d *Dataset) HasLocale(locale string) bool {
	for _, l := range d.locales {
		if l == locale {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// IsEmpty reports whether the dataset has no records.
func (d *Dataset) IsEmpty() bool {
	return len(d.records) == 0
}

// Keys returns the record keys in dataset order.
func (d *Dataset) Keys() []string {
	keys := make([]string, len(d.records))
	for i, r := range d.records {
		keys[i] = r.Key
	}
	return keys
}

// Records returns a copy of the records in dataset order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	for i, r := range d.records {
		out[i] = copyRecord(r)
	}
	return out
}

// Record returns the record for key.
func (d *Dataset) Record(key string) (Record, bool) {
	i, ok := d.index[key]
	if !ok {
		return Record{}, false
	}
	return copyRecord(d.records[i]), true
}

// Value returns the translation of key for locale and whether it is present.
func (d *Dataset) Value(key, locale string) (string, bool) {
	i, ok := d.index[key]
	if !ok {
		return "", false
	}
	return d.records[i].Value(locale)
}

// Entry is a key/value pair for a single locale.
type Entry struct {
	Key   string
	Value string
}

// Entries returns, in dataset order, the keys that have a value for locale.
func (d *Dataset) Entries(locale string) []Entry {
	var out []Entry
	for _, r := range d.records {
		if v, ok := r.Values[locale]; ok {
			out = append(out, Entry{Key: r.Key, Value: v})
		}
	}
	return out
}

func copyRecord(r Record) Record {
	values := make(map[string]string, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return Record{Key: r.Key, Values: values}
}
