package models

// Builder accumulates records and locales into a Dataset.
// The zero value is not usable; call NewBuilder.
type Builder struct {
	ds *Dataset
}

// NewBuilder returns a Builder for a dataset read from source.
func NewBuilder(source string) *Builder {
	return &Builder{ds: &Dataset{
		source: source,
		index:  make(map[string]int),
	}}
}

// AddLocale registers locale if it is not known yet.
func (b *Builder) AddLocale(locale string) {
	if !b.ds.HasLocale(locale) {
		b.ds.locales = append(b.ds.locales, locale)
	}
}

// AddKey registers key with no values. It is a no-op for known keys.
func (b *Builder) AddKey(key string) {
	if _, ok := b.ds.index[key]; ok {
		return
	}
	b.ds.index[key] = len(b.ds.records)
	b.ds.records = append(b.ds.records, Record{Key: key, Values: make(map[string]string)})
}

// Set stores value for key and locale, overwriting any previous value.
// Unknown keys and locales are registered on the fly.
func (b *Builder) Set(key, locale, value string) {
	b.AddLocale(locale)
	b.AddKey(key)
	b.ds.records[b.ds.index[key]].Values[locale] = value
}

// Has reports whether key already has a value for locale.
func (b *Builder) Has(key, locale string) bool {
	_, ok := b.ds.Value(key, locale)
	return ok
}

// Build returns the dataset. The builder must not be used afterwards.
func (b *Builder) Build() *Dataset {
	ds := b.ds
	b.ds = nil
	return ds
}
