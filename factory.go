package resq

// Factory creates resources that share a set of default options.
//
// Options merge across three tiers: built-in defaults, factory defaults,
// then per-resource options. Scalar fields from the more specific tier win;
// Parsers concatenate across all tiers, so factory-level parsers always run
// before resource-level ones.
type Factory struct {
	defaults *Options
}

// NewFactory creates a Factory with the given default options.
// A nil defaults is valid and yields built-in behavior.
func NewFactory(defaults *Options) *Factory {
	return &Factory{defaults: defaults}
}

// New creates a Resource bound to method and urlTemplate, merging the
// factory defaults with opts. The process-wide default interpolation
// pattern is snapshotted here: later SetDefaultPattern calls do not affect
// this resource.
func (f *Factory) New(method, urlTemplate string, opts *Options) *Resource {
	base := &Options{Pattern: DefaultPattern()}
	return &Resource{
		method: method,
		url:    urlTemplate,
		opts:   mergeOptions(mergeOptions(base, f.defaults), opts),
	}
}
