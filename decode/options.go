package decode

import "github.com/CCSDSPy/ccsdspy/internal/options"

// Options configures a decode call (§6 recognised configuration options).
type Options struct {
	IncludePrimaryHeader bool
	Only                 map[string]struct{} // non-nil: decode only these field names (SPEC_FULL.md read_subset)
}

// Option configures a decode call.
type Option = options.Option[*Options]

// WithIncludePrimaryHeader requests the seven primary-header pseudo-columns
// (CCSDS_VERSION_NUMBER, CCSDS_SECONDARY_FLAG, CCSDS_PACKET_TYPE,
// CCSDS_APID, CCSDS_SEQUENCE_FLAG, CCSDS_SEQUENCE_COUNT,
// CCSDS_PACKET_LENGTH) be included in the decoded output.
func WithIncludePrimaryHeader(v bool) Option {
	return options.NoError(func(o *Options) { o.IncludePrimaryHeader = v })
}

// WithFieldSubset restricts the output to the named fields (read_subset,
// SPEC_FULL.md). Fixed skips the bit math for every other field; Variable
// still decodes every field and drops the unrequested columns afterwards.
func WithFieldSubset(names ...string) Option {
	return options.NoError(func(o *Options) {
		o.Only = make(map[string]struct{}, len(names))
		for _, n := range names {
			o.Only[n] = struct{}{}
		}
	})
}

func buildOptions(opts ...Option) (Options, error) {
	var o Options
	if err := options.Apply(&o, opts...); err != nil {
		return Options{}, err
	}
	return o, nil
}
