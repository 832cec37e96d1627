package snapshot

import (
	"github.com/hupe1980/slotvec"
	"github.com/hupe1980/slotvec/codec"
)

// Option configures Encode, Decode and Manager.
type Option func(*options)

type options struct {
	codec       codec.Codec // nil: codec.Default on encode, header name on decode
	compression Compression
	logger      *slotvec.Logger
	metrics     slotvec.MetricsCollector
	keep        int
	prefix      string
	parallelism int
}

// WithCodec sets the value codec. On decode, the codec's name must match
// the name recorded in the snapshot.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCompression sets the payload compression for new snapshots.
// Decode reads the compression from the header.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger sets the Manager logger. Default: slotvec.NoopLogger().
func WithLogger(l *slotvec.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the Manager metrics sink.
func WithMetricsCollector(m slotvec.MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithKeep makes Manager.Save prune all but the newest n snapshots after
// every successful save. Zero disables automatic pruning.
func WithKeep(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.keep = n
		}
	}
}

// WithPrefix stores the Manager's snapshots under prefix, e.g. "users/".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithPruneParallelism bounds concurrent deletes during Prune. Default: 4.
func WithPruneParallelism(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression: CompressionNone,
		logger:      slotvec.NoopLogger(),
		metrics:     slotvec.NoopMetricsCollector{},
		parallelism: 4,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
