// Package importer turns saved records back into diagram elements. Decoding
// goes through a Registry that maps record tags to decoder functions.
package importer

import (
	"log/slog"
	"sort"

	"classdraw/connections"
	"classdraw/diagram"
	"classdraw/logging"
)

// DecodeFunc builds an element from a record whose tag has been stripped.
// decoded holds every element decoded so far, in order; decoders that
// reference other elements resolve them there.
type DecodeFunc func(rec diagram.Record, decoded []diagram.Element) (diagram.Element, error)

// Registry maps record tags to decoders.
type Registry struct {
	decoders map[string]DecodeFunc
	logger   *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		decoders: make(map[string]DecodeFunc),
		logger:   logging.OrDiscard(logger),
	}
}

// NewDefaultRegistry returns a registry that knows every node and connection
// kind.
func NewDefaultRegistry(logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(diagram.TagClass, diagram.DecodeClass)
	r.Register(diagram.TagInterface, diagram.DecodeInterface)
	r.Register(diagram.TagDataType, diagram.DecodeDataType)
	r.Register(diagram.TagPrimitive, diagram.DecodePrimitive)
	r.Register(diagram.TagEnumeration, diagram.DecodeEnumeration)
	r.Register(diagram.TagComment, diagram.DecodeComment)
	r.Register(diagram.TagAssociation, connections.DecodeAssociation)
	r.Register(diagram.TagAggregation, connections.DecodeAggregation)
	r.Register(diagram.TagComposition, connections.DecodeComposition)
	r.Register(diagram.TagGeneralization, connections.DecodeGeneralization)
	return r
}

// Register binds tag to fn. A later registration for the same tag replaces
// the earlier one.
func (r *Registry) Register(tag string, fn DecodeFunc) {
	r.decoders[tag] = fn
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.decoders))
	for t := range r.decoders {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Deserialize decodes one record. Errors are *DeserializationError; only
// those with Retryable() true may succeed once more elements are decoded.
func (r *Registry) Deserialize(rec diagram.Record, decoded []diagram.Element) (diagram.Element, error) {
	return r.deserialize(rec, decoded, 0)
}

func (r *Registry) deserialize(rec diagram.Record, decoded []diagram.Element, index int) (diagram.Element, error) {
	tag := rec.Tag()
	if tag == "" {
		return nil, newError(MissingTag, "", index, nil)
	}
	fn, ok := r.decoders[tag]
	if !ok {
		return nil, newError(UnknownTag, tag, index, nil)
	}
	el, err := fn(rec.Without("tag"), decoded)
	if err != nil {
		return nil, classify(err, tag, index)
	}
	return el, nil
}

// BatchDeserialize decodes records left to right. A record that fails only
// because it references something not decoded yet is put on a wait list,
// unless it is the last record and nothing could still appear. The wait
// list is then decoded once, in original order, against everything decoded
// so far; retried elements are appended after the first-pass elements.
//
// Any other failure, or a second unresolved failure, aborts the batch and
// no elements are returned.
func (r *Registry) BatchDeserialize(records []diagram.Record) ([]diagram.Element, error) {
	decoded := make([]diagram.Element, 0, len(records))
	var waitlist []int

	for i, rec := range records {
		el, err := r.deserialize(rec, decoded, i)
		if err == nil {
			decoded = append(decoded, el)
			continue
		}
		de := err.(*DeserializationError)
		if !de.Retryable() || i == len(records)-1 {
			return nil, de
		}
		r.logger.Debug("deferring record", "index", i, "tag", de.Tag, "reason", de.Unwrap())
		waitlist = append(waitlist, i)
	}

	for _, i := range waitlist {
		el, err := r.deserialize(records[i], decoded, i)
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, el)
	}

	if len(waitlist) > 0 {
		r.logger.Debug("resolved deferred records", "count", len(waitlist))
	}
	return decoded, nil
}
