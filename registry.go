package cqldb

// CodecRegistry resolves a codec for a wire type paired with either a
// requested target type or a runtime value. A registry is built and
// extended during driver configuration; once request traffic starts it is
// only ever read. Concurrent resolution is safe, concurrent registration is
// not (single-writer-then-many-readers discipline, enforced by the host
// driver's startup ordering).
type CodecRegistry struct {
	codecs []Codec
	byPair map[pairKey]Codec
}

type pairKey struct {
	dataType string
	target   string
}

// RegistryOption customizes a registry at construction time.
type RegistryOption func(*CodecRegistry) error

// WithCodec registers a user codec in addition to the built-in set.
func WithCodec(c Codec) RegistryOption {
	return func(r *CodecRegistry) error {
		return r.Register(c)
	}
}

// NewCodecRegistry returns a registry loaded with the built-in codecs. The
// built-ins cover every primitive wire type except custom; list, set and
// map codecs are composed on demand from the element registrations.
func NewCodecRegistry(opts ...RegistryOption) (*CodecRegistry, error) {
	r := &CodecRegistry{byPair: make(map[pairKey]Codec)}
	for _, c := range builtinCodecs() {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func builtinCodecs() []Codec {
	return []Codec{
		booleanCodec{},
		tinyIntCodec{},
		smallIntCodec{},
		intCodec{},
		bigIntCodec{code: TypeBigInt},
		bigIntCodec{code: TypeCounter},
		floatCodec{},
		doubleCodec{},
		stringCodec{code: TypeAscii},
		stringCodec{code: TypeText},
		stringCodec{code: TypeVarchar},
		blobCodec{},
		uuidCodec{code: TypeUUID},
		uuidCodec{code: TypeTimeUUID},
		inetCodec{},
		timestampCodec{},
		dateCodec{},
		timeCodec{},
		varintCodec{},
		decimalCodec{},
	}
}

// Register adds a codec for its declared (wire type, target type) pair.
// Existing registrations are never replaced; registering a duplicate pair
// is an error. Must not run concurrently with resolution.
func (r *CodecRegistry) Register(c Codec) error {
	key := pairKey{c.DataType().String(), c.TargetType().String()}
	if _, dup := r.byPair[key]; dup {
		return encodeErrorf("codec already registered for %s / %s", c.DataType(), c.TargetType())
	}
	r.byPair[key] = c
	r.codecs = append(r.codecs, c)
	return nil
}

// Resolve returns the codec for the exact (wire type, target type) pair,
// composing collection codecs when both sides are structured. It fails with
// a CodecNotFoundError naming both types.
func (r *CodecRegistry) Resolve(dataType DataType, target TargetType) (Codec, error) {
	if c, ok := r.byPair[pairKey{dataType.String(), target.String()}]; ok {
		return c, nil
	}
	if c, ok := r.compose(dataType, &target); ok {
		return c, nil
	}
	t := target
	return nil, &CodecNotFoundError{DataType: dataType, Target: &t, Index: -1}
}

// ResolveType returns the codec producing the default Go representation of
// a wire type: the first registration for that type, or a composed codec
// for collections.
func (r *CodecRegistry) ResolveType(dataType DataType) (Codec, error) {
	for _, c := range r.codecs {
		if c.DataType().Equal(dataType) {
			return c, nil
		}
	}
	if c, ok := r.compose(dataType, nil); ok {
		return c, nil
	}
	return nil, &CodecNotFoundError{DataType: dataType, Index: -1}
}

// ResolveValue returns the codec for a wire type and a runtime value. An
// exact registration for the value's inferred target type wins; otherwise
// the registrations for the wire type are scanned in registration order
// (primitives before anything user-supplied) for one that accepts the
// value, so a plain int can still bind to an int or bigint variable.
func (r *CodecRegistry) ResolveValue(dataType DataType, value interface{}) (Codec, error) {
	if value == nil {
		return r.ResolveType(dataType)
	}
	if target, ok := inferTarget(value); ok {
		if c, ok := r.byPair[pairKey{dataType.String(), target.String()}]; ok {
			return c, nil
		}
	}
	for _, c := range r.codecs {
		if c.DataType().Equal(dataType) && c.Accepts(value) {
			return c, nil
		}
	}
	if c, ok := r.compose(dataType, nil); ok && c.Accepts(value) {
		return c, nil
	}
	return nil, &CodecNotFoundError{DataType: dataType, Value: value, Index: -1}
}

// compose builds a collection codec from element registrations. With a nil
// target the elements use their default representations.
func (r *CodecRegistry) compose(dataType DataType, target *TargetType) (Codec, bool) {
	switch dataType.code {
	case TypeList, TypeSet:
		if target != nil && target.Kind != KindSlice {
			return nil, false
		}
		elemType, _ := dataType.Elem()
		var elem Codec
		var err error
		if target != nil {
			elem, err = r.Resolve(elemType, *target.Elem)
		} else {
			elem, err = r.ResolveType(elemType)
		}
		if err != nil {
			return nil, false
		}
		return listCodec{dt: dataType, elem: elem}, true
	case TypeMap:
		if target != nil && target.Kind != KindMapOf {
			return nil, false
		}
		keyType, _ := dataType.Key()
		valType, _ := dataType.Elem()
		var key, val Codec
		var err error
		if target != nil {
			if key, err = r.Resolve(keyType, *target.Key); err != nil {
				return nil, false
			}
			val, err = r.Resolve(valType, *target.Elem)
		} else {
			if key, err = r.ResolveType(keyType); err != nil {
				return nil, false
			}
			val, err = r.ResolveType(valType)
		}
		if err != nil {
			return nil, false
		}
		return mapCodec{dt: dataType, key: key, val: val}, true
	}
	return nil, false
}
