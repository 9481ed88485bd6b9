package entity

// Key addresses a single record: one value per key field.
type Key map[string]string

// KeyOf extracts the full key of a validated record. Every key component must
// be a non-empty string.
func (s *Schema) KeyOf(rec Record) (Key, error) {
	key := make(Key, 2)
	for _, field := range s.Key.Fields() {
		v := rec[field]
		if IsBlank(v) {
			return nil, &ValidationError{Field: field, msg: "Missing required key field: " + field}
		}
		str, ok := v.(string)
		if !ok {
			return nil, &ValidationError{Field: field, Value: v, msg: "Key field " + field + " must be a string"}
		}
		key[field] = str
	}
	return key, nil
}

// ResolveKey builds the key of a single-record request from the path value of
// the partition field and the query parameters. A composite key without its
// sort component is rejected, never treated as a collection request.
func (s *Schema) ResolveKey(pathValue string, query map[string]string) (Key, error) {
	if pathValue == "" {
		return nil, MissingPathParam(s.Key.Partition)
	}
	key := Key{s.Key.Partition: pathValue}
	if !s.Key.IsComposite() {
		return key, nil
	}
	sort := query[s.Key.Sort]
	if sort == "" {
		return nil, MissingQueryParam(s.Key.Sort)
	}
	key[s.Key.Sort] = sort
	return key, nil
}

// Subset returns the mutable fields of rec, the only fields an update writes.
func (s *Schema) Subset(rec Record) Record {
	out := make(Record, len(s.Mutable))
	for _, field := range s.Mutable {
		out[field] = rec[field]
	}
	return out
}
