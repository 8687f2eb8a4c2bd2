package typesystem

// Equal is deep structural equality. Record field names and order matter.
func Equal(a, b Type) bool {
	switch ta := a.(type) {
	case nil:
		return b == nil
	case TCon:
		tb, ok := b.(TCon)
		return ok && ta.Name == tb.Name
	case TArray:
		tb, ok := b.(TArray)
		return ok && Equal(ta.Elem, tb.Elem)
	case TRecord:
		tb, ok := b.(TRecord)
		if !ok || len(ta.Fields) != len(tb.Fields) {
			return false
		}
		for i := range ta.Fields {
			if ta.Fields[i].Name != tb.Fields[i].Name || !Equal(ta.Fields[i].Type, tb.Fields[i].Type) {
				return false
			}
		}
		return true
	case TFunc:
		tb, ok := b.(TFunc)
		return ok && Equal(ta.Formals, tb.Formals) && Equal(ta.Return, tb.Return)
	case TNull:
		_, ok := b.(TNull)
		return ok
	}
	panic("typesystem.Equal: unexpected type")
}

// Same is Equal, except that an unresolved type matches anything. The
// checker compares with Same so one unresolved type yields one error.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return true
	}
	switch ta := a.(type) {
	case TArray:
		tb, ok := b.(TArray)
		return ok && Same(ta.Elem, tb.Elem)
	case TRecord:
		tb, ok := b.(TRecord)
		if !ok || len(ta.Fields) != len(tb.Fields) {
			return false
		}
		return sameFields(ta.Fields, tb.Fields)
	case TFunc:
		tb, ok := b.(TFunc)
		return ok && Same(ta.Formals, tb.Formals) && Same(ta.Return, tb.Return)
	}
	return Equal(a, b)
}

func sameFields(a, b []Field) bool {
	for i := range b {
		if a[i].Name != b[i].Name || !Same(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}

// IsSubtype reports sub <: sup. Null is a subtype of every record; arrays
// are invariant; a record is a subtype of any prefix of itself; functions
// are contravariant in their formals and covariant in their result.
func IsSubtype(sub, sup Type) bool {
	if Same(sub, sup) {
		return true
	}
	if IsNull(sub) {
		return IsNull(sup) || IsRecord(sup)
	}
	switch ts := sub.(type) {
	case TRecord:
		tp, ok := sup.(TRecord)
		return ok && len(ts.Fields) >= len(tp.Fields) && sameFields(ts.Fields, tp.Fields)
	case TFunc:
		tp, ok := sup.(TFunc)
		return ok && IsSubtype(tp.Formals, ts.Formals) && IsSubtype(ts.Return, tp.Return)
	}
	return false
}

// IsCastable extends IsSubtype: records cast to null and to any record
// related by subtyping in either direction, and primitives cast to each other.
func IsCastable(from, to Type) bool {
	if IsSubtype(from, to) {
		return true
	}
	if IsRecord(from) && IsNull(to) {
		return true
	}
	switch tf := from.(type) {
	case TCon:
		_, ok := to.(TCon)
		return ok
	case TArray:
		tt, ok := to.(TArray)
		return ok && Same(tf.Elem, tt.Elem)
	case TRecord:
		return IsRecord(to) && IsSubtype(to, from)
	case TFunc:
		tt, ok := to.(TFunc)
		return ok && IsCastable(tt.Formals, tf.Formals) && IsCastable(tf.Return, tt.Return)
	}
	return false
}
