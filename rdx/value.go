package rdx

import "fmt"

// Kind discriminates the tag of a GenericValue. Exactly one of the payload
// fields on GenericValue is meaningful for a given Kind.
type Kind byte

const (
	KindUnset Kind = iota
	KindBool
	KindI32
	KindI64
	KindF64
	KindString
	KindBlob
	KindListValue
	KindListI64
	KindListString
	KindMap
	KindStrMap
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindBool:
		return "bool"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	case KindBlob:
		return "blob"
	case KindListValue:
		return "list<value>"
	case KindListI64:
		return "list<i64>"
	case KindListString:
		return "list<string>"
	case KindMap:
		return "map"
	case KindStrMap:
		return "strmap"
	default:
		return "invalid"
	}
}

// GenericValue is a sealed tagged variant: exactly one payload field is
// live, selected by Kind. It is the unit of value carried by an ArgMap or
// ResultMap (spec.md §3).
type GenericValue struct {
	kind      Kind
	boolVal   bool
	i64Val    int64
	f64Val    float64
	strVal    string
	blobVal   []byte
	listVal   []GenericValue
	listI64   []int64
	listStr   []string
	mapVal    map[FieldId]GenericValue
	strMapVal map[string]GenericValue
}

// Kind reports the tag currently held.
func (v GenericValue) Kind() Kind { return v.kind }

// TypeMismatchError is returned by Unwrap when the requested type does not
// match the value's tag.
type TypeMismatchError struct {
	Want Kind
	Have Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("rdx: cannot view a %s value as %s", e.Have, e.Want)
}

// Unset constructs a GenericValue holding no value (KindUnset).
func Unset() GenericValue { return GenericValue{kind: KindUnset} }

// WrapBool constructs a bool-tagged GenericValue.
func WrapBool(b bool) GenericValue { return GenericValue{kind: KindBool, boolVal: b} }

// WrapI32 constructs an i32-tagged GenericValue.
func WrapI32(i int32) GenericValue { return GenericValue{kind: KindI32, i64Val: int64(i)} }

// WrapI64 constructs an i64-tagged GenericValue.
func WrapI64(i int64) GenericValue { return GenericValue{kind: KindI64, i64Val: i} }

// WrapF64 constructs an f64-tagged GenericValue.
func WrapF64(f float64) GenericValue { return GenericValue{kind: KindF64, f64Val: f} }

// WrapString constructs a string-tagged GenericValue. s must be UTF-8.
func WrapString(s string) GenericValue { return GenericValue{kind: KindString, strVal: s} }

// WrapBlob constructs a blob-tagged GenericValue. The blob tag is reserved
// (spec.md §9 Open Question): wrap/unwrap round-trips, no other operation
// is specified.
func WrapBlob(b []byte) GenericValue {
	cp := make([]byte, len(b))
	copy(cp, b)
	return GenericValue{kind: KindBlob, blobVal: cp}
}

// WrapListValue constructs a heterogeneous list of GenericValue.
func WrapListValue(vs []GenericValue) GenericValue {
	cp := make([]GenericValue, len(vs))
	copy(cp, vs)
	return GenericValue{kind: KindListValue, listVal: cp}
}

// WrapListI64 constructs a homogeneous list of int64.
func WrapListI64(vs []int64) GenericValue {
	cp := make([]int64, len(vs))
	copy(cp, vs)
	return GenericValue{kind: KindListI64, listI64: cp}
}

// WrapListString constructs a homogeneous list of string.
func WrapListString(vs []string) GenericValue {
	cp := make([]string, len(vs))
	copy(cp, vs)
	return GenericValue{kind: KindListString, listStr: cp}
}

// WrapMap constructs a FieldId-keyed map of GenericValue.
func WrapMap(m map[FieldId]GenericValue) GenericValue {
	cp := make(map[FieldId]GenericValue, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return GenericValue{kind: KindMap, mapVal: cp}
}

// WrapStrMap constructs a string-keyed map of GenericValue.
func WrapStrMap(m map[string]GenericValue) GenericValue {
	cp := make(map[string]GenericValue, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return GenericValue{kind: KindStrMap, strMapVal: cp}
}

// CanUnwrapBool reports whether the value's tag is KindBool.
func (v GenericValue) CanUnwrapBool() bool { return v.kind == KindBool }

// CanUnwrapI32 reports whether the value's tag is KindI32.
func (v GenericValue) CanUnwrapI32() bool { return v.kind == KindI32 }

// CanUnwrapI64 reports whether the value's tag is KindI64.
func (v GenericValue) CanUnwrapI64() bool { return v.kind == KindI64 }

// CanUnwrapF64 reports whether the value's tag is KindF64.
func (v GenericValue) CanUnwrapF64() bool { return v.kind == KindF64 }

// CanUnwrapString reports whether the value's tag is KindString.
func (v GenericValue) CanUnwrapString() bool { return v.kind == KindString }

// CanUnwrapBlob reports whether the value's tag is KindBlob.
func (v GenericValue) CanUnwrapBlob() bool { return v.kind == KindBlob }

// CanUnwrapListI64 reports whether the value's tag is KindListI64.
func (v GenericValue) CanUnwrapListI64() bool { return v.kind == KindListI64 }

// CanUnwrapListString reports whether the value's tag is KindListString.
func (v GenericValue) CanUnwrapListString() bool { return v.kind == KindListString }

// UnwrapBool returns the boolean payload, or an error if the tag mismatches.
func (v GenericValue) UnwrapBool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeMismatchError{Want: KindBool, Have: v.kind}
	}
	return v.boolVal, nil
}

// UnwrapI32 returns the i32 payload, or an error if the tag mismatches.
func (v GenericValue) UnwrapI32() (int32, error) {
	if v.kind != KindI32 {
		return 0, &TypeMismatchError{Want: KindI32, Have: v.kind}
	}
	return int32(v.i64Val), nil
}

// UnwrapI64 returns the i64 payload, or an error if the tag mismatches.
func (v GenericValue) UnwrapI64() (int64, error) {
	if v.kind != KindI64 {
		return 0, &TypeMismatchError{Want: KindI64, Have: v.kind}
	}
	return v.i64Val, nil
}

// UnwrapF64 returns the f64 payload, or an error if the tag mismatches.
func (v GenericValue) UnwrapF64() (float64, error) {
	if v.kind != KindF64 {
		return 0, &TypeMismatchError{Want: KindF64, Have: v.kind}
	}
	return v.f64Val, nil
}

// UnwrapString returns the string payload, or an error if the tag mismatches.
func (v GenericValue) UnwrapString() (string, error) {
	if v.kind != KindString {
		return "", &TypeMismatchError{Want: KindString, Have: v.kind}
	}
	return v.strVal, nil
}

// UnwrapBlob returns a copy of the blob payload, or an error if the tag
// mismatches.
func (v GenericValue) UnwrapBlob() ([]byte, error) {
	if v.kind != KindBlob {
		return nil, &TypeMismatchError{Want: KindBlob, Have: v.kind}
	}
	cp := make([]byte, len(v.blobVal))
	copy(cp, v.blobVal)
	return cp, nil
}

// UnwrapListValue returns the heterogeneous list payload.
func (v GenericValue) UnwrapListValue() ([]GenericValue, error) {
	if v.kind != KindListValue {
		return nil, &TypeMismatchError{Want: KindListValue, Have: v.kind}
	}
	return v.listVal, nil
}

// UnwrapListI64 returns the []int64 list payload.
func (v GenericValue) UnwrapListI64() ([]int64, error) {
	if v.kind != KindListI64 {
		return nil, &TypeMismatchError{Want: KindListI64, Have: v.kind}
	}
	return v.listI64, nil
}

// UnwrapListString returns the []string list payload.
func (v GenericValue) UnwrapListString() ([]string, error) {
	if v.kind != KindListString {
		return nil, &TypeMismatchError{Want: KindListString, Have: v.kind}
	}
	return v.listStr, nil
}

// UnwrapMap returns the FieldId-keyed map payload.
func (v GenericValue) UnwrapMap() (map[FieldId]GenericValue, error) {
	if v.kind != KindMap {
		return nil, &TypeMismatchError{Want: KindMap, Have: v.kind}
	}
	return v.mapVal, nil
}

// UnwrapStrMap returns the string-keyed map payload.
func (v GenericValue) UnwrapStrMap() (map[string]GenericValue, error) {
	if v.kind != KindStrMap {
		return nil, &TypeMismatchError{Want: KindStrMap, Have: v.kind}
	}
	return v.strMapVal, nil
}

// Equal reports tag-equality and content-equality (spec.md §4.2). Map
// kinds compare by content; iteration order is never observed.
func (v GenericValue) Equal(o GenericValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindUnset:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindI32, KindI64:
		return v.i64Val == o.i64Val
	case KindF64:
		return v.f64Val == o.f64Val
	case KindString:
		return v.strVal == o.strVal
	case KindBlob:
		return bytesEqual(v.blobVal, o.blobVal)
	case KindListValue:
		if len(v.listVal) != len(o.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(o.listVal[i]) {
				return false
			}
		}
		return true
	case KindListI64:
		if len(v.listI64) != len(o.listI64) {
			return false
		}
		for i := range v.listI64 {
			if v.listI64[i] != o.listI64[i] {
				return false
			}
		}
		return true
	case KindListString:
		if len(v.listStr) != len(o.listStr) {
			return false
		}
		for i := range v.listStr {
			if v.listStr[i] != o.listStr[i] {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.mapVal) != len(o.mapVal) {
			return false
		}
		for k, mv := range v.mapVal {
			ov, ok := o.mapVal[k]
			if !ok || !mv.Equal(ov) {
				return false
			}
		}
		return true
	case KindStrMap:
		if len(v.strMapVal) != len(o.strMapVal) {
			return false
		}
		for k, mv := range v.strMapVal {
			ov, ok := o.strMapVal[k]
			if !ok || !mv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
