package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// Field represents a cached struct field.
type Field struct {
	Name      string
	Index     []int
	Tagged    bool
	OmitEmpty bool
}

type fieldSet struct {
	ordered []Field
	byName  map[string]int
}

// fieldCache caches the fields of each struct type.
var fieldCache sync.Map // map[reflect.Type]*fieldSet

// Fields returns the mappable fields of struct type t in declaration order.
// Unexported fields and fields tagged `flg:"-"` are skipped; embedded
// structs are flattened.
func Fields(t reflect.Type) []Field {
	return cachedFields(t).ordered
}

// Lookup finds the field for an entry name. It first attempts a
// case-sensitive match, then falls back to a case-insensitive one.
func Lookup(t reflect.Type, name string) (Field, bool) {
	fs := cachedFields(t)
	if i, ok := fs.byName[name]; ok {
		return fs.ordered[i], true
	}
	if i, ok := fs.byName[strings.ToLower(name)]; ok {
		return fs.ordered[i], true
	}
	return Field{}, false
}

func cachedFields(t reflect.Type) *fieldSet {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*fieldSet)
	}

	fs := &fieldSet{byName: make(map[string]int)}
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			index := append(append([]int(nil), idx...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("flg") == "" {
				walk(sf.Type, index)
				continue
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("flg")
			if tag == "-" {
				continue
			}

			f := Field{Index: index}
			name, opts, _ := strings.Cut(tag, ",")
			if name != "" {
				f.Name = name
				f.Tagged = true
			} else {
				f.Name = sf.Name
			}
			for opts != "" {
				var opt string
				opt, opts, _ = strings.Cut(opts, ",")
				if strings.TrimSpace(opt) == "omitempty" {
					f.OmitEmpty = true
				}
			}

			if _, dup := fs.byName[f.Name]; dup {
				continue
			}
			pos := len(fs.ordered)
			fs.ordered = append(fs.ordered, f)
			fs.byName[f.Name] = pos
			// Lower-cased entries serve the case-insensitive fallback
			// without shadowing an exact match.
			if lower := strings.ToLower(f.Name); lower != f.Name {
				if _, ok := fs.byName[lower]; !ok {
					fs.byName[lower] = pos
				}
			}
		}
	}
	walk(t, nil)

	fieldCache.Store(t, fs)
	return fs
}
