package variable

import (
	"strings"

	"github.com/kdt3rd/constructor/src/cli/logging"
)

// Lookup resolves a variable name to its rendered value.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// MapLookup adapts a plain map to Lookup.
type MapLookup map[string]string

// Lookup implements Lookup.
func (m MapLookup) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameChar(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}

// Substitute expands "$" references in val using lookup. "${name}" is always
// recognized; bare "$name" is only recognized when requireCurly is false.
// A literal "$$" is an escape for a single "$". Unresolved names warn and
// substitute empty string.
func Substitute(val string, requireCurly bool, lookup Lookup) string {
	var out strings.Builder
	for i := 0; i < len(val); i++ {
		c := val[i]
		if c != '$' {
			out.WriteByte(c)
			continue
		}
		if i+1 < len(val) && val[i+1] == '$' {
			out.WriteByte('$')
			i++
			continue
		}
		if i+1 < len(val) && val[i+1] == '{' {
			end := strings.IndexByte(val[i+2:], '}')
			if end < 0 {
				out.WriteByte(c)
				continue
			}
			name := val[i+2 : i+2+end]
			out.WriteString(resolve(name, lookup))
			i += 2 + end
			continue
		}
		if !requireCurly && i+1 < len(val) && isNameStart(val[i+1]) {
			j := i + 1
			for j < len(val) && isNameChar(val[j]) {
				j++
			}
			name := val[i+1 : j]
			out.WriteString(resolve(name, lookup))
			i = j - 1
			continue
		}
		out.WriteByte(c)
	}
	return out.String()
}

func resolve(name string, lookup Lookup) string {
	if lookup != nil {
		if v, ok := lookup.Lookup(name); ok {
			return v
		}
	}
	logging.Log.Warningf("Variable '%s' undefined", name)
	return ""
}
