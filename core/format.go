package core

import (
	"fmt"
	"strings"
)

// Format replaces each {name} in template with values[name]. Doubled
// braces stand for literal ones, so shell text such as awk '{{print $2}}'
// survives as awk '{print $2}'.
func Format(template string, values map[string]interface{}) (string, error) {
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		switch c := template[i]; c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("format: single '{' at offset %d", i)
			}
			key := template[i+1 : i+1+end]
			if strings.IndexByte(key, '{') >= 0 {
				return "", fmt.Errorf("format: unexpected '{' in placeholder at offset %d", i)
			}
			val, ok := values[key]
			if !ok {
				return "", fmt.Errorf("format: unknown placeholder {%s}", key)
			}
			fmt.Fprint(&b, val)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("format: single '}' at offset %d", i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
