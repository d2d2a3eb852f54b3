package pbxproj

import (
	"fmt"
	"maps"
	"strconv"
)

// Settings maps build-setting names to values. A value is either a string
// or a []string; see NormalizeSettings for accepted inputs.
type Settings map[string]any

// NormalizeSettings converts loosely typed values (as decoded from YAML)
// into Settings. Booleans become YES/NO, numbers are formatted without
// a trailing zero fraction, and lists become []string.
func NormalizeSettings(in map[string]any) (Settings, error) {
	out := make(Settings, len(in))
	for k, v := range in {
		nv, err := normalizeSetting(v)
		if err != nil {
			return nil, fmt.Errorf("build setting %s: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}

func normalizeSetting(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		if val {
			return "YES", nil
		}
		return "NO", nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		list := make([]string, 0, len(val))
		for _, item := range val {
			s, err := normalizeSetting(item)
			if err != nil {
				return nil, err
			}
			str, ok := s.(string)
			if !ok {
				return nil, fmt.Errorf("nested lists are not supported")
			}
			list = append(list, str)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// Merge returns a copy of s with overrides applied on top.
func (s Settings) Merge(overrides Settings) Settings {
	out := make(Settings, len(s)+len(overrides))
	maps.Copy(out, s)
	maps.Copy(out, overrides)
	return out
}

func (s Settings) plist() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		switch val := v.(type) {
		case []string:
			list := make([]any, 0, len(val))
			for _, item := range val {
				list = append(list, item)
			}
			out[k] = list
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
