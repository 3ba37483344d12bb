package logging

import (
	"log/slog"
	"strings"
)

const Redacted = "***REDACTED***"

var sensitiveKeys = []string{"password", "passwordhash", "token", "secret", "authorization"}

// IsSensitive reports whether a field with this key must never be logged in clear.
func IsSensitive(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

// Redact returns a copy of v with sensitive map keys masked, descending into nested maps and
// slices. Other values are returned unchanged.
func Redact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsSensitive(k) {
				out[k] = Redacted
				continue
			}
			out[k] = Redact(val)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, val := range t {
			if IsSensitive(k) {
				val = Redacted
			}
			out[k] = val
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Redact(val)
		}
		return out
	default:
		return v
	}
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	if IsSensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	if a.Value.Kind() == slog.KindAny {
		switch a.Value.Any().(type) {
		case map[string]any, map[string]string, []any:
			return slog.Any(a.Key, Redact(a.Value.Any()))
		}
	}
	return a
}
