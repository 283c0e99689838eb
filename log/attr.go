package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// appendAttr folds one slog attribute into the flat wire list as a
// (key, type, value) triple of canonical string values. Groups flatten
// recursively with dotted keys.
func appendAttr(out []any, group string, attr slog.Attr) []any {
	attr.Value = attr.Value.Resolve()
	key := group + attr.Key

	switch attr.Value.Kind() {
	case slog.KindString:
		return append(out, key, "string", attr.Value.String())
	case slog.KindInt64:
		return append(out, key, "int64", fmt.Sprintf("%d", attr.Value.Int64()))
	case slog.KindUint64:
		return append(out, key, "uint64", fmt.Sprintf("%d", attr.Value.Uint64()))
	case slog.KindBool:
		return append(out, key, "bool", fmt.Sprintf("%t", attr.Value.Bool()))
	case slog.KindFloat64:
		return append(out, key, "float64", fmt.Sprintf("%f", attr.Value.Float64()))
	case slog.KindTime:
		return append(out, key, "time", attr.Value.Time().Format(time.RFC3339Nano))
	case slog.KindDuration:
		return append(out, key, "duration", attr.Value.Duration().String())
	case slog.KindGroup:
		// A group with an empty key is inlined per slog convention.
		prefix := key + "."
		if attr.Key == "" {
			prefix = group
		}
		for _, member := range attr.Value.Group() {
			out = appendAttr(out, prefix, member)
		}
		return out
	case slog.KindAny:
		v := attr.Value.Any()
		if v == nil {
			return append(out, key, "any", "<nil>")
		}
		if err, isErr := v.(error); isErr {
			return append(out, key, "error", err.Error())
		}
		if data, err := json.Marshal(v); err == nil {
			return append(out, key, "json", string(data))
		}
		return append(out, key, "any", fmt.Sprintf("%v", v))
	default:
		return append(out, key, "any", fmt.Sprintf("%v", attr.Value.Any()))
	}
}
