package arr

import (
	"encoding/json"
	"maps"
)

// extra keeps the fields of an upstream object this package does not model,
// so a read-modify-write PUT sends the object back whole.
type extra map[string]json.RawMessage

// unmarshalWithExtra decodes data into known and returns every top-level
// field of data in raw form.
func unmarshalWithExtra(data []byte, known any) (extra, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}
	var raw extra
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// marshalWithExtra encodes known over the preserved raw fields.
func marshalWithExtra(known any, raw extra) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return data, nil
	}

	var fields extra
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	merged := make(extra, len(raw)+len(fields))
	maps.Copy(merged, raw)
	maps.Copy(merged, fields)
	return json.Marshal(merged)
}

func withAddOptions(raw extra, opts map[string]any) extra {
	out := make(extra, len(raw)+1)
	maps.Copy(out, raw)
	if data, err := json.Marshal(opts); err == nil {
		out["addOptions"] = data
	}
	return out
}
