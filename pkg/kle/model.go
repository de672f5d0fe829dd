package kle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseModel builds a Keyboard from the model schema: an object with a
// "keys" array of fully resolved key objects and an optional "meta" object.
// Fields missing from a key take the same defaults as a freshly created
// keyboard-layout-editor key. Unknown fields are rejected so that documents
// in other shapes do not silently load as empty keys.
func ParseModel(doc any) (*Keyboard, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %s", typeName(doc))
	}
	rawKeys, ok := obj["keys"]
	if !ok {
		return nil, fmt.Errorf(`missing "keys"`)
	}
	list, ok := rawKeys.([]any)
	if !ok {
		return nil, fmt.Errorf(`"keys": expected array, got %s`, typeName(rawKeys))
	}
	for name := range obj {
		if name != "keys" && name != "meta" {
			return nil, fmt.Errorf("unknown field %q", name)
		}
	}

	kb := &Keyboard{Keys: make([]Key, 0, len(list))}
	if meta, ok := obj["meta"]; ok && meta != nil {
		if err := strictRemarshal(meta, &kb.Meta); err != nil {
			return nil, fmt.Errorf("meta: %w", err)
		}
	}
	for i, item := range list {
		key := defaultKey()
		key.Width2, key.Height2 = 1, 1
		if err := strictRemarshal(item, &key); err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		kb.Keys = append(kb.Keys, key)
	}
	return kb, nil
}

// remarshal converts a decoded document tree into a typed value by way of
// JSON, so JSON and YAML sources share one set of struct tags.
func remarshal(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func strictRemarshal(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
