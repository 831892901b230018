package models

import (
	"fmt"
	"strings"
)

// Feature is one decoded GeoJSON feature as published by the upstream feed.
type Feature map[string]any

// MissingKeyError reports a required key absent from a feature.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key %q", e.Key)
}

// lookup walks a dotted path through nested objects.
func (f Feature) lookup(path string) (any, error) {
	var cur any = map[string]any(f)
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, &MissingKeyError{Key: path}
		}
		cur, ok = obj[key]
		if !ok {
			return nil, &MissingKeyError{Key: path}
		}
	}
	return cur, nil
}

// object returns the nested object at path.
func (f Feature) object(path string) (map[string]any, error) {
	v, err := f.lookup(path)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("key %q is not an object", path)
	}
	return obj, nil
}

// Properties returns the feature's properties object.
func (f Feature) Properties() (map[string]any, error) {
	return f.object("properties")
}

// Name returns the raw garage name, or "" when absent.
func (f Feature) Name() string {
	props, ok := f["properties"].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := props["Name"].(string)
	return name
}

// ID returns the upstream garage identifier.
func (f Feature) ID() (string, error) {
	v, err := f.lookup("Id")
	if err != nil {
		return "", err
	}
	id, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("key %q is not a string", "Id")
	}
	return id, nil
}

// required returns the value under key in obj, or a MissingKeyError naming prefix.key.
func required(obj map[string]any, prefix, key string) (any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, &MissingKeyError{Key: prefix + "." + key}
	}
	return v, nil
}
