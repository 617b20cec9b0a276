package service

import "procure-service/internal/procure/model"

// Dictionary is the exact-match stage: normalized OC description -> garment.
// When several entries normalize to the same key, the last one wins.
type Dictionary struct {
	byKey   map[string]model.Garment
	enabled bool
}

// NewDictionary indexes entries. enabled=false (table without the required
// columns) gives a dictionary that resolves nothing.
func NewDictionary(entries []model.DictionaryEntry, enabled bool) *Dictionary {
	d := &Dictionary{byKey: make(map[string]model.Garment, len(entries)), enabled: enabled}
	if !enabled {
		return d
	}
	for _, e := range entries {
		k := Normalize(e.Description)
		if k == "" {
			continue
		}
		d.byKey[k] = model.Garment{Code: e.Code, Name: e.Name}
	}
	return d
}

func (d *Dictionary) Resolve(description string) (model.Garment, bool) {
	if d == nil || !d.enabled {
		return model.Garment{}, false
	}
	g, ok := d.byKey[Normalize(description)]
	return g, ok
}

func (d *Dictionary) Enabled() bool { return d != nil && d.enabled }

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byKey)
}
