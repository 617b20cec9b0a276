package service

import "procure-service/internal/procure/model"

// Catalog is the deduplicated set of (code, name) garments of a BOM.
// Read-only after BuildCatalog, safe for concurrent readers.
type Catalog struct {
	entries []model.CatalogEntry
	names   []string                        // distinct normalized names, first-seen order
	byName  map[string][]model.CatalogEntry // normalized name -> entries, first-seen order
}

func BuildCatalog(bom []model.BomEntry) *Catalog {
	c := &Catalog{byName: make(map[string][]model.CatalogEntry)}
	seen := make(map[model.Garment]struct{}, len(bom))

	for _, b := range bom {
		g := model.Garment{Code: b.GarmentCode, Name: b.GarmentName}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}

		e := model.CatalogEntry{Garment: g, Key: Normalize(g.Name)}
		c.entries = append(c.entries, e)
		if e.Key == "" {
			// unnamed garments stay in the catalog but cannot be searched
			continue
		}
		if _, ok := c.byName[e.Key]; !ok {
			c.names = append(c.names, e.Key)
		}
		c.byName[e.Key] = append(c.byName[e.Key], e)
	}
	return c
}

func (c *Catalog) Entries() []model.CatalogEntry { return c.entries }

// Names returns the searchable names. Callers must not modify the slice.
func (c *Catalog) Names() []string { return c.names }

// Lookup returns every entry whose normalized name equals key.
// A name shared by several codes yields all of them, first-seen first.
func (c *Catalog) Lookup(key string) []model.CatalogEntry { return c.byName[key] }

func (c *Catalog) Len() int { return len(c.entries) }
