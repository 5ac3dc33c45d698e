package domain

import "go.trai.ch/zerr"

// Catalog holds the default build recipe for every known package
// name/version pair. Read-only after construction; safe for
// unsynchronized concurrent reads during resolution.
type Catalog struct {
	recipes map[string]Recipe
}

// NewCatalog creates a catalog from the given default recipes.
// It returns an error if two recipes share a name/version pair.
func NewCatalog(recipes []Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make(map[string]Recipe, len(recipes)),
	}
	for _, r := range recipes {
		key := catalogKey(r.Name.String(), r.Version.String())
		if _, exists := c.recipes[key]; exists {
			err := Tagged(ErrDuplicateEntry, "package", r.Name.String())
			return nil, zerr.With(err, "version", r.Version.String())
		}
		c.recipes[key] = r
	}
	return c, nil
}

// Lookup returns a copy of the default recipe for the name/version pair.
func (c *Catalog) Lookup(name, version string) (Recipe, error) {
	r, ok := c.recipes[catalogKey(name, version)]
	if !ok {
		err := Tagged(ErrUnknownPackage, "package", name)
		return Recipe{}, zerr.With(err, "version", version)
	}
	return r.Clone(), nil
}

// Count returns the number of catalog recipes.
func (c *Catalog) Count() int {
	return len(c.recipes)
}

func catalogKey(name, version string) string {
	return name + "@" + version
}
