package houses

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultFloorKinds son los slugs de tipos que usan el campo piso.
var DefaultFloorKinds = []string{"departamento", "apartment", "depto"}

// Slug normaliza un nombre de tipo a una clave estable:
// minúsculas, sin acentos, espacios internos como "-".
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Catalog es la tabla en memoria de tipos, cargada desde el store.
// "Requiere piso" es propiedad del tipo (por slug), no de su id.
type Catalog struct {
	byID   map[int64]Kind
	bySlug map[string]Kind
	ids    []int64
}

// NewCatalog arma el catálogo marcando RequiresFloor según floorSlugs.
// Si floorSlugs es nil usa DefaultFloorKinds.
func NewCatalog(kinds []Kind, floorSlugs []string) *Catalog {
	if floorSlugs == nil {
		floorSlugs = DefaultFloorKinds
	}
	floor := make(map[string]struct{}, len(floorSlugs))
	for _, s := range floorSlugs {
		if s = Slug(s); s != "" {
			floor[s] = struct{}{}
		}
	}

	c := &Catalog{
		byID:   make(map[int64]Kind, len(kinds)),
		bySlug: make(map[string]Kind, len(kinds)),
	}
	for _, k := range kinds {
		slug := Slug(k.Name)
		_, k.RequiresFloor = floor[slug]
		if _, dup := c.byID[k.ID]; !dup {
			c.ids = append(c.ids, k.ID)
		}
		c.byID[k.ID] = k
		if _, dup := c.bySlug[slug]; !dup {
			c.bySlug[slug] = k
		}
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return c
}

func (c *Catalog) Get(id int64) (Kind, bool) {
	if c == nil {
		return Kind{}, false
	}
	k, ok := c.byID[id]
	return k, ok
}

// BySlug busca por nombre normalizado (p.ej. "departamento").
func (c *Catalog) BySlug(name string) (Kind, bool) {
	if c == nil {
		return Kind{}, false
	}
	k, ok := c.bySlug[Slug(name)]
	return k, ok
}

func (c *Catalog) RequiresFloor(id int64) bool {
	k, ok := c.Get(id)
	return ok && k.RequiresFloor
}

// Kinds devuelve los tipos ordenados por id asc.
func (c *Catalog) Kinds() []Kind {
	if c == nil {
		return nil
	}
	out := make([]Kind, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}
