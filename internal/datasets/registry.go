package datasets

import (
	dataquery "github.com/dataquerylabs/DataQueryMcp/pkg"
)

// Registry holds the metadata entries for successfully loaded datasets, in
// load order. It is populated once at startup and read-only afterwards.
type Registry struct {
	order   []string
	entries map[string]dataquery.TableMetadata
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]dataquery.TableMetadata)}
}

func (r *Registry) add(meta dataquery.TableMetadata) {
	if _, ok := r.entries[meta.Name]; !ok {
		r.order = append(r.order, meta.Name)
	}
	r.entries[meta.Name] = meta
}

func (r *Registry) Get(name string) (dataquery.TableMetadata, bool) {
	meta, ok := r.entries[name]
	return meta, ok
}

// List returns all entries in load order.
func (r *Registry) List() []dataquery.TableMetadata {
	out := make([]dataquery.TableMetadata, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	return len(r.order)
}
