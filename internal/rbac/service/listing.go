package service

import "github.com/aussiebroadwan/warden/internal/rbac/store"

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Page is one slice of a listing plus the unpaged total.
type Page[T any] struct {
	Items  []T
	Total  int
	Limit  int
	Offset int
}

func pageOptions(o store.ListOptions) store.ListOptions {
	switch {
	case o.Limit <= 0:
		o.Limit = DefaultPageSize
	case o.Limit > MaxPageSize:
		o.Limit = MaxPageSize
	}
	o.Offset = max(0, o.Offset)
	return o
}

func page[T any](items []T, total int, o store.ListOptions) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Limit: o.Limit, Offset: o.Offset}
}
