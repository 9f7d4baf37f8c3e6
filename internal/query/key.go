package query

import (
	"encoding/json"
	"fmt"
)

// Key identifies a cached query. Root names the collection the data derives
// from; Params distinguishes variants of the same query (filters, IDs).
type Key struct {
	Root   string
	Params any
}

// NewKey creates a key
func NewKey(root string, params any) Key {
	return Key{Root: root, Params: params}
}

// String returns the canonical cache key: root, or root:<json params>
func (k Key) String() string {
	if k.Params == nil {
		return k.Root
	}
	b, err := json.Marshal(k.Params)
	if err != nil {
		return fmt.Sprintf("%s:%v", k.Root, k.Params)
	}
	return k.Root + ":" + string(b)
}
