package dgus

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Selector is one action of a command VP, chosen by byte 1 of the payload.
type Selector struct {
	Addr    Addr
	Value   uint8
	Name    string
	Handler SelectorHandler
}

type selectorKey struct {
	addr  Addr
	value uint8
}

// Table maps addresses to VPs. It is immutable after NewTable.
type Table struct {
	vps       []*VP // ordered by address
	byAddr    map[Addr]*VP
	selectors map[selectorKey]*Selector
}

// NewTable validates and indexes the VP definitions. Overlapping VPs,
// handlerless VPs and selectors without a selector VP are rejected.
func NewTable(vps []VP, selectors []Selector) (*Table, error) {
	vps = append([]VP(nil), vps...)
	selectors = append([]Selector(nil), selectors...)

	t := &Table{
		vps:       make([]*VP, 0, len(vps)),
		byAddr:    make(map[Addr]*VP, len(vps)),
		selectors: make(map[selectorKey]*Selector, len(selectors)),
	}

	for i := range vps {
		vp := &vps[i]
		if vp.Size == 0 {
			return nil, fmt.Errorf("vp %s (%s): zero size", vp.Addr, vp.Name)
		}
		if vp.Direction() == 0 {
			return nil, fmt.Errorf("vp %s (%s): no handler", vp.Addr, vp.Name)
		}
		if vp.Flags&FlagSelector != 0 && vp.Rx != nil {
			return nil, fmt.Errorf("vp %s (%s): selector VP with rx handler", vp.Addr, vp.Name)
		}
		if _, exists := t.byAddr[vp.Addr]; exists {
			return nil, fmt.Errorf("vp %s (%s): duplicate address", vp.Addr, vp.Name)
		}
		t.byAddr[vp.Addr] = vp
		t.vps = append(t.vps, vp)
	}

	sort.Slice(t.vps, func(i, j int) bool { return t.vps[i].Addr < t.vps[j].Addr })

	for i := 1; i < len(t.vps); i++ {
		prev, cur := t.vps[i-1], t.vps[i]
		if prev.End() > uint32(cur.Addr) {
			return nil, fmt.Errorf("vp %s (%s) overlaps %s (%s)", cur.Addr, cur.Name, prev.Addr, prev.Name)
		}
	}

	for i := range selectors {
		s := &selectors[i]
		vp, ok := t.byAddr[s.Addr]
		if !ok || vp.Flags&FlagSelector == 0 {
			return nil, fmt.Errorf("selector %s/%d (%s): no selector VP", s.Addr, s.Value, s.Name)
		}
		if s.Handler == nil {
			return nil, fmt.Errorf("selector %s/%d (%s): no handler", s.Addr, s.Value, s.Name)
		}
		key := selectorKey{s.Addr, s.Value}
		if _, exists := t.selectors[key]; exists {
			return nil, fmt.Errorf("selector %s/%d (%s): duplicate", s.Addr, s.Value, s.Name)
		}
		t.selectors[key] = s
	}

	return t, nil
}

// Resolve returns the VP registered at addr
func (t *Table) Resolve(addr Addr) (*VP, bool) {
	vp, ok := t.byAddr[addr]
	return vp, ok
}

// Selector returns the action registered for value on addr
func (t *Table) Selector(addr Addr, value uint8) (*Selector, bool) {
	s, ok := t.selectors[selectorKey{addr, value}]
	return s, ok
}

// Lookup finds a VP by name
func (t *Table) Lookup(name string) (*VP, bool) {
	for _, vp := range t.vps {
		if vp.Name == name {
			return vp, true
		}
	}
	return nil, false
}

// SelectorValue returns the byte that selects the action named name on addr.
func (t *Table) SelectorValue(addr Addr, name string) (uint8, bool) {
	for key, s := range t.selectors {
		if key.addr == addr && s.Name == name {
			return key.value, true
		}
	}
	return 0, false
}

// VPs returns all VPs ordered by address
func (t *Table) VPs() []*VP {
	return t.vps
}

// Len returns the number of VPs
func (t *Table) Len() int {
	return len(t.vps)
}

// DictionaryEntry describes one VP for tooling.
type DictionaryEntry struct {
	Addr       string           `json:"addr"`
	Name       string           `json:"name"`
	Size       uint8            `json:"size"`
	Direction  string           `json:"direction"`
	AutoUpdate bool             `json:"auto_update,omitempty"`
	Selectors  map[uint8]string `json:"selectors,omitempty"`
}

// Entries lists the table in address order.
func (t *Table) Entries() []DictionaryEntry {
	out := make([]DictionaryEntry, 0, len(t.vps))
	for _, vp := range t.vps {
		e := DictionaryEntry{
			Addr:       vp.Addr.String(),
			Name:       vp.Name,
			Size:       vp.Size,
			Direction:  vp.Direction().String(),
			AutoUpdate: vp.Flags&FlagAutoUpdate != 0,
		}
		out = append(out, e)
	}
	for _, s := range t.selectors {
		vp := t.byAddr[s.Addr]
		i := sort.Search(len(t.vps), func(i int) bool { return t.vps[i].Addr >= vp.Addr })
		if out[i].Selectors == nil {
			out[i].Selectors = make(map[uint8]string)
		}
		out[i].Selectors[s.Value] = s.Name
	}
	return out
}

// Dictionary renders the table as JSON
func (t *Table) Dictionary() ([]byte, error) {
	return json.MarshalIndent(t.Entries(), "", "  ")
}
