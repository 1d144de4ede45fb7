package dgus

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func TestBuildTableNoOverlap(t *testing.T) {
	is := is.New(t)

	for _, f := range []Features{
		DefaultFeatures(),
		{Extruders: 2, Hotends: 2, SDSupport: true, PowerLossRecovery: true},
		{},
	} {
		table, err := BuildTable(f)
		is.NoErr(err)

		vps := table.VPs()
		for i := 1; i < len(vps); i++ {
			is.True(vps[i-1].End() <= uint32(vps[i].Addr)) // VPs must not overlap
		}
	}
}

func TestBuildTableFeatureGating(t *testing.T) {
	is := is.New(t)

	single, err := BuildTable(DefaultFeatures())
	is.NoErr(err)
	_, ok := single.Resolve(AddrTempSetTargetH1)
	is.True(!ok)
	_, ok = single.Resolve(AddrAdjustSetFlowrateE1)
	is.True(!ok)

	f := DefaultFeatures()
	f.Extruders, f.Hotends = 2, 2
	dual, err := BuildTable(f)
	is.NoErr(err)
	_, ok = dual.Resolve(AddrTempSetTargetH1)
	is.True(ok)
	_, ok = dual.Resolve(AddrAdjustFlowrateE1)
	is.True(ok)
	is.True(dual.Len() > single.Len())

	f = DefaultFeatures()
	f.SDSupport, f.PowerLossRecovery = false, false
	bare, err := BuildTable(f)
	is.NoErr(err)
	_, ok = bare.Resolve(AddrSDScroll)
	is.True(!ok)
	_, ok = bare.Resolve(AddrPowerLossResume)
	is.True(!ok)
}

func TestBuildTableScreenLists(t *testing.T) {
	is := is.New(t)

	f := DefaultFeatures()
	f.Extruders, f.Hotends = 2, 2
	table, err := BuildTable(f)
	is.NoErr(err)

	for screen, addrs := range screenVPs {
		for _, addr := range addrs {
			vp, ok := table.Resolve(addr)
			if !ok {
				t.Errorf("%s lists %s which is not registered", screen, addr)
				continue
			}
			if vp.Tx == nil {
				t.Errorf("%s lists %s (%s) which is not readable", screen, addr, vp.Name)
			}
		}
	}
}

func TestNewTableRejects(t *testing.T) {
	tx := func(env *Env, vp *VP) ([]byte, error) { return nil, nil }
	rx := func(env *Env, vp *VP, data []byte) error { return nil }
	sel := func(env *Env, vp *VP) error { return nil }

	tests := []struct {
		name      string
		vps       []VP
		selectors []Selector
	}{
		{
			name: "overlap",
			vps: []VP{
				{Addr: 0x1000, Name: "A", Size: 4, Tx: tx},
				{Addr: 0x1001, Name: "B", Size: 2, Tx: tx},
			},
		},
		{
			name: "duplicate",
			vps: []VP{
				{Addr: 0x1000, Name: "A", Size: 2, Tx: tx},
				{Addr: 0x1000, Name: "B", Size: 2, Rx: rx},
			},
		},
		{
			name: "zero size",
			vps:  []VP{{Addr: 0x1000, Name: "A", Tx: tx}},
		},
		{
			name: "no handler",
			vps:  []VP{{Addr: 0x1000, Name: "A", Size: 2}},
		},
		{
			name: "selector on plain VP",
			vps:  []VP{{Addr: 0x1000, Name: "A", Size: 2, Rx: rx}},
			selectors: []Selector{
				{Addr: 0x1000, Value: 1, Name: "one", Handler: sel},
			},
		},
		{
			name: "duplicate selector",
			vps:  []VP{{Addr: 0x1000, Name: "A", Size: 2, Flags: FlagSelector}},
			selectors: []Selector{
				{Addr: 0x1000, Value: 1, Name: "one", Handler: sel},
				{Addr: 0x1000, Value: 1, Name: "uno", Handler: sel},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.vps, tt.selectors); err == nil {
				t.Errorf("Expected an error")
			}
		})
	}
}

func TestNewTableAdjacent(t *testing.T) {
	is := is.New(t)
	tx := func(env *Env, vp *VP) ([]byte, error) { return nil, nil }

	// a 3 byte VP occupies two words
	table, err := NewTable([]VP{
		{Addr: 0x1000, Name: "A", Size: 3, Tx: tx},
		{Addr: 0x1002, Name: "B", Size: 2, Tx: tx},
	}, nil)
	is.NoErr(err)
	is.Equal(table.Len(), 2)

	_, err = NewTable([]VP{
		{Addr: 0x1000, Name: "A", Size: 3, Tx: tx},
		{Addr: 0x1001, Name: "B", Size: 2, Tx: tx},
	}, nil)
	is.True(err != nil)
}

func TestDictionary(t *testing.T) {
	is := is.New(t)

	table, err := BuildTable(DefaultFeatures())
	is.NoErr(err)

	data, err := table.Dictionary()
	is.NoErr(err)

	var entries []DictionaryEntry
	is.NoErr(json.Unmarshal(data, &entries))
	is.Equal(len(entries), table.Len())

	byName := make(map[string]DictionaryEntry)
	for _, e := range entries {
		byName[e.Name] = e
	}
	home := byName["MOVE_Home"]
	is.Equal(home.Addr, "0x201F")
	is.Equal(home.Direction, "read")
	is.Equal(home.Selectors[uint8(HomeZ)], "z")

	cur := byName["TEMP_Current_H0"]
	is.Equal(cur.Direction, "write")
	is.True(cur.AutoUpdate)

	fan := byName["FAN0_Speed"]
	is.Equal(fan.Direction, "read-write")
}

func TestLookup(t *testing.T) {
	is := is.New(t)

	table, err := BuildTable(DefaultFeatures())
	is.NoErr(err)

	vp, ok := table.Lookup("MOVE_Home")
	is.True(ok)
	is.Equal(vp.Addr, AddrMoveHome)

	_, ok = table.Lookup("MOVE_Nowhere")
	is.True(!ok)

	v, ok := table.SelectorValue(AddrMoveHome, "xy")
	is.True(ok)
	is.Equal(v, uint8(HomeXY))

	_, ok = table.SelectorValue(AddrMoveHome, "e")
	is.True(!ok)
}
