package scene

import (
	"reflect"
	"testing"

	"github.com/logicossoftware/go-wld"
)

func TestDecodeVisibility(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want []uint32
	}{
		{"empty", nil, nil},
		{"skip then include", []byte{0x02, 0xC3}, []uint32{2, 3, 4}},
		{"word skip", []byte{0x3F, 0x05, 0x00, 0xC1}, []uint32{5}},
		{"combined skip include", []byte{0x4A}, []uint32{1, 2}},
		{"combined include skip", []byte{0x8A, 0xC1}, []uint32{0, 3}},
		{"word include", []byte{0xFF, 0x03, 0x00}, []uint32{0, 1, 2}},
		{"mixed runs", []byte{0x01, 0xC2, 0x02, 0xC1}, []uint32{1, 2, 5}},
		{"truncated word skip", []byte{0x3F, 0x05}, nil},
		{"truncated word include", []byte{0xC2, 0xFF, 0x01}, []uint32{0, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeVisibility(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DecodeVisibility(% X) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func regionScene() *Scene {
	meshRef := wld.RefByIndex[*wld.Mesh](1)
	return New(&wld.Document{
		Header:  wld.Header{Version: wld.OldVersion},
		Strings: wld.NewStringPool(),
		Fragments: []wld.Fragment{
			// 1
			&wld.Mesh{Positions: [][3]int16{{0, 0, 0}}},
			// 2
			&wld.BspRegion{
				Flags: 0x100,
				Mesh:  &meshRef,
				PVS: []wld.RegionPVS{
					{Data: []byte{0x01, 0xC2}},
					{Data: []byte{0xC1}},
				},
			},
			// 3
			&wld.BspRegion{},
		},
	})
}

func TestScene_Regions(t *testing.T) {
	regions := regionScene().Regions()
	if len(regions) != 2 {
		t.Fatalf("Regions = %d, want 2", len(regions))
	}
	if regions[0].Index() != 0 || regions[1].Index() != 1 {
		t.Fatalf("ordinals = %d, %d", regions[0].Index(), regions[1].Index())
	}
}

func TestRegion_Nearby(t *testing.T) {
	regions := regionScene().Regions()
	// The two streams decode to {1, 2} and {0}; merged and sorted.
	if got := regions[0].Nearby(); !reflect.DeepEqual(got, []uint32{0, 1, 2}) {
		t.Fatalf("Nearby = %v, want [0 1 2]", got)
	}
	if got := regions[1].Nearby(); got != nil {
		t.Fatalf("Nearby without PVS = %v, want nil", got)
	}
}

func TestRegion_Mesh(t *testing.T) {
	regions := regionScene().Regions()
	m, ok := regions[0].Mesh()
	if !ok {
		t.Fatal("region with geometry did not resolve its mesh")
	}
	if len(m.Positions()) != 1 {
		t.Fatalf("mesh positions = %d, want 1", len(m.Positions()))
	}
	if _, ok := regions[1].Mesh(); ok {
		t.Fatal("empty region must not resolve a mesh")
	}
}
