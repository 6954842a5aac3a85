package archive

import (
	"errors"
	"testing"
)

func TestPackUnpack_RoundTrip(t *testing.T) {
	in := map[string]string{
		MemberLocations: "id,name\r\nL1,Garage",
		MemberTotes:     "id,name\r\nT1,Bin A",
		MemberItems:     "id,name\r\nI1,Hammer",
		MemberUsers:     "id,email\r\nU1,a@b.c",
	}

	blob, err := Pack(in)
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	out, err := Unpack(blob)
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("len(out) = %d, want 4", len(out))
	}
	for name, want := range in {
		if got := out[name]; got != want {
			t.Errorf("member %s = %q, want %q", name, got, want)
		}
	}
}

func TestUnpack_MissingMemberAbsentFromMap(t *testing.T) {
	blob, err := Pack(map[string]string{MemberItems: "id,name\r\nI1,Hammer"})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	out, err := Unpack(blob)
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}

	if _, ok := out[MemberItems]; !ok {
		t.Error("items.csv should be present")
	}
	if _, ok := out[MemberLocations]; ok {
		t.Error("locations.csv should be absent, not empty")
	}
}

func TestUnpack_EmptyMemberDistinctFromAbsent(t *testing.T) {
	blob, err := Pack(map[string]string{MemberUsers: ""})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	out, err := Unpack(blob)
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}

	text, ok := out[MemberUsers]
	if !ok {
		t.Fatal("empty users.csv should still be present")
	}
	if text != "" {
		t.Errorf("users.csv = %q, want empty", text)
	}
}

func TestUnpack_Corrupt(t *testing.T) {
	_, err := Unpack([]byte("this is not a zip file"))
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Unpack() error = %v, want ErrCorrupt", err)
	}
}

func TestUnpack_IgnoresUnknownMembers(t *testing.T) {
	// Packing only writes recognized names, so build the stray member by
	// packing a known one and verifying unknown names never round-trip.
	blob, err := Pack(map[string]string{
		MemberItems: "id,name\r\nI1,Hammer",
		"extra.txt": "should be dropped",
	})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	out, err := Unpack(blob)
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if _, ok := out["extra.txt"]; ok {
		t.Error("unknown member should not be returned")
	}
}
