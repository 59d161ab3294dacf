package config

import (
	"os"
	"path/filepath"
	"testing"

	errs "github.com/matzehuels/blueprint/pkg/errors"
)

const kitchenLiving = `
name = "starter"

[house]
width = 10.0
height = 10.0
rooms = 2

[policy]
max_hops = 3
min_side = 1.0

[[room]]
name = "Kitchen"
area = 20.0
adjacent = ["Living"]
priority = 2

[[room]]
name = "Living"
area = 30.0
priority = 1
max_instances = 1
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(kitchenLiving))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Name != "starter" {
		t.Errorf("Name = %q", f.Name)
	}

	h := f.HouseSpec()
	if h.Width != 10 || h.Height != 10 || h.RoomCount != 2 {
		t.Errorf("HouseSpec = %+v", h)
	}

	reg, err := f.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}
	k, ok := reg.Lookup("Kitchen")
	if !ok {
		t.Fatal("Kitchen missing")
	}
	if k.Area != 20 || k.Priority != 2 || !k.AdjacentTo("Living") {
		t.Errorf("Kitchen = %+v", k)
	}
	if reg.Rank("Kitchen") != 0 || reg.Rank("Living") != 1 {
		t.Error("registry should follow file order")
	}

	opts := f.PlanOptions()
	if opts.MaxHops != 3 || opts.MinSide != 1 {
		t.Errorf("PlanOptions = %+v", opts)
	}
	if opts.DoorWidth != 0 {
		t.Errorf("unset door_width should stay zero for defaults, got %v", opts.DoorWidth)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errs.Code
	}{
		{"syntax", "[house\nwidth = 1", errs.ErrCodeInvalidFormat},
		{"no house", "[[room]]\nname = \"A\"\narea = 1.0\n", errs.ErrCodeInvalidConfig},
		{"no width", "[house]\nheight = 1.0\nrooms = 1\n[[room]]\nname = \"A\"\narea = 1.0\n", errs.ErrCodeInvalidConfig},
		{"no rooms key", "[house]\nwidth = 1.0\nheight = 1.0\n[[room]]\nname = \"A\"\narea = 1.0\n", errs.ErrCodeInvalidConfig},
		{"no room tables", "[house]\nwidth = 1.0\nheight = 1.0\nrooms = 1\n", errs.ErrCodeInvalidConfig},
		{"unknown key", "[house]\nwidth = 1.0\nheight = 1.0\nrooms = 1\ndepth = 2\n[[room]]\nname = \"A\"\narea = 1.0\n", errs.ErrCodeInvalidConfig},
		{"wrong type", "[house]\nwidth = \"wide\"\nheight = 1.0\nrooms = 1\n", errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	data := `
[house]
width = 4.0
height = 4.0
rooms = 2

[[room]]
name = "Bath"
area = 4.0

[[room]]
name = "Bath"
area = 5.0
`
	f, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = f.Registry()
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "house.toml")
	if err := os.WriteFile(path, []byte(kitchenLiving), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Room) != 2 {
		t.Errorf("rooms = %d, want 2", len(f.Room))
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v, want FILE_NOT_FOUND", err)
	}
	_, err = Load("")
	if !errs.Is(err, errs.ErrCodeInvalidPath) {
		t.Errorf("empty path: err = %v, want INVALID_PATH", err)
	}
}
