package mesh

import (
	"bytes"
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mesh-rasterizer/internal/mathutil"
)

func triangleScene() *Scene {
	return &Scene{
		Faces:    []Face{{0, 1, 2}},
		Vertices: []image.Point{{10, 10}, {90, 10}, {50, 90}},
		Colors:   []mathutil.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Depths:   []float64{0, 3, 6},
	}
}

func TestValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		if err := triangleScene().Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("mismatched tables", func(t *testing.T) {
		s := triangleScene()
		s.Depths = s.Depths[:2]
		err := s.Validate()
		if !errors.Is(err, ErrMismatchedTables) {
			t.Fatalf("Validate() = %v, want ErrMismatchedTables", err)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		s := triangleScene()
		s.Faces = append(s.Faces, Face{0, 2, 3})
		err := s.Validate()
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("Validate() = %v, want *IndexError", err)
		}
		if ie.Face != 1 || ie.Corner != 2 || ie.Index != 3 || ie.Len != 3 {
			t.Errorf("IndexError = %+v, want face 1 corner 2 index 3 len 3", *ie)
		}
	})

	t.Run("coordinate out of range", func(t *testing.T) {
		s := triangleScene()
		s.Vertices[1] = image.Pt(20, 1<<46)
		if err := s.Validate(); !errors.Is(err, ErrCoordRange) {
			t.Fatalf("Validate() = %v, want ErrCoordRange", err)
		}
		s.Vertices[1] = image.Pt(-MaxCoord, MaxCoord)
		if err := s.Validate(); err != nil {
			t.Fatalf("Validate() at the bound = %v, want nil", err)
		}
	})

	t.Run("negative index", func(t *testing.T) {
		s := triangleScene()
		s.Faces[0][0] = -1
		var ie *IndexError
		if err := s.Validate(); !errors.As(err, &ie) {
			t.Fatalf("Validate() = %v, want *IndexError", err)
		}
	})
}

func TestFaceDepthAndResolve(t *testing.T) {
	s := triangleScene()
	if got := s.FaceDepth(s.Faces[0]); got != 3 {
		t.Errorf("FaceDepth() = %v, want 3", got)
	}
	pts, cols := s.Resolve(s.Faces[0])
	if pts[2] != image.Pt(50, 90) {
		t.Errorf("Resolve() point 2 = %v, want (50,90)", pts[2])
	}
	if cols[1] != (mathutil.Vec3{0, 1, 0}) {
		t.Errorf("Resolve() color 1 = %v, want green", cols[1])
	}
}

func TestBounds(t *testing.T) {
	got := triangleScene().Bounds()
	want := image.Rect(10, 10, 91, 91)
	if got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := (&Scene{}).Bounds(); !got.Empty() {
		t.Errorf("empty Bounds() = %v, want empty", got)
	}
}

func TestDecode(t *testing.T) {
	src := `{
		"faces": [[0, 1, 2]],
		"vertices": [[20, 20], [20, 80], [60, 50]],
		"vcolors": [[0.1, 0.2, 0.3], [0.4, 0.5, 0.6], [0.7, 0.8, 0.9]],
		"depth": [1, 2, 3]
	}`
	s, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(s.Faces) != 1 || s.Vertices[1] != image.Pt(20, 80) || s.Colors[2][1] != 0.8 {
		t.Errorf("Decode() = %+v, unexpected contents", s)
	}
}

func TestDecodeRejectsBadScene(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `{"faces": [`},
		{"bad index", `{"faces": [[0, 1, 5]], "vertices": [[0,0],[1,1],[2,2]], "vcolors": [[0,0,0],[0,0,0],[0,0,0]], "depth": [0,0,0]}`},
		{"missing depth", `{"faces": [], "vertices": [[0,0]], "vcolors": [[0,0,0]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.src)); err == nil {
				t.Errorf("Decode(%q) error = nil, want error", tt.src)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	want := Random(5, 64, 7)
	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got.Faces) != len(want.Faces) || len(got.Vertices) != len(want.Vertices) {
		t.Fatalf("table sizes changed: got %d/%d faces/vertices, want %d/%d",
			len(got.Faces), len(got.Vertices), len(want.Faces), len(want.Vertices))
	}
	for i := range want.Vertices {
		if got.Vertices[i] != want.Vertices[i] || got.Colors[i] != want.Colors[i] || got.Depths[i] != want.Depths[i] {
			t.Fatalf("vertex %d differs after round trip", i)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.json")
	if err := Save(path, triangleScene()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Depths[2] != 6 {
		t.Errorf("Load() depth 2 = %v, want 6", s.Depths[2])
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}

func TestSaveRemovesFileOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.json")
	s := triangleScene()
	s.Depths[0] = math.NaN()
	if err := Save(path, s); err == nil {
		t.Fatal("Save(NaN depth) error = nil, want encode error")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Save left %s behind: %v", path, err)
	}
}

func TestRandomNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		s := Random(3, size, 7)
		if err := s.Validate(); err != nil {
			t.Fatalf("Random(size %d) invalid: %v", size, err)
		}
		for i, v := range s.Vertices {
			if v != (image.Point{}) {
				t.Errorf("Random(size %d) vertex %d = %v, want origin", size, i, v)
			}
		}
	}
	if s := Random(-1, 10, 1); len(s.Faces) != 0 {
		t.Errorf("Random(-1) faces = %d, want 0", len(s.Faces))
	}
	if err := Grid(2, 2, 0, 1).Validate(); err != nil {
		t.Errorf("Grid(size 0) invalid: %v", err)
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(20, 128, 42)
	b := Random(20, 128, 42)
	if err := a.Validate(); err != nil {
		t.Fatalf("Random scene invalid: %v", err)
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] || a.Colors[i] != b.Colors[i] {
			t.Fatalf("Random(seed 42) differs at vertex %d", i)
		}
		v := a.Vertices[i]
		if v.X < 0 || v.X >= 128 || v.Y < 0 || v.Y >= 128 {
			t.Errorf("vertex %d = %v outside canvas", i, v)
		}
	}
}

func TestGrid(t *testing.T) {
	s := Grid(4, 3, 100, 1)
	if err := s.Validate(); err != nil {
		t.Fatalf("Grid scene invalid: %v", err)
	}
	if len(s.Vertices) != 5*4 {
		t.Errorf("len(Vertices) = %d, want 20", len(s.Vertices))
	}
	if len(s.Faces) != 4*3*2 {
		t.Errorf("len(Faces) = %d, want 24", len(s.Faces))
	}
	last := s.Vertices[len(s.Vertices)-1]
	if last != image.Pt(99, 99) {
		t.Errorf("last vertex = %v, want (99,99)", last)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.json", "a.JSON", "notes.txt", ManifestName, filepath.Join("sub", "c.json")} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.JSON"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "sub", "c.json"),
	}
	if len(got) != len(want) {
		t.Fatalf("Discover() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Discover()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if _, err := Discover(filepath.Join(dir, "nope")); err == nil {
		t.Error("Discover(missing dir) error = nil, want error")
	}
}

func TestStem(t *testing.T) {
	if got := Stem("/a/b/scene.v2.json"); got != "scene.v2" {
		t.Errorf("Stem() = %q, want scene.v2", got)
	}
}
