package filters

import (
	"errors"
	"testing"
)

func TestStrategyGeometry(t *testing.T) {
	tests := []struct {
		strategy Strategy
		regions  int
	}{
		{Kawahara, 4},
		{TomitaTsuji, 5},
		{NagaoMatsuyama, 9},
		{Somboonkaew, 5},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.Name, func(t *testing.T) {
			if tt.strategy.Radius != 2 {
				t.Errorf("Radius: got %d, want 2", tt.strategy.Radius)
			}
			if len(tt.strategy.Regions) != tt.regions {
				t.Fatalf("regions: got %d, want %d", len(tt.strategy.Regions), tt.regions)
			}
			for _, r := range tt.strategy.Regions {
				if n := len(r.Offsets); n != 9 && n != 5 {
					t.Errorf("region %q: got %d offsets, want 5 or 9", r.Name, n)
				}
				seen := map[Offset]bool{}
				for _, o := range r.Offsets {
					if seen[o] {
						t.Errorf("region %q repeats offset %+v", r.Name, o)
					}
					seen[o] = true
				}
				if !seen[Offset{0, 0}] {
					t.Errorf("region %q does not contain the center", r.Name)
				}
			}
		})
	}
}

func TestKawaharaQuadrantsShareCenterRowAndColumn(t *testing.T) {
	want := [][2]int{{-2, -2}, {-2, 0}, {0, -2}, {0, 0}}
	for i, r := range Kawahara.Regions {
		if first := r.Offsets[0]; first.DY != want[i][0] || first.DX != want[i][1] {
			t.Errorf("quadrant %d starts at %+v, want (%d,%d)", i, first, want[i][0], want[i][1])
		}
	}
}

func TestEdgePreserveUniform(t *testing.T) {
	for _, name := range StrategyNames() {
		t.Run(name, func(t *testing.T) {
			s, err := LookupStrategy(name)
			if err != nil {
				t.Fatalf("LookupStrategy failed: %v", err)
			}
			src := newSolid(t, 6, 6, 12, 34, 56, 200)
			dst, err := EdgePreserve(src, s)
			if err != nil {
				t.Fatalf("EdgePreserve failed: %v", err)
			}
			for i := range src.Pix {
				if dst.Pix[i] != src.Pix[i] {
					t.Fatalf("byte %d: got %d, want %d", i, dst.Pix[i], src.Pix[i])
				}
			}
		})
	}
}

func TestEdgePreserveKeepsStepEdge(t *testing.T) {
	for _, name := range StrategyNames() {
		t.Run(name, func(t *testing.T) {
			src := newVerticalStep(t, 7, 7, 3)
			dst, err := EdgePreserve(src, Strategies[name])
			if err != nil {
				t.Fatalf("EdgePreserve failed: %v", err)
			}
			assertBorderCopied(t, src, dst, Centered(2))
			assertAlphaKept(t, src, dst)
			if got := dst.At(2, 3).R; got != 0 {
				t.Errorf("last dark column: got %d, want 0", got)
			}
			if got := dst.At(3, 3).R; got != 255 {
				t.Errorf("first bright column: got %d, want 255", got)
			}
		})
	}
}

func TestEdgePreserveTiesKeepFirstRegion(t *testing.T) {
	s := Strategy{
		Name:   "pair",
		Radius: 1,
		Regions: []Region{
			{Name: "left", Offsets: []Offset{{0, -1}}},
			{Name: "right", Offsets: []Offset{{0, 1}}},
		},
	}
	src := newSolid(t, 3, 3, 0, 0, 0, 255)
	src.Pix[src.Offset(0, 1)] = 40
	src.Pix[src.Offset(2, 1)] = 90

	dst, err := EdgePreserve(src, s)
	if err != nil {
		t.Fatalf("EdgePreserve failed: %v", err)
	}
	if got := dst.At(1, 1).R; got != 40 {
		t.Errorf("tie: got %d, want 40 from the first region", got)
	}
}

func TestEdgePreserveEmptyRegionNeverWins(t *testing.T) {
	s := Strategy{
		Name:   "with-empty",
		Radius: 1,
		Regions: []Region{
			{Name: "empty"},
			{Name: "center", Offsets: []Offset{{0, 0}}},
		},
	}
	src := newSolid(t, 3, 3, 70, 70, 70, 255)
	dst, err := EdgePreserve(src, s)
	if err != nil {
		t.Fatalf("EdgePreserve failed: %v", err)
	}
	if got := dst.At(1, 1).R; got != 70 {
		t.Errorf("center: got %d, want 70", got)
	}
}

func TestEdgePreserveValidation(t *testing.T) {
	src := newSolid(t, 5, 5, 0, 0, 0, 255)
	bad := Strategy{
		Name:    "too-far",
		Radius:  1,
		Regions: []Region{{Name: "far", Offsets: []Offset{{2, 0}}}},
	}
	if _, err := EdgePreserve(src, bad); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("out-of-radius region: got %v, want ErrInvalidParam", err)
	}
	if _, err := EdgePreserve(src, Strategy{Name: "none", Radius: 2}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("no regions: got %v, want ErrInvalidParam", err)
	}
	if _, err := LookupStrategy("gaussian"); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("unknown strategy: got %v, want ErrInvalidParam", err)
	}
}
