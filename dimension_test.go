package quantops

import "testing"

func TestDimensionalityMul(t *testing.T) {
	cases := []struct {
		a, b, want Dimensionality
	}{
		{
			a:    NewDimensionality(map[DimensionName]float64{"meter": 1}),
			b:    NewDimensionality(map[DimensionName]float64{"second": -1}),
			want: NewDimensionality(map[DimensionName]float64{"meter": 1, "second": -1}),
		},
		{
			a:    NewDimensionality(map[DimensionName]float64{"meter": 1}),
			b:    NewDimensionality(map[DimensionName]float64{"meter": -1}),
			want: NewDimensionality(nil),
		},
		{
			a:    NewDimensionality(nil),
			b:    NewDimensionality(map[DimensionName]float64{"meter": 2}),
			want: NewDimensionality(map[DimensionName]float64{"meter": 2}),
		},
	}
	for i, c := range cases {
		got := c.a.Mul(c.b)
		if !got.Equal(c.want) {
			t.Errorf("case %d: got %v, want %v", i, got, c.want)
		}
	}
}

func TestDimensionalityDivAndPow(t *testing.T) {
	meter := NewDimensionality(map[DimensionName]float64{"meter": 1})
	second := NewDimensionality(map[DimensionName]float64{"second": 1})

	velocity := meter.Div(second)
	want := NewDimensionality(map[DimensionName]float64{"meter": 1, "second": -1})
	if !velocity.Equal(want) {
		t.Fatalf("meter/second = %v, want %v", velocity, want)
	}

	cubed := meter.Pow(3)
	wantCubed := NewDimensionality(map[DimensionName]float64{"meter": 3})
	if !cubed.Equal(wantCubed) {
		t.Fatalf("meter**3 = %v, want %v", cubed, wantCubed)
	}

	if !cubed.Pow(0).IsDimensionless() {
		t.Fatalf("meter**3**0 should be dimensionless, got %v", cubed.Pow(0))
	}
}

func TestDimensionalityEqualIgnoresZeroEntries(t *testing.T) {
	a := NewDimensionality(map[DimensionName]float64{"meter": 1, "second": 0})
	b := NewDimensionality(map[DimensionName]float64{"meter": 1})
	if !a.Equal(b) {
		t.Fatalf("dimensionalities differing only by a pruned zero entry should be equal: %v vs %v", a, b)
	}
}

func TestDimensionalityKeyIsCanonical(t *testing.T) {
	a := NewDimensionality(map[DimensionName]float64{"meter": 1, "second": -2})
	b := NewDimensionality(map[DimensionName]float64{"second": -2, "meter": 1})
	if a.Key() != b.Key() {
		t.Fatalf("Key should not depend on construction order: %q vs %q", a.Key(), b.Key())
	}
}
