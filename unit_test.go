package quantops

import (
	"strings"
	"testing"
)

const unitTestFixture = `
[[units]]
dimensionality = { meter = 1 }
label = ["meter", "meters"]
symbol = "m"
value = 1.0

[[units]]
dimensionality = { second = 1 }
label = ["second", "seconds"]
symbol = "s"
value = 1.0

[[units]]
dimensionality = { kelvin = 1 }
label = ["degree Celsius", "degrees Celsius"]
symbol = "degC"
value = 1.0
offset = 273.15
`

func mustTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := Load(strings.NewReader(unitTestFixture))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg
}

func TestAtomicUnitMulScalarAppliesOffsetOnlyThere(t *testing.T) {
	reg := mustTestRegistry(t)
	degC := reg.MustUnit("degC")

	q := degC.MulScalar(100)
	if q.Value() != 373.15 {
		t.Fatalf("100 degC canonical value = %v, want 373.15", q.Value())
	}

	composite, err := degC.MulUnit(reg.MustUnit("m"))
	if err != nil {
		t.Fatalf("MulUnit: %v", err)
	}
	// offset must not leak into a composite: a degC*meter scale is plain 1*1.
	if composite.Scale() != 1 {
		t.Fatalf("composite scale = %v, want 1 (offset must be ignored)", composite.Scale())
	}
}

func TestQuantityAddRequiresMatchingDimensionality(t *testing.T) {
	reg := mustTestRegistry(t)
	meter := reg.MustUnit("m")
	second := reg.MustUnit("s")

	a := meter.MulScalar(3)
	b := second.MulScalar(5)

	if _, err := a.Add(b); err == nil {
		t.Fatal("expected a dimensional error adding meters to seconds")
	}

	c := meter.MulScalar(2)
	sum, err := a.Add(c)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Value() != 5 {
		t.Fatalf("3m + 2m = %v, want 5", sum.Value())
	}
}

func TestQuantityMulHasNoDimensionalityConstraint(t *testing.T) {
	reg := mustTestRegistry(t)
	meter := reg.MustUnit("m")
	second := reg.MustUnit("s")

	a := meter.MulScalar(10)
	b := second.MulScalar(2)

	product, err := a.MulQuantity(b)
	if err != nil {
		t.Fatalf("MulQuantity: %v", err)
	}
	want := NewDimensionality(map[DimensionName]float64{"meter": 1, "second": 1})
	if !product.Dimensionality().Equal(want) {
		t.Fatalf("10m * 2s dimensionality = %v, want %v", product.Dimensionality(), want)
	}
	if product.Value() != 20 {
		t.Fatalf("10m * 2s = %v, want 20", product.Value())
	}
}

func TestQuantityEqualNeverRaises(t *testing.T) {
	reg := mustTestRegistry(t)
	meter := reg.MustUnit("m")
	second := reg.MustUnit("s")

	a := meter.MulScalar(3)
	b := second.MulScalar(3)

	if a.Equal(b) {
		t.Fatal("quantities of different dimensionality should never compare equal")
	}

	c := meter.MulScalar(3)
	if !a.Equal(c) {
		t.Fatal("3m should equal 3m")
	}
}

func TestQuantityLessRaisesOnMismatch(t *testing.T) {
	reg := mustTestRegistry(t)
	meter := reg.MustUnit("m")
	second := reg.MustUnit("s")

	a := meter.MulScalar(3)
	b := second.MulScalar(5)

	if _, err := a.Less(b); err == nil {
		t.Fatal("Less should raise a DimensionalError across mismatched dimensionalities, unlike Equal")
	}

	c := meter.MulScalar(5)
	less, err := a.Less(c)
	if err != nil {
		t.Fatalf("Less: %v", err)
	}
	if !less {
		t.Fatal("3m should be less than 5m")
	}
}

func TestQuantityAcrossRegistriesRaises(t *testing.T) {
	reg1 := mustTestRegistry(t)
	reg2 := mustTestRegistry(t)

	a := reg1.MustUnit("m").MulScalar(1)
	b := reg2.MustUnit("m").MulScalar(1)

	if _, err := a.Add(b); err == nil {
		t.Fatal("expected a registry error combining quantities from different registries")
	}
	if a.Equal(b) {
		t.Fatal("quantities from different registries should never compare equal")
	}
}

func TestMagnitudeAsSubtractsOffset(t *testing.T) {
	reg := mustTestRegistry(t)
	degC := reg.MustUnit("degC")

	q := degC.MulScalar(100)
	mag, err := q.MagnitudeAs(degC)
	if err != nil {
		t.Fatalf("MagnitudeAs: %v", err)
	}
	if mag != 100 {
		t.Fatalf("MagnitudeAs(degC) = %v, want 100", mag)
	}
}
