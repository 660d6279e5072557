package quantops

import "testing"

func TestTokenizeScalarAndUnit(t *testing.T) {
	toks, err := tokenize(NewLocatedString("10.8 m/s"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	wantKinds := []tokenKind{tokScalar, tokUnit, tokDiv, tokUnit}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].kind, k)
		}
	}
	if toks[0].num != 10.8 {
		t.Errorf("scalar = %v, want 10.8", toks[0].num)
	}
	if toks[1].text != "m" || toks[3].text != "s" {
		t.Errorf("unit text = %q, %q, want m, s", toks[1].text, toks[3].text)
	}
}

func TestTokenizeMinusIsRangeAfterScalar(t *testing.T) {
	toks, err := tokenize(NewLocatedString("3-2"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []tokenKind{tokScalar, tokRng, tokScalar}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].kind, k)
		}
	}
	if toks[2].num != 2 {
		t.Errorf("second scalar = %v, want 2 (not -2)", toks[2].num)
	}
}

func TestTokenizeLeadingMinusIsPartOfScalar(t *testing.T) {
	toks, err := tokenize(NewLocatedString("-2 m"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].kind != tokScalar || toks[0].num != -2 {
		t.Fatalf("leading '-' should fold into the scalar, got %+v", toks[0])
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := tokenize(NewLocatedString("3 @"))
	if err == nil {
		t.Fatal("expected a LexError for an unrecognized character")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
}

func TestTokenizeUncertaintyAndExponentOperators(t *testing.T) {
	toks, err := tokenize(NewLocatedString("1 m ± 2 m"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	foundUnc := false
	for _, tk := range toks {
		if tk.kind == tokUnc {
			foundUnc = true
		}
	}
	if !foundUnc {
		t.Fatal("expected a tokUnc for '±'")
	}

	toks, err = tokenize(NewLocatedString("m**2"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(toks) != 3 || toks[1].kind != tokExp {
		t.Fatalf("expected [unit, exp, scalar], got %+v", toks)
	}
}
