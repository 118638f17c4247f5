package curve

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func randomScalar(t *testing.T) *big.Int {
	t.Helper()
	b := make([]byte, 66)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return new(big.Int).SetBytes(b)
}

func TestNeutralIsIdentity(t *testing.T) {
	g := Generator()
	if !g.Add(Neutral()).Equal(g) {
		t.Fatal("G + neutral != G")
	}
}

func TestScalarMultZero(t *testing.T) {
	g := Generator()
	if !g.ScalarMult(big.NewInt(0)).Equal(Neutral()) {
		t.Fatal("0*G != neutral")
	}
}

func TestScalarMultOne(t *testing.T) {
	g := Generator()
	if !g.ScalarMult(big.NewInt(1)).Equal(g) {
		t.Fatal("1*G != G")
	}
}

func TestGPlusMinusG(t *testing.T) {
	g := Generator()
	if !g.Add(g.Negate()).Equal(Neutral()) {
		t.Fatal("G + (-G) != neutral")
	}
}

func TestTwoTimesGEqualsGPlusG(t *testing.T) {
	g := Generator()
	if !g.ScalarMult(big.NewInt(2)).Equal(g.Add(g)) {
		t.Fatal("2*G != G+G")
	}
}

func TestFourTimesGEqualsTwiceDoubled(t *testing.T) {
	g := Generator()
	twice := g.ScalarMult(big.NewInt(2)).ScalarMult(big.NewInt(2))
	if !g.ScalarMult(big.NewInt(4)).Equal(twice) {
		t.Fatal("4*G != (2*G) scalar-multiplied by 2")
	}
}

func TestFourGNotNeutral(t *testing.T) {
	g := Generator()
	if g.ScalarMult(big.NewInt(4)).Equal(Neutral()) {
		t.Fatal("4*G must not be the neutral element (cofactor 4, subgroup order r)")
	}
}

func TestROrderAnnihilatesGenerator(t *testing.T) {
	g := Generator()
	if !g.ScalarMult(Order()).Equal(Neutral()) {
		t.Fatal("r*G != neutral")
	}
}

func TestROrderAnnihilatesGeneratorCofactorMultiple(t *testing.T) {
	// (4*r)*G lands back at the neutral element: r is the order of the
	// subgroup generated by G restricted to the cofactor-4 coset used
	// by this library's key derivation (scalars are pre-multiplied by 4).
	g := Generator()
	four := big.NewInt(4)
	fourR := new(big.Int).Mul(four, Order())
	if !g.ScalarMult(fourR).Equal(Neutral()) {
		t.Fatal("(4r)*G != neutral")
	}
}

func TestScalarMultReducesModR(t *testing.T) {
	g := Generator()
	for i := 0; i < 10; i++ {
		k := randomScalar(t)
		kModR := new(big.Int).Mod(k, Order())
		if !g.ScalarMult(k).Equal(g.ScalarMult(kModR)) {
			t.Fatalf("k*G != (k mod r)*G for k=%s", k.String())
		}
	}
}

func TestScalarMultDistributesOverAddition(t *testing.T) {
	g := Generator()
	for i := 0; i < 10; i++ {
		k := randomScalar(t)
		tt := randomScalar(t)
		lhs := g.ScalarMult(k).Add(g.ScalarMult(tt))
		sum := new(big.Int).Add(k, tt)
		rhs := g.ScalarMult(sum)
		if !lhs.Equal(rhs) {
			t.Fatalf("k*G + t*G != (k+t)*G")
		}
	}
}

func TestPointSerializationRoundTrip(t *testing.T) {
	g := Generator()
	for i := 0; i < 5; i++ {
		k := randomScalar(t)
		pt := g.ScalarMult(k)
		enc := pt.Bytes()
		if len(enc) != StdBLen {
			t.Fatalf("serialized length = %d, want %d", len(enc), StdBLen)
		}
		dec, err := FromBytes(enc)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		if !dec.Equal(pt) {
			t.Fatal("round trip point mismatch")
		}
	}
}

func TestFromBytesWrongLength(t *testing.T) {
	if _, err := FromBytes(make([]byte, StdBLen-1)); err != ErrMalformedEncoding {
		t.Fatalf("expected ErrMalformedEncoding, got %v", err)
	}
}

func TestFromBytesNotOnCurve(t *testing.T) {
	// All-0xFF bytes decode to (-1, -1), which is not on the curve.
	buf := make([]byte, StdBLen)
	for i := range buf {
		buf[i] = 0xFF
	}
	if _, err := FromBytes(buf); err != ErrNotOnCurve {
		t.Fatalf("expected ErrNotOnCurve, got %v", err)
	}
}

func TestNewPointFromXRejectsBadX(t *testing.T) {
	// x = 3 has no valid y on E_521: (1 - x^2) * (1 - d*x^2)^-1 is not a
	// quadratic residue mod p, so decompression must report NoSquareRoot.
	_, err := NewPointFromX(big.NewInt(3), 0)
	if err != ErrNoSquareRoot {
		t.Fatalf("expected ErrNoSquareRoot for x=3, got %v", err)
	}
}
