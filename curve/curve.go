// Package curve implements arithmetic on the Edwards curve E_521:
// x² + y² ≡ 1 + d·x²·y² (mod p), p = 2^521 - 1, d = -376014.
package curve

import (
	"errors"
	"math/big"

	"github.com/NWc0de/KeccakUtils/internal/bigint"
)

// ErrNotOnCurve is returned when a deserialized or hand-built point
// fails the curve equation check.
var ErrNotOnCurve = errors.New("curve: point is not on E_521")

// ErrNoSquareRoot is returned when point decompression is requested for
// an x coordinate with no valid y.
var ErrNoSquareRoot = errors.New("curve: no square root exists for given x")

// ErrMalformedEncoding is returned when a byte slice has the wrong
// length to decode as a point.
var ErrMalformedEncoding = errors.New("curve: malformed point encoding")

// StdBLen is the canonical serialized length of an E_521 point: two
// 66-byte signed big-endian coordinates.
const StdBLen = 2 * 66

func mustParse(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("curve: bad constant literal " + s)
	}
	return v
}

var (
	// p = 2^521 - 1.
	p = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 521), big.NewInt(1))
	d = big.NewInt(-376014)
	// r = 2^519 - 337554763258501705789107630418782636071904961214051226618635150085779108655765,
	// the prime-order subgroup cardinality of the base point G.
	r = new(big.Int).Sub(
		new(big.Int).Lsh(big.NewInt(1), 519),
		mustParse("337554763258501705789107630418782636071904961214051226618635150085779108655765"),
	)
)

// Point is a value type representing an (x, y) pair on E_521. The zero
// value is not a valid point; construct via NewPoint, NewPointFromX,
// Neutral, or Generator.
type Point struct {
	x, y *big.Int
}

// Neutral returns the curve's identity element (0, 1).
func Neutral() Point {
	return Point{x: big.NewInt(0), y: big.NewInt(1)}
}

// Generator returns the base point G: the unique point on E_521 with
// x = 4 and the least-significant bit of y equal to 0.
func Generator() Point {
	g, err := NewPointFromX(big.NewInt(4), 0)
	if err != nil {
		panic("curve: base point G failed to decompress: " + err.Error())
	}
	return g
}

// NewPoint constructs a point from explicit (x, y) coordinates,
// reducing both mod p and validating the curve equation. The single
// exception is the neutral element (0, 1): it is accepted without
// running the general curve-equation check.
func NewPoint(x, y *big.Int) (Point, error) {
	rx := new(big.Int).Mod(x, p)
	ry := new(big.Int).Mod(y, p)
	if rx.Sign() == 0 && ry.Cmp(big.NewInt(1)) == 0 {
		return Point{x: rx, y: ry}, nil
	}
	if !onCurve(rx, ry) {
		return Point{}, ErrNotOnCurve
	}
	return Point{x: rx, y: ry}, nil
}

func onCurve(x, y *big.Int) bool {
	x2 := new(big.Int).Mul(x, x)
	x2.Mod(x2, p)
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, p)

	lhs := new(big.Int).Add(x2, y2)
	lhs.Mod(lhs, p)

	rhs := new(big.Int).Mul(x2, y2)
	rhs.Mul(rhs, d)
	rhs.Add(rhs, big.NewInt(1))
	rhs.Mod(rhs, p)

	return lhs.Cmp(rhs) == 0
}

// NewPointFromX decompresses a point from its x coordinate and the
// desired least-significant bit of y:
//
//	y = sqrt( (1 - x^2) * (1 - d*x^2)^-1 mod p )
func NewPointFromX(x *big.Int, lsb uint) (Point, error) {
	rx := new(big.Int).Mod(x, p)

	x2 := new(big.Int).Mul(rx, rx)
	x2.Mod(x2, p)

	num := new(big.Int).Sub(big.NewInt(1), x2)
	num.Mod(num, p)

	denom := new(big.Int).Mul(d, x2)
	denom.Sub(big.NewInt(1), denom)
	denom.Mod(denom, p)
	denomInv := new(big.Int).ModInverse(denom, p)
	if denomInv == nil {
		return Point{}, ErrNoSquareRoot
	}

	radicand := new(big.Int).Mul(num, denomInv)
	radicand.Mod(radicand, p)

	y := sqrtModP(radicand, lsb)
	if y == nil {
		return Point{}, ErrNoSquareRoot
	}
	return Point{x: rx, y: y}, nil
}

// sqrtModP computes a square root of v mod p (p ≡ 3 mod 4) with the
// prescribed least-significant bit, or nil if none exists.
func sqrtModP(v *big.Int, lsb uint) *big.Int {
	if v.Sign() == 0 {
		return big.NewInt(0)
	}
	exp := new(big.Int).Add(new(big.Int).Rsh(p, 2), big.NewInt(1))
	root := new(big.Int).Exp(v, exp, p)
	if root.Bit(0) != lsb {
		root = new(big.Int).Sub(p, root)
	}
	check := new(big.Int).Mul(root, root)
	check.Mod(check, p)
	if check.Cmp(new(big.Int).Mod(v, p)) != 0 {
		return nil
	}
	return root
}

// Equal reports whether A and B have equal reduced coordinates.
func (a Point) Equal(b Point) bool {
	return a.x.Cmp(b.x) == 0 && a.y.Cmp(b.y) == 0
}

// Negate returns -(x, y) = (-x mod p, y).
func (a Point) Negate() Point {
	nx := new(big.Int).Neg(a.x)
	nx.Mod(nx, p)
	return Point{x: nx, y: new(big.Int).Set(a.y)}
}

// Add returns A + B using the complete Edwards addition law:
//
//	x3 = (x1 y2 + y1 x2) * (1 + d x1 x2 y1 y2)^-1 mod p
//	y3 = (y1 y2 - x1 x2) * (1 - d x1 x2 y1 y2)^-1 mod p
//
// The temporary xy = x1 x2 y1 y2 is reduced mod p before being combined
// with d; omitting that reduction produces wrong results once xy grows
// past a single word.
func (a Point) Add(b Point) Point {
	x1, y1, x2, y2 := a.x, a.y, b.x, b.y

	xNum := new(big.Int).Add(new(big.Int).Mul(x1, y2), new(big.Int).Mul(y1, x2))
	xNum.Mod(xNum, p)

	xy := new(big.Int).Mul(x1, x2)
	xy.Mul(xy, y1)
	xy.Mul(xy, y2)
	xy.Mod(xy, p) // critical reduction, see doc comment above

	dxy := new(big.Int).Mul(d, xy)
	dxy.Mod(dxy, p)

	xDenom := new(big.Int).Add(big.NewInt(1), dxy)
	xDenom.Mod(xDenom, p)
	xDenom.ModInverse(xDenom, p)

	newX := new(big.Int).Mul(xNum, xDenom)
	newX.Mod(newX, p)

	yNum := new(big.Int).Sub(new(big.Int).Mul(y1, y2), new(big.Int).Mul(x1, x2))
	yNum.Mod(yNum, p)

	yDenom := new(big.Int).Sub(big.NewInt(1), dxy)
	yDenom.Mod(yDenom, p)
	yDenom.ModInverse(yDenom, p)

	newY := new(big.Int).Mul(yNum, yDenom)
	newY.Mod(newY, p)

	return Point{x: newX, y: newY}
}

// ScalarMult returns k*A using double-and-add, most-significant-bit
// first. k is reduced mod the subgroup order r before use, which is
// necessary both for termination and for cofactor hygiene in the
// signature scheme.
func (a Point) ScalarMult(k *big.Int) Point {
	kr := new(big.Int).Mod(k, r)
	res := Neutral()
	for i := kr.BitLen(); i >= 0; i-- {
		res = res.Add(res)
		if kr.Bit(i) == 1 {
			res = res.Add(a)
		}
	}
	return res
}

// X returns a's x coordinate as a big.Int (a defensive copy).
func (a Point) X() *big.Int { return new(big.Int).Set(a.x) }

// Y returns a's y coordinate as a big.Int (a defensive copy).
func (a Point) Y() *big.Int { return new(big.Int).Set(a.y) }

// Order returns the prime-order subgroup cardinality r.
func Order() *big.Int { return new(big.Int).Set(r) }

// Bytes serializes a point into the canonical StdBLen-byte form: x
// left-padded/sign-extended into the first 66 bytes, y likewise into
// the next 66 bytes.
func (a Point) Bytes() []byte {
	out := make([]byte, StdBLen)
	copy(out[:66], bigint.SignedBytes(a.x, 66))
	copy(out[66:], bigint.SignedBytes(a.y, 66))
	return out
}

// FromBytes deserializes and validates a point from its canonical
// StdBLen-byte encoding.
func FromBytes(b []byte) (Point, error) {
	if len(b) != StdBLen {
		return Point{}, ErrMalformedEncoding
	}
	x := bigint.FromSignedBytes(b[:66])
	y := bigint.FromSignedBytes(b[66:])
	return NewPoint(x, y)
}
