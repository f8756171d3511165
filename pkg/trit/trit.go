// Package trit packs integers into balanced-ternary digits.
//
// Memory is a slice of trits in {-1, 0, 1}. A word of n trits is stored
// least significant trit first.
package trit

import "math/big"

// WordTrits is the register word size. 39 trits is the widest balanced
// range that fits an int64.
const WordTrits = 39

// Max returns the largest value representable in n trits, (3^n - 1) / 2.
func Max(n int) int64 {
	var p int64 = 1
	for i := 0; i < n; i++ {
		p *= 3
	}
	return (p - 1) / 2
}

// Clamp wraps v into the n-trit balanced range, the way an n-trit register
// overflows.
func Clamp(v int64, n int) int64 {
	hi := Max(n)
	span := 2*hi + 1
	r := v % span
	if r > hi {
		r -= span
	}
	if r < -hi {
		r += span
	}
	return r
}

// MulClamp multiplies a and b and wraps the product into n trits without
// overflowing int64 on the way.
func MulClamp(a, b int64, n int) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	if p.IsInt64() {
		return Clamp(p.Int64(), n)
	}
	hi := Max(n)
	span := big.NewInt(2*hi + 1)
	p.Rem(p, span)
	return Clamp(p.Int64(), n)
}

// Fits reports whether v is representable in n trits.
func Fits(v int64, n int) bool {
	hi := Max(n)
	return v >= -hi && v <= hi
}

// Encode writes v into mem[addr : addr+n]. Bits beyond n trits are dropped.
func Encode(mem []int8, addr, n int, v int64) {
	for i := 0; i < n; i++ {
		t := lowTrit(v)
		mem[addr+i] = t
		v = (v - int64(t)) / 3
	}
}

// Decode reads the n-trit word at mem[addr].
func Decode(mem []int8, addr, n int) int64 {
	var v, p int64 = 0, 1
	for i := 0; i < n; i++ {
		v += int64(mem[addr+i]) * p
		p *= 3
	}
	return v
}

// ShiftRight drops the lowest trit, rounding to the nearest integer.
func ShiftRight(v int64) int64 {
	return (v - int64(lowTrit(v))) / 3
}

// lowTrit is the least significant balanced trit of v.
func lowTrit(v int64) int8 {
	r := v % 3
	switch r {
	case 2, -1:
		return -1
	case -2, 1:
		return 1
	}
	return 0
}
