package runtime

import "math/big"

// MinCachedInt and MaxCachedInt bound the pre-constructed integer singleton
// pool (§3.4). This is purely a performance optimization: value identity is
// never observable from AlanFL source.
const (
	MinCachedInt = -127
	MaxCachedInt = 127
)

// ValueCache holds the VM's singleton values: Nothing, both booleans, and
// every integer in [MinCachedInt, MaxCachedInt].
type ValueCache struct {
	nothing  Value
	trueVal  Value
	falseVal Value
	ints     [MaxCachedInt - MinCachedInt + 1]Value
}

// NewValueCache builds and pre-populates a cache.
func NewValueCache() *ValueCache {
	c := &ValueCache{
		nothing:  NothingValue{},
		trueVal:  BooleanValue{Val: true},
		falseVal: BooleanValue{Val: false},
	}
	for i := MinCachedInt; i <= MaxCachedInt; i++ {
		c.ints[i-MinCachedInt] = IntegerValue{Val: big.NewInt(int64(i))}
	}
	return c
}

// Nothing returns the singleton Nothing value.
func (c *ValueCache) Nothing() Value { return c.nothing }

// Bool returns the singleton for b.
func (c *ValueCache) Bool(b bool) Value {
	if b {
		return c.trueVal
	}
	return c.falseVal
}

// Int returns the cached singleton for z when it fits in the cache range,
// otherwise a freshly allocated IntegerValue.
func (c *ValueCache) Int(z *big.Int) Value {
	if z.IsInt64() {
		i := z.Int64()
		if i >= MinCachedInt && i <= MaxCachedInt {
			return c.ints[i-MinCachedInt]
		}
	}
	return IntegerValue{Val: z}
}

// Decimal always allocates fresh; decimals are not cached (§3.4 only
// caches Nothing, booleans, and small integers).
func (c *ValueCache) Decimal(f *big.Float) Value {
	return DecimalValue{Val: f}
}
