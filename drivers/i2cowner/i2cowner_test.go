package i2cowner

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"calcurve-go/errcode"

	"github.com/stretchr/testify/assert"
)

// countingI2C fails the test if two transactions overlap.
type countingI2C struct {
	t      *testing.T
	busy   atomic.Bool
	calls  atomic.Int32
	delay  time.Duration
	err    error
	answer byte
}

func (c *countingI2C) Tx(addr uint16, w, r []byte) error {
	if !c.busy.CompareAndSwap(false, true) {
		c.t.Error("overlapping transactions")
	}
	defer c.busy.Store(false)
	c.calls.Add(1)
	time.Sleep(c.delay)
	for i := range r {
		r[i] = c.answer
	}
	return c.err
}

func TestSerialisesTransactions(t *testing.T) {
	hw := &countingI2C{t: t, delay: time.Millisecond, answer: 0xAB}
	o := New("i2c0", hw, 4)
	defer o.Close()
	bus := o.Bus(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := make([]byte, 2)
			assert.NoError(t, bus.Tx(0x48, []byte{0}, r))
			assert.Equal(t, []byte{0xAB, 0xAB}, r)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(8), hw.calls.Load())
	assert.Equal(t, "i2c0", o.ID())
}

func TestPassesErrors(t *testing.T) {
	nack := errors.New("nack")
	o := New("i2c0", &countingI2C{t: t, err: nack}, 0)
	defer o.Close()
	assert.ErrorIs(t, o.Bus(time.Second).Tx(0x48, []byte{0}, nil), nack)
}

func TestTimeout(t *testing.T) {
	o := New("i2c0", &countingI2C{t: t, delay: 100 * time.Millisecond}, 1)
	defer o.Close()
	err := o.Bus(5*time.Millisecond).Tx(0x48, []byte{0}, make([]byte, 1))
	assert.Equal(t, errcode.Timeout, errcode.Of(err))
}
