// Package i2cowner funnels every transaction on one I2C bus through a
// single worker goroutine so several pollers can share the bus.
package i2cowner

import (
	"time"

	"calcurve-go/errcode"

	"tinygo.org/x/drivers"
)

// request posted to the worker
type request struct {
	addr uint16
	w, r []byte
	done chan error // buffered(1); worker replies best-effort
}

// Owner hosts the worker for one bus.
type Owner struct {
	id   string
	hw   drivers.I2C
	reqs chan request
	quit chan struct{}
}

// New starts a worker for hw. depth bounds the number of queued requests.
func New(id string, hw drivers.I2C, depth int) *Owner {
	if depth <= 0 {
		depth = 16
	}
	o := &Owner{
		id:   id,
		hw:   hw,
		reqs: make(chan request, depth),
		quit: make(chan struct{}),
	}
	go o.loop()
	return o
}

func (o *Owner) ID() string { return o.id }

func (o *Owner) loop() {
	for {
		select {
		case req := <-o.reqs:
			err := o.hw.Tx(req.addr, req.w, req.r)
			// best-effort reply; do not block the worker
			select {
			case req.done <- err:
			default:
			}
		case <-o.quit:
			return
		}
	}
}

// Close stops the worker. Pending and later Tx calls without a timeout
// block forever, so close only after the users are gone.
func (o *Owner) Close() { close(o.quit) }

// Bus returns a drivers.I2C view of the owner. A positive timeout bounds
// both the enqueue (errcode.Busy) and the transaction (errcode.Timeout).
func (o *Owner) Bus(timeout time.Duration) drivers.I2C {
	return &handle{o: o, timeout: timeout}
}

type handle struct {
	o       *Owner
	timeout time.Duration // 0 => no deadline
}

var _ drivers.I2C = (*handle)(nil)

func (h *handle) Tx(addr uint16, w, r []byte) error {
	req := request{addr: addr, w: w, r: r, done: make(chan error, 1)}

	if h.timeout <= 0 {
		h.o.reqs <- req
		return <-req.done
	}

	t := time.NewTimer(h.timeout)
	defer t.Stop()
	select {
	case h.o.reqs <- req:
	case <-t.C:
		return errcode.Busy
	}
	select {
	case err := <-req.done:
		return err
	case <-t.C:
		return errcode.Timeout
	}
}
