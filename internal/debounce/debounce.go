// Package debounce откладывает вызов функции до паузы в событиях (trailing edge).
package debounce

import (
	"sync"
	"time"
)

type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64 // поколение таймера: сработавший «старый» таймер ничего не делает
	pending bool
	stopped bool
}

func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (пере)взводит таймер: предыдущий несработавший вызов отменяется.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Cancel снимает отложенный вызов, если он есть. Возвращает true, если что-то было снято.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

func (d *Debouncer) cancelLocked() bool {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	was := d.pending
	d.pending = false
	return was
}

// Pending: взведён ли таймер
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop отменяет отложенный вызов и игнорирует все последующие Trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}
