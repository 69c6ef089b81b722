package widget

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"checkout-hub/internal/pkg/logger"
)

// Container ids the hosted card fields attach to.
const (
	TargetCardNumber = "card-number"
	TargetCardMonth  = "card-month"
	TargetCardYear   = "card-year"
	TargetCardCVV    = "card-cvv"
)

var cardTargets = []string{TargetCardNumber, TargetCardMonth, TargetCardYear, TargetCardCVV}

// ErrCardTargetsMissing is returned when the card containers never
// showed up within the polling budget.
var ErrCardTargetsMissing = errors.New("card field containers not found")

const (
	defaultMountAttempts = 50
	defaultMountInterval = 100 * time.Millisecond
)

// CardFields owns the four hosted card inputs. Mounting waits for the
// containers with a bounded poll instead of spinning forever.
type CardFields struct {
	lib      Library
	dom      DOM
	attempts int
	interval time.Duration
	sleep    func(time.Duration)

	mu     sync.Mutex
	fields []Field
}

func NewCardFields(lib Library, dom DOM) *CardFields {
	return &CardFields{
		lib:      lib,
		dom:      dom,
		attempts: defaultMountAttempts,
		interval: defaultMountInterval,
		sleep:    time.Sleep,
	}
}

// Mount waits for every container, tears down any previous group, then
// creates and attaches number, month, year and CVV fields.
func (c *CardFields) Mount() error {
	if err := c.waitForTargets(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.destroyLocked()

	elements, err := c.lib.Elements()
	if err != nil {
		return fmt.Errorf("failed to create card fields: %w", err)
	}

	group := []struct {
		field  Field
		target string
	}{
		{elements.CardNumber(), TargetCardNumber},
		{elements.CardMonth(), TargetCardMonth},
		{elements.CardYear(), TargetCardYear},
		{elements.CardCVV(), TargetCardCVV},
	}

	for _, g := range group {
		if err := g.field.Attach("#" + g.target); err != nil {
			c.destroyLocked()
			return fmt.Errorf("failed to attach %s: %w", g.target, err)
		}
		c.fields = append(c.fields, g.field)
	}

	return nil
}

// Destroy detaches all fields. Individual failures are logged and
// swallowed so teardown always completes.
func (c *CardFields) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyLocked()
}

// Mounted reports whether a field group is currently attached.
func (c *CardFields) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fields) > 0
}

func (c *CardFields) destroyLocked() {
	for _, f := range c.fields {
		if err := f.Destroy(); err != nil {
			logger.Warning.Printf("card field destroy: %v", err)
		}
	}
	c.fields = nil
}

func (c *CardFields) waitForTargets() error {
	for i := 0; i < c.attempts; i++ {
		if c.targetsReady() {
			return nil
		}
		c.sleep(c.interval)
	}
	return ErrCardTargetsMissing
}

func (c *CardFields) targetsReady() bool {
	for _, id := range cardTargets {
		if !c.dom.Has(id) {
			return false
		}
	}
	return true
}
