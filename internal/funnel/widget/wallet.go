package widget

import (
	"fmt"
	"sync"

	"checkout-hub/internal/common/enum"
	"checkout-hub/internal/pkg/logger"
)

// Container ids the wallet buttons present into.
const (
	TargetApplePay  = "apple-pay-button"
	TargetGooglePay = "google-pay-button"
)

// WalletTarget maps a wallet payment method to its button container.
func WalletTarget(method enum.PaymentMethodEnum) string {
	if method == enum.GOOGLEPAY {
		return TargetGooglePay
	}
	return TargetApplePay
}

// WalletLabel is the user-facing name of a wallet method.
func WalletLabel(method enum.PaymentMethodEnum) string {
	if method == enum.GOOGLEPAY {
		return "Google Pay"
	}
	return "Apple Pay"
}

// WalletHooks receive the outcome of a wallet flow. Error messages are
// user-facing.
type WalletHooks struct {
	OnToken       func(*Token)
	OnError       func(message string)
	OnUnavailable func()
}

// WalletButton owns one wallet payment flow and its button presentation.
type WalletButton struct {
	kind    enum.PaymentMethodEnum
	payment WalletPayment
	target  string
	dom     DOM
	hooks   WalletHooks

	mu        sync.Mutex
	presented bool
	destroyed bool
}

// NewWalletButton constructs the wallet flow for the given method and
// wires its lifecycle events. The button is presented once the flow
// reports ready and the container exists.
func NewWalletButton(lib Library, kind enum.PaymentMethodEnum, cfg WalletConfig, dom DOM, hooks WalletHooks) (*WalletButton, error) {
	var (
		payment WalletPayment
		err     error
	)

	switch kind {
	case enum.APPLEPAY:
		payment, err = lib.ApplePay(cfg)
	case enum.GOOGLEPAY:
		payment, err = lib.GooglePay(cfg)
	default:
		return nil, fmt.Errorf("payment method %s is not a wallet", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", kind, err)
	}

	w := &WalletButton{
		kind:    kind,
		payment: payment,
		target:  WalletTarget(kind),
		dom:     dom,
		hooks:   hooks,
	}

	payment.Subscribe(WalletEvents{
		Ready:       w.onReady,
		Token:       w.onToken,
		Error:       w.onError,
		Unavailable: w.onUnavailable,
	})

	return w, nil
}

// Destroy tears down the flow. Teardown is best-effort and idempotent.
func (w *WalletButton) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return
	}
	w.destroyed = true

	if err := w.payment.Destroy(); err != nil {
		logger.Warning.Printf("%s teardown: %v", w.kind, err)
	}
}

// Presented reports whether the button made it into the page.
func (w *WalletButton) Presented() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.presented
}

func (w *WalletButton) onReady() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	if !w.dom.Has(w.target) {
		return
	}

	if err := w.present(); err != nil {
		logger.Error.Printf("%s button: %v", w.kind, err)
		w.fail(fmt.Sprintf("%s is available but the button failed to initialize, please try another payment method", WalletLabel(w.kind)))
		return
	}

	w.mu.Lock()
	w.presented = true
	w.mu.Unlock()
}

// present probes the flow for a presentation hook, in preference order.
// A flow without any hook renders its own UI and needs nothing here.
func (w *WalletButton) present() error {
	target := "#" + w.target

	switch p := w.payment.(type) {
	case Attacher:
		return p.AttachButton(target)
	case Mounter:
		return p.MountButton(target)
	case Renderer:
		return p.RenderButton(target)
	}
	return nil
}

func (w *WalletButton) onToken(token *Token) {
	if w.hooks.OnToken != nil {
		w.hooks.OnToken(token)
	}
}

func (w *WalletButton) onError(err error) {
	logger.Error.Printf("%s error: %v", w.kind, err)
	w.fail(fmt.Sprintf("%s error: %v", WalletLabel(w.kind), err))
}

func (w *WalletButton) onUnavailable() {
	if w.hooks.OnUnavailable != nil {
		w.hooks.OnUnavailable()
	}
	w.fail(fmt.Sprintf("%s is not available on this device", WalletLabel(w.kind)))
}

func (w *WalletButton) fail(message string) {
	if w.hooks.OnError != nil {
		w.hooks.OnError(message)
	}
}
