package widget

import (
	"context"
	"errors"
	"sync"
)

type fakeField struct {
	mu        sync.Mutex
	target    string
	attachErr error
	destroyed bool
}

func (f *fakeField) Attach(target string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr != nil {
		return f.attachErr
	}
	f.target = target
	return nil
}

func (f *fakeField) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
	return nil
}

type fakeElements struct {
	number, month, year, cvv *fakeField
}

func newFakeElements() *fakeElements {
	return &fakeElements{
		number: &fakeField{},
		month:  &fakeField{},
		year:   &fakeField{},
		cvv:    &fakeField{},
	}
}

func (e *fakeElements) CardNumber() Field { return e.number }
func (e *fakeElements) CardMonth() Field  { return e.month }
func (e *fakeElements) CardYear() Field   { return e.year }
func (e *fakeElements) CardCVV() Field    { return e.cvv }

type fakeWallet struct {
	mu        sync.Mutex
	events    WalletEvents
	destroyed bool
}

func (w *fakeWallet) Subscribe(events WalletEvents) {
	w.mu.Lock()
	w.events = events
	w.mu.Unlock()
}

func (w *fakeWallet) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyed = true
	return nil
}

func (w *fakeWallet) fire(f func(WalletEvents)) {
	w.mu.Lock()
	events := w.events
	w.mu.Unlock()
	f(events)
}

// attachableWallet exposes the preferred presentation hook.
type attachableWallet struct {
	fakeWallet
	attachedTo string
	attachErr  error
}

func (w *attachableWallet) AttachButton(target string) error {
	if w.attachErr != nil {
		return w.attachErr
	}
	w.attachedTo = target
	return nil
}

// mountableWallet has both mount and render hooks; mount must win.
type mountableWallet struct {
	fakeWallet
	mountedTo  string
	renderedTo string
}

func (w *mountableWallet) MountButton(target string) error {
	w.mountedTo = target
	return nil
}

func (w *mountableWallet) RenderButton(target string) error {
	w.renderedTo = target
	return nil
}

type fakeLibrary struct {
	configureErr error
	elementsErr  error
	elements     *fakeElements
	token        *Token
	tokenErr     error
	applePay     WalletPayment
	googlePay    WalletPayment
	applePayErr  error

	mu            sync.Mutex
	configuredKey string
	tokenizeCalls int
}

func (l *fakeLibrary) Configure(publicKey string) error {
	if l.configureErr != nil {
		return l.configureErr
	}
	l.mu.Lock()
	l.configuredKey = publicKey
	l.mu.Unlock()
	return nil
}

func (l *fakeLibrary) Elements() (Elements, error) {
	if l.elementsErr != nil {
		return nil, l.elementsErr
	}
	if l.elements == nil {
		l.elements = newFakeElements()
	}
	return l.elements, nil
}

func (l *fakeLibrary) TokenizeForm(ctx context.Context, _ BillingForm) (*Token, error) {
	l.mu.Lock()
	l.tokenizeCalls++
	l.mu.Unlock()
	if l.tokenErr != nil {
		return nil, l.tokenErr
	}
	return l.token, nil
}

func (l *fakeLibrary) ApplePay(WalletConfig) (WalletPayment, error) {
	if l.applePayErr != nil {
		return nil, l.applePayErr
	}
	if l.applePay == nil {
		return nil, errors.New("apple pay not supported")
	}
	return l.applePay, nil
}

func (l *fakeLibrary) GooglePay(WalletConfig) (WalletPayment, error) {
	if l.googlePay == nil {
		return nil, errors.New("google pay not supported")
	}
	return l.googlePay, nil
}

func (l *fakeLibrary) HasApplePay() bool  { return l.applePay != nil }
func (l *fakeLibrary) HasGooglePay() bool { return l.googlePay != nil }

type fakeProvider struct {
	existing   Library
	fetched    Library
	fetchErr   error
	fetchCalls int
}

func (p *fakeProvider) Existing() (Library, bool) {
	return p.existing, p.existing != nil
}

func (p *fakeProvider) Fetch(context.Context) (Library, error) {
	p.fetchCalls++
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.fetched, nil
}
