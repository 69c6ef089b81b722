package checkout

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"checkout-hub/internal/common/enum"
	"checkout-hub/internal/funnel/widget"
	"checkout-hub/internal/pkg/helper"
	"checkout-hub/internal/pkg/logger"
)

// SubmitState is where a checkout attempt currently stands.
type SubmitState int

const (
	StateIdle SubmitState = iota
	StateTokenizing
	StateAwaitingWallet
	StateSubmitting
	StateSucceeded
)

func (s SubmitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTokenizing:
		return "tokenizing"
	case StateAwaitingWallet:
		return "awaiting_wallet"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

var ErrBusy = errors.New("a submission is already in progress")

// Config wires an orchestrator to its capabilities.
type Config struct {
	Loader        *widget.Loader
	DOM           widget.DOM
	Platform      widget.Platform
	Quiz          QuizStore
	SessionID     string
	SelectedPrice string
	PlanLabel     string
	Country       string
	CheckoutURL   string
	HTTPClient    *http.Client
	OnSuccess     func()
}

// Orchestrator runs the checkout step for one funnel session: it loads
// the payment library, keeps exactly one payment method active, and
// drives tokens through the checkout backend.
type Orchestrator struct {
	loader    *widget.Loader
	dom       widget.DOM
	platform  widget.Platform
	quiz      QuizStore
	sessionID string
	planLabel string
	submitter *Submitter
	onSuccess func()

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	lib           widget.Library
	form          Form
	method        enum.PaymentMethodEnum
	selectedPrice string
	avail         widget.Availability
	card          *widget.CardFields
	wallets       map[enum.PaymentMethodEnum]*widget.WalletButton
	state         SubmitState
	loading       bool
	errMsg        string
	succeeded     bool
}

func New(cfg Config) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())

	return &Orchestrator{
		loader:        cfg.Loader,
		dom:           cfg.DOM,
		platform:      cfg.Platform,
		quiz:          cfg.Quiz,
		sessionID:     cfg.SessionID,
		planLabel:     cfg.PlanLabel,
		submitter:     NewSubmitter(cfg.CheckoutURL, cfg.HTTPClient),
		onSuccess:     cfg.OnSuccess,
		ctx:           ctx,
		cancel:        cancel,
		form:          Form{Country: cfg.Country},
		method:        enum.CARD,
		selectedPrice: cfg.SelectedPrice,
		wallets:       make(map[enum.PaymentMethodEnum]*widget.WalletButton),
		state:         StateIdle,
	}
}

// Start seeds the form from the quiz context, resolves the payment
// library and mounts the default card method.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.seedFromQuiz(ctx)

	lib, err := o.loader.Load(ctx)

	o.mu.Lock()
	if err != nil {
		o.errMsg = err.Error()
		o.mu.Unlock()
		return err
	}
	o.lib = lib
	o.avail = widget.DetectAvailability(lib, o.platform)
	o.mu.Unlock()

	return o.activateMethod(enum.CARD)
}

// SetForm replaces the editable billing form fields. The country stays
// as detected.
func (o *Orchestrator) SetForm(firstName, lastName, email string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.form.FirstName = firstName
	o.form.LastName = lastName
	o.form.Email = email
}

// SelectMethod switches the active payment method. The previous
// method's widgets are torn down before the new one initializes, and
// any standing error is cleared.
func (o *Orchestrator) SelectMethod(method enum.PaymentMethodEnum) error {
	if !method.IsValid() {
		return errors.New("unknown payment method")
	}

	o.mu.Lock()
	if o.loading {
		o.mu.Unlock()
		return ErrBusy
	}
	if method.IsWallet() && !o.walletAvailableLocked(method) {
		o.mu.Unlock()
		return errors.New(widget.WalletLabel(method) + " is not available on this device")
	}
	o.errMsg = ""
	o.method = method
	o.mu.Unlock()

	o.teardownWidgets()
	return o.activateMethod(method)
}

// Submit runs the in-process flow for the active method: card forms are
// tokenized through the library, wallet methods hand control to the
// platform sheet.
func (o *Orchestrator) Submit() error {
	o.mu.Lock()
	if o.loading || o.state == StateSubmitting || o.state == StateSucceeded {
		o.mu.Unlock()
		return ErrBusy
	}
	o.errMsg = ""

	if err := o.form.Validate(); err != nil {
		o.errMsg = err.Error()
		o.mu.Unlock()
		return err
	}

	method := o.method
	lib := o.lib
	form := o.form

	if method.IsWallet() {
		if _, ok := o.wallets[method]; !ok {
			err := errors.New(widget.WalletLabel(method) + " is not available on this device")
			o.errMsg = err.Error()
			o.mu.Unlock()
			return err
		}
		o.loading = true
		o.state = StateAwaitingWallet
		o.mu.Unlock()
		return nil
	}

	if lib == nil {
		err := errors.New("payment system is not initialized")
		o.errMsg = err.Error()
		o.mu.Unlock()
		return err
	}

	o.loading = true
	o.state = StateTokenizing
	o.mu.Unlock()

	token, err := lib.TokenizeForm(o.ctx, widget.BillingForm{
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		o.finishError("tokenization failed: " + err.Error())
		return err
	}

	return o.processToken(token)
}

// SubmitToken validates the form and processes a token produced
// elsewhere. This is the entry point for tokens delivered out of band.
func (o *Orchestrator) SubmitToken(token *widget.Token) error {
	o.mu.Lock()
	if o.loading || o.state == StateSubmitting || o.state == StateSucceeded {
		o.mu.Unlock()
		return ErrBusy
	}
	o.errMsg = ""

	if err := o.form.Validate(); err != nil {
		o.errMsg = err.Error()
		o.mu.Unlock()
		return err
	}
	o.loading = true
	o.state = StateSubmitting
	o.mu.Unlock()

	return o.processToken(token)
}

// Close cancels in-flight work and tears down every widget.
func (o *Orchestrator) Close() {
	o.cancel()
	o.teardownWidgets()
}

// Snapshot is a point-in-time view of the checkout step.
type Snapshot struct {
	State        SubmitState
	Loading      bool
	Error        string
	Method       enum.PaymentMethodEnum
	Availability widget.Availability
	Country      string
	Price        string
	CardMounted  bool
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Snapshot{
		State:        o.state,
		Loading:      o.loading,
		Error:        o.errMsg,
		Method:       o.method,
		Availability: o.avail,
		Country:      o.form.Country,
		Price:        o.selectedPrice,
	}
	if o.card != nil {
		s.CardMounted = o.card.Mounted()
	}
	return s
}

func (o *Orchestrator) seedFromQuiz(ctx context.Context) {
	if o.quiz == nil || o.sessionID == "" {
		return
	}

	data, err := o.quiz.Get(ctx, o.sessionID)
	if err != nil || data == nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	first, last := SplitName(data.Name)
	if o.form.FirstName == "" {
		o.form.FirstName = first
		o.form.LastName = last
	}
	if o.form.Email == "" {
		o.form.Email = data.Email
	}
	if o.selectedPrice == "" {
		o.selectedPrice = data.SelectedPrice
	}
}

func (o *Orchestrator) activateMethod(method enum.PaymentMethodEnum) error {
	o.mu.Lock()
	lib := o.lib
	o.mu.Unlock()

	if lib == nil {
		return errors.New("payment system is not initialized")
	}

	if method == enum.CARD {
		card := widget.NewCardFields(lib, o.dom)
		if err := card.Mount(); err != nil {
			o.setError(err.Error())
			return err
		}
		o.mu.Lock()
		o.card = card
		o.mu.Unlock()
		return nil
	}

	button, err := widget.NewWalletButton(lib, method, o.walletConfig(), o.dom, widget.WalletHooks{
		OnToken: func(token *widget.Token) {
			if err := o.processToken(token); err != nil {
				logger.Warning.Printf("wallet token: %v", err)
			}
		},
		OnError: o.setErrorIdle,
		OnUnavailable: func() {
			o.mu.Lock()
			if method == enum.APPLEPAY {
				o.avail.ApplePay = false
			} else {
				o.avail.GooglePay = false
			}
			o.mu.Unlock()
		},
	})
	if err != nil {
		o.setError(err.Error())
		return err
	}

	o.mu.Lock()
	o.wallets[method] = button
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) walletConfig() widget.WalletConfig {
	o.mu.Lock()
	defer o.mu.Unlock()

	return widget.WalletConfig{
		Country:  o.form.Country,
		Currency: "USD",
		Total:    helper.FloatToAmount(helper.PriceStringToFloat(o.selectedPrice)),
		Label:    o.planLabel,
	}
}

// processToken is the single path every token takes to the checkout
// backend, whatever method produced it.
func (o *Orchestrator) processToken(token *widget.Token) error {
	if token == nil || token.ID == "" {
		err := errors.New("payment token was not generated")
		o.finishError(err.Error())
		return err
	}

	o.mu.Lock()
	o.state = StateSubmitting
	o.loading = true
	req := &SubmitRequest{
		TokenID:       token.ID,
		CustomerEmail: strings.TrimSpace(o.form.Email),
		CustomerName:  o.form.FullName(),
		TrialAmount:   helper.PriceStringToFloat(o.selectedPrice),
		TrialDays:     TrialDays,
	}
	o.mu.Unlock()

	if err := o.submitter.Submit(o.ctx, req); err != nil {
		o.finishError(err.Error())
		return err
	}

	o.saveQuizContext(req)

	o.mu.Lock()
	o.state = StateSucceeded
	o.loading = false
	fire := !o.succeeded && o.onSuccess != nil
	o.succeeded = true
	o.mu.Unlock()

	if fire {
		o.onSuccess()
	}
	return nil
}

// saveQuizContext records what checkout actually submitted, so later
// funnel steps see the final values. Failures only log.
func (o *Orchestrator) saveQuizContext(req *SubmitRequest) {
	if o.quiz == nil || o.sessionID == "" {
		return
	}

	o.mu.Lock()
	data := &QuizData{
		Name:          req.CustomerName,
		Email:         req.CustomerEmail,
		SelectedPrice: o.selectedPrice,
	}
	o.mu.Unlock()

	if err := o.quiz.Save(o.ctx, o.sessionID, data); err != nil {
		logger.Warning.Printf("quiz context save: %v", err)
	}
}

func (o *Orchestrator) teardownWidgets() {
	o.mu.Lock()
	card := o.card
	o.card = nil
	wallets := o.wallets
	o.wallets = make(map[enum.PaymentMethodEnum]*widget.WalletButton)
	o.mu.Unlock()

	if card != nil {
		card.Destroy()
	}
	for _, w := range wallets {
		w.Destroy()
	}
}

func (o *Orchestrator) walletAvailableLocked(method enum.PaymentMethodEnum) bool {
	if method == enum.APPLEPAY {
		return o.avail.ApplePay
	}
	return o.avail.GooglePay
}

func (o *Orchestrator) setError(message string) {
	o.mu.Lock()
	o.errMsg = message
	o.mu.Unlock()
}

func (o *Orchestrator) setErrorIdle(message string) {
	o.mu.Lock()
	o.errMsg = message
	o.loading = false
	o.state = StateIdle
	o.mu.Unlock()
}

func (o *Orchestrator) finishError(message string) {
	o.setErrorIdle(message)
}
