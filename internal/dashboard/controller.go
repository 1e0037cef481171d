// Package dashboard holds the counter dashboard's state and actions: the
// loaded collection, the record form submit, delete and receipt printing.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/client"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/ledger"
	"github.com/sangkips/mobilehub-pos/internal/receipt"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
	"github.com/sangkips/mobilehub-pos/pkg/printer"
)

// ErrRequestInProgress is returned when a submit or delete is attempted
// while the previous one has not finished.
var ErrRequestInProgress = errors.New("a request is already in progress")

// RecordStore is the remote collection the dashboard works against
type RecordStore interface {
	List(ctx context.Context) ([]entity.Record, error)
	Create(ctx context.Context, rec *entity.Record, idempotencyKey string) (*entity.Record, error)
	Update(ctx context.Context, id uuid.UUID, rec *entity.Record) (*entity.Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Authenticator signs the operator in and out
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
	Logout()
}

// SessionState is the part of a session the guard needs
type SessionState interface {
	Authenticated() bool
}

// Guard refuses access to the dashboard without an active session
func Guard(session SessionState) error {
	if session == nil || !session.Authenticated() {
		return apperror.ErrUnauthorized
	}
	return nil
}

// Options configure a Controller
type Options struct {
	Validator ledger.Validator
	Basis     ledger.SalesBasis
	Receipt   receipt.Options
	Width     int
}

// Controller is the dashboard without its UI
type Controller struct {
	store    RecordStore
	auth     Authenticator
	session  SessionState
	notifier Notifier
	opts     Options
	now      func() time.Time

	mu       sync.RWMutex
	records  []entity.Record
	inFlight atomic.Bool
}

// NewController builds a controller. auth may be nil when login is handled
// elsewhere.
func NewController(store RecordStore, auth Authenticator, session SessionState, notifier Notifier, opts Options) *Controller {
	if notifier == nil {
		notifier = WriterNotifier{}
	}
	if opts.Width <= 0 {
		opts.Width = printer.Width58mm
	}
	return &Controller{
		store:    store,
		auth:     auth,
		session:  session,
		notifier: notifier,
		opts:     opts,
		now:      time.Now,
		records:  []entity.Record{},
	}
}

// Login signs in and loads the collection
func (c *Controller) Login(ctx context.Context, email, password string) error {
	if c.auth == nil {
		return apperror.ErrAuthFailure
	}
	if _, err := c.auth.Login(ctx, email, password); err != nil {
		c.notifier.Notify(LevelError, MsgLoginFailed)
		return err
	}
	c.notifier.Notify(LevelSuccess, MsgLoginSuccess)
	return c.Load(ctx)
}

// Logout ends the session and forgets the loaded collection
func (c *Controller) Logout() {
	if c.auth != nil {
		c.auth.Logout()
	}
	c.mu.Lock()
	c.records = []entity.Record{}
	c.mu.Unlock()
	c.notifier.Notify(LevelSuccess, MsgLoggedOut)
}

// Load replaces the collection with the store's. On failure the previous
// collection is kept.
func (c *Controller) Load(ctx context.Context) error {
	if err := Guard(c.session); err != nil {
		return err
	}
	records, err := c.store.List(ctx)
	if err != nil {
		c.notifier.Notify(LevelError, MsgLoadFailed)
		return err
	}
	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
	return nil
}

// Records returns a copy of the loaded collection
func (c *Controller) Records() []entity.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.Record(nil), c.records...)
}

// Search filters the loaded collection
func (c *Controller) Search(query string) []entity.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.records, query)
}

// Summary aggregates the loaded collection
func (c *Controller) Summary() ledger.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ledger.Summarize(c.records, c.opts.Basis)
}

// NewDraft returns an empty form: a Sale dated today with zero amounts
func (c *Controller) NewDraft() entity.Record {
	return ledger.NewDraft(c.now())
}

// Edit returns the stored record as a form draft
func (c *Controller) Edit(id uuid.UUID) (entity.Record, error) {
	rec, ok := c.find(id)
	if !ok {
		return entity.Record{}, apperror.NewNotFoundError("Record")
	}
	return rec, nil
}

// Submit saves draft, creating a record when editingID is uuid.Nil and
// updating that record otherwise. Invalid drafts are reported and never
// sent. A submit made while another is running returns ErrRequestInProgress.
func (c *Controller) Submit(ctx context.Context, draft entity.Record, editingID uuid.UUID) (*entity.Record, error) {
	if err := Guard(c.session); err != nil {
		return nil, err
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrRequestInProgress
	}
	defer c.inFlight.Store(false)

	rec := ledger.Recalculate(ledger.NormalizeRecord(draft))
	if err := c.opts.Validator.Validate(rec); err != nil {
		c.notifier.Notify(LevelError, apperror.GetAppError(err).Message)
		return nil, err
	}

	var (
		saved *entity.Record
		err   error
		msg   string
	)
	if editingID == uuid.Nil {
		rec.ID = uuid.Nil
		saved, err = c.store.Create(ctx, &rec, uuid.NewString())
		msg = MsgCreated
	} else {
		rec.ID = editingID
		saved, err = c.store.Update(ctx, editingID, &rec)
		msg = MsgUpdated
	}
	if err != nil {
		c.notifier.Notify(LevelError, MsgServerError)
		return nil, err
	}
	c.notifier.Notify(LevelSuccess, msg)

	// the saved record stands even if the reload fails; Load notifies
	_ = c.Load(ctx)
	return saved, nil
}

// Delete removes a record once confirm agrees. A missing or declined
// confirmation returns false without contacting the store, and a delete made
// while another mutation is running returns ErrRequestInProgress.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID, confirm func(question string) bool) (bool, error) {
	if err := Guard(c.session); err != nil {
		return false, err
	}
	if confirm == nil || !confirm(MsgDeleteQuestion) {
		return false, nil
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return false, ErrRequestInProgress
	}
	defer c.inFlight.Store(false)

	if err := c.store.Delete(ctx, id); err != nil {
		c.notifier.Notify(LevelError, MsgDeleteFailed)
		return false, err
	}
	c.notifier.Notify(LevelSuccess, MsgDeleted)
	_ = c.Load(ctx)
	return true, nil
}

// Receipt formats the receipt of a loaded record
func (c *Controller) Receipt(id uuid.UUID) (*entity.Receipt, error) {
	rec, ok := c.find(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Record")
	}
	return receipt.Format(rec, c.opts.Receipt), nil
}

// Print sends the receipt of a loaded record to sink
func (c *Controller) Print(ctx context.Context, id uuid.UUID, sink printer.Printer) (*entity.Receipt, error) {
	r, err := c.Receipt(id)
	if err != nil {
		return nil, err
	}
	if err := sink.Print(ctx, receipt.RenderESCPOS(r, c.opts.Width)); err != nil {
		return r, err
	}
	return r, nil
}

func (c *Controller) find(id uuid.UUID) (entity.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return entity.Record{}, false
}
