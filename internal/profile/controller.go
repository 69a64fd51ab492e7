// Package profile drives viewing and editing the user's health profile.
//
// The controller owns the committed profile, the edit draft and its field
// errors. Network calls run without holding the controller lock so Cancel
// stays available while a submit is in flight.
package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/biometrics"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/remote"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/session"
)

type State int

const (
	StateLoading State = iota
	StateViewing
	StateEditing
	StateUnauthenticated
	StateLoadError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoadError:
		return "load_error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrNotViewing     = errors.New("profile is not being viewed")
	ErrNotEditing     = errors.New("profile is not being edited")
	ErrSubmitInFlight = errors.New("profile update already in progress")
)

type Snapshot struct {
	State      State
	Profile    model.Profile
	HasProfile bool
	// Metrics is derived from the committed profile on every snapshot.
	Metrics     biometrics.Metrics
	Draft       biometrics.Draft
	FieldErrors biometrics.FieldErrors
	Notice      error
	Submitting  bool
}

type Controller struct {
	gate   *session.Gate
	repo   remote.ProfileRepository
	policy biometrics.Policy

	mu         sync.Mutex
	state      State
	profile    model.Profile
	hasProfile bool
	draft      biometrics.Draft
	fieldErrs  biometrics.FieldErrors
	notice     error
	submitting bool
	// editSeq changes whenever an edit session starts or ends.
	editSeq uint64
}

func New(gate *session.Gate, repo remote.ProfileRepository, policy biometrics.Policy) *Controller {
	return &Controller{gate: gate, repo: repo, policy: policy, state: StateLoading}
}

// Load fetches the committed profile. A missing or rejected token moves the
// controller to Unauthenticated and returns session.ErrLoginRequired; any
// other failure moves it to LoadError.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.notice = nil
	token, err := c.gate.RequireToken()
	if err != nil {
		c.enterUnauthenticated()
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	p, err := c.repo.FetchProfile(ctx, token)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if checked := c.gate.Check(ctx, err); errors.Is(checked, session.ErrLoginRequired) {
			c.enterUnauthenticated()
			return checked
		}
		c.state = StateLoadError
		c.notice = err
		return err
	}
	c.profile = p
	c.hasProfile = true
	c.state = StateViewing
	return nil
}

func (c *Controller) BeginEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitInFlight
	}
	if c.state != StateViewing {
		return ErrNotViewing
	}
	c.draft = biometrics.DraftFromProfile(c.profile)
	c.fieldErrs = nil
	c.notice = nil
	c.state = StateEditing
	c.editSeq++
	return nil
}

// SetField replaces one draft field and clears its previous error. The draft
// is frozen while a submit is in flight.
func (c *Controller) SetField(f biometrics.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitInFlight
	}
	if c.state != StateEditing {
		return ErrNotEditing
	}
	if err := c.draft.Set(f, value); err != nil {
		return err
	}
	delete(c.fieldErrs, f)
	return nil
}

func (c *Controller) SetDraft(d biometrics.Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitInFlight
	}
	if c.state != StateEditing {
		return ErrNotEditing
	}
	d.Email = c.profile.Email
	c.draft = d
	c.fieldErrs = nil
	return nil
}

// Cancel discards the draft and returns to Viewing without any I/O. An
// in-flight submit keeps running but its failure no longer touches the view.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEditing {
		return ErrNotEditing
	}
	c.draft = biometrics.Draft{}
	c.fieldErrs = nil
	c.notice = nil
	c.state = StateViewing
	c.editSeq++
	return nil
}

// Submit validates the draft and, when valid, sends only the changed fields.
// Validation failures stay in the snapshot and Submit returns nil. After a
// successful update the profile is reloaded from the server.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if c.state != StateEditing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	candidate, errs := biometrics.Validate(c.draft, c.policy)
	if errs != nil {
		c.fieldErrs = errs
		c.notice = nil
		c.mu.Unlock()
		return nil
	}
	c.fieldErrs = nil
	patch := model.DiffProfile(c.profile, candidate)
	if patch.Empty() {
		c.draft = biometrics.Draft{}
		c.notice = nil
		c.state = StateViewing
		c.editSeq++
		c.mu.Unlock()
		return nil
	}
	token, err := c.gate.RequireToken()
	if err != nil {
		c.enterUnauthenticated()
		c.mu.Unlock()
		return err
	}
	c.submitting = true
	seq := c.editSeq
	c.mu.Unlock()

	_, err = c.repo.UpdateProfile(ctx, token, patch)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		defer c.mu.Unlock()
		if checked := c.gate.Check(ctx, err); errors.Is(checked, session.ErrLoginRequired) {
			c.enterUnauthenticated()
			return checked
		}
		if c.editSeq != seq {
			return err
		}
		var verr *remote.ValidationError
		if errors.As(err, &verr) {
			c.fieldErrs = serverFieldErrors(verr)
			if len(c.fieldErrs) == 0 {
				c.notice = err
			}
			return nil
		}
		c.notice = err
		return err
	}
	c.mu.Unlock()

	return c.Load(ctx)
}

func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enterUnauthenticated()
	return c.gate.Clear(ctx)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		State:      c.state,
		Profile:    c.profile,
		HasProfile: c.hasProfile,
		Draft:      c.draft,
		Notice:     c.notice,
		Submitting: c.submitting,
	}
	if c.hasProfile {
		s.Metrics = biometrics.Derive(c.profile)
	}
	if len(c.fieldErrs) > 0 {
		s.FieldErrors = make(biometrics.FieldErrors, len(c.fieldErrs))
		for f, e := range c.fieldErrs {
			s.FieldErrors[f] = e
		}
	}
	return s
}

// enterUnauthenticated drops everything tied to the session. Callers hold mu.
func (c *Controller) enterUnauthenticated() {
	c.state = StateUnauthenticated
	c.profile = model.Profile{}
	c.hasProfile = false
	c.draft = biometrics.Draft{}
	c.fieldErrs = nil
	c.notice = nil
	c.editSeq++
}

func serverFieldErrors(verr *remote.ValidationError) biometrics.FieldErrors {
	if len(verr.Fields) == 0 {
		return nil
	}
	out := make(biometrics.FieldErrors, len(verr.Fields))
	for name, msg := range verr.Fields {
		f, err := biometrics.ParseField(name)
		if err != nil {
			f = biometrics.Field(name)
		}
		out[f] = biometrics.FieldError{Rule: biometrics.RuleRejected, Message: msg}
	}
	return out
}
