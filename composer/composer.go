// Package composer implements the staged order composition flow: an
// in-memory draft accumulating zero or more service items, an exclusive
// choice between an existing customer and an inline new-customer form, and
// a single submission step that persists everything through the backend.
package composer

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"relocation-admin-api/backend"
	"relocation-admin-api/models"
)

var (
	// Mirrors the client-side format checks: RFC-simple email, digits-only
	// phone with an optional leading +.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d+$`)
)

// ValidPhone reports whether s matches the dashboard's phone format:
// digits only, optional leading +.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// FieldError is a validation failure attributable to one named field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// State is the composition flow's position in its lifecycle.
type State string

const (
	StateIdle       State = "IDLE"
	StateItemStaged State = "ITEM_STAGED"
	StateSubmitting State = "SUBMITTING"
	StateSubmitted  State = "SUBMITTED"
	StateFailed     State = "FAILED"
)

// ItemDraft is one service item being configured or already staged.
type ItemDraft struct {
	ServiceType models.ServiceType `json:"serviceType"`
	FromAddress string             `json:"fromAddress"`
	ToAddress   string             `json:"toAddress"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Note        string             `json:"note"`
}

// CustomerDraft is the inline new-customer form.
type CustomerDraft struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// Submitter is the slice of the backend client the flow needs.
type Submitter interface {
	CreatePerson(ctx context.Context, payload backend.PersonPayload) (*models.Person, error)
	CreateOrder(ctx context.Context, payload backend.OrderPayload) (*models.Order, error)
}

// Draft is one in-flight order composition. Not safe for concurrent use;
// one draft belongs to one user editing in one place.
type Draft struct {
	current       ItemDraft
	staged        []ItemDraft
	customerID    int
	newCustomer   bool
	customerDraft CustomerDraft
	consultantID  int
	parentOrderID *int
	state         State
	lastErr       error
}

// New returns an empty draft in the Idle state.
func New() *Draft {
	return &Draft{state: StateIdle}
}

// State reports where the flow currently is.
func (d *Draft) State() State {
	return d.state
}

// Err returns the failure that put the flow into StateFailed, if any.
func (d *Draft) Err() error {
	return d.lastErr
}

// CurrentItem returns a copy of the item being configured.
func (d *Draft) CurrentItem() ItemDraft {
	return d.current
}

// StagedItems returns a copy of the staged list.
func (d *Draft) StagedItems() []ItemDraft {
	out := make([]ItemDraft, len(d.staged))
	copy(out, d.staged)
	return out
}

// SetServiceType updates the in-progress item's service type.
func (d *Draft) SetServiceType(t models.ServiceType) {
	d.current.ServiceType = t
}

// SetFromAddress updates the in-progress item's starting address.
func (d *Draft) SetFromAddress(addr string) {
	d.current.FromAddress = addr
}

// SetToAddress updates the in-progress item's destination.
func (d *Draft) SetToAddress(addr string) {
	d.current.ToAddress = addr
}

// SetNote updates the in-progress item's note.
func (d *Draft) SetNote(note string) {
	d.current.Note = note
}

// SetStartDate updates the start date. Moving it past the current end date
// pulls the end date forward to match; the end date is never left behind.
func (d *Draft) SetStartDate(date string) {
	d.current.StartDate = date
	if d.current.EndDate != "" && date > d.current.EndDate {
		d.current.EndDate = date
	}
}

// SetEndDate updates the end date. An end date before the start date is
// rejected, matching the input constraint on the form.
func (d *Draft) SetEndDate(date string) error {
	if d.current.StartDate != "" && date < d.current.StartDate {
		return &FieldError{Field: "endDate", Reason: "must not be before the start date"}
	}
	d.current.EndDate = date
	return nil
}

// AddItem validates the in-progress item, appends a copy to the staged list
// and clears the draft for the next item. On validation failure nothing
// transitions.
func (d *Draft) AddItem() error {
	if d.current.ServiceType == "" {
		return &FieldError{Field: "serviceType", Reason: "is required to add a service"}
	}
	if !d.current.ServiceType.Valid() {
		return &FieldError{Field: "serviceType", Reason: "unknown service type " + string(d.current.ServiceType)}
	}
	if d.current.StartDate == "" {
		return &FieldError{Field: "startDate", Reason: "is required to add a service"}
	}
	if d.current.EndDate == "" {
		return &FieldError{Field: "endDate", Reason: "is required to add a service"}
	}
	if strings.TrimSpace(d.current.FromAddress) == "" {
		return &FieldError{Field: "fromAddress", Reason: "is required to add a service"}
	}
	d.staged = append(d.staged, d.current)
	d.current = ItemDraft{}
	d.state = StateItemStaged
	return nil
}

// RemoveItem drops one staged item. Lower stakes than deleting a persisted
// order, so no confirmation step.
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.staged) {
		return errors.Errorf("no staged item at index %d", index)
	}
	d.staged = append(d.staged[:index], d.staged[index+1:]...)
	if len(d.staged) == 0 && d.state == StateItemStaged {
		d.state = StateIdle
	}
	return nil
}

// SelectCustomer picks an existing customer and leaves new-customer mode.
func (d *Draft) SelectCustomer(id int) {
	d.customerID = id
	d.newCustomer = false
}

// BeginNewCustomer switches to inline customer creation, clearing any
// previously selected customer. The two modes are mutually exclusive.
func (d *Draft) BeginNewCustomer() {
	d.newCustomer = true
	d.customerID = 0
}

// SetCustomerDraft replaces the new-customer form contents.
func (d *Draft) SetCustomerDraft(c CustomerDraft) {
	d.customerDraft = c
}

// SelectConsultant assigns the consultant who will own the order.
func (d *Draft) SelectConsultant(id int) {
	d.consultantID = id
}

// SetParentOrder links the composed order to an existing moving order.
func (d *Draft) SetParentOrder(id int) {
	d.parentOrderID = &id
}

// ClearParentOrder removes the parent linkage.
func (d *Draft) ClearParentOrder() {
	d.parentOrderID = nil
}

func validateCustomerDraft(c CustomerDraft) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return &FieldError{Field: "firstName", Reason: "is required"}
	}
	if strings.TrimSpace(c.LastName) == "" {
		return &FieldError{Field: "lastName", Reason: "is required"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		return &FieldError{Field: "email", Reason: "a valid email address is required"}
	}
	if !phonePattern.MatchString(strings.TrimSpace(c.PhoneNumber)) {
		return &FieldError{Field: "phoneNumber", Reason: "only digits and an optional leading + are allowed"}
	}
	if strings.TrimSpace(c.Address) == "" {
		return &FieldError{Field: "address", Reason: "is required"}
	}
	return nil
}

// validate runs every pre-network check; no request is issued unless all
// of them pass.
func (d *Draft) validate() error {
	if d.newCustomer {
		if err := validateCustomerDraft(d.customerDraft); err != nil {
			return err
		}
	} else if d.customerID == 0 {
		return &FieldError{Field: "customer", Reason: "a customer must be selected"}
	}
	if len(d.staged) == 0 {
		return &FieldError{Field: "items", Reason: "at least one service must be added to the order"}
	}
	if d.consultantID == 0 {
		return &FieldError{Field: "consultant", Reason: "a consultant must be assigned"}
	}
	return nil
}

// Submit validates the whole draft and persists it: in new-customer mode the
// person is created first and the order then references its id. Any failing
// step aborts the flow, records the reason and leaves the staged state
// intact for retry. A submission already in flight is rejected rather than
// duplicated.
func (d *Draft) Submit(ctx context.Context, api Submitter) (*models.Order, error) {
	if d.state == StateSubmitting {
		return nil, errors.New("submission already in progress")
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	d.state = StateSubmitting

	customerID := d.customerID
	if d.newCustomer {
		person, err := api.CreatePerson(ctx, backend.PersonPayload{
			FirstName:   strings.TrimSpace(d.customerDraft.FirstName),
			LastName:    strings.TrimSpace(d.customerDraft.LastName),
			Email:       strings.TrimSpace(d.customerDraft.Email),
			PhoneNumber: strings.TrimSpace(d.customerDraft.PhoneNumber),
			Address:     strings.TrimSpace(d.customerDraft.Address),
			PersonRole:  models.RoleCustomer,
		})
		if err != nil {
			d.fail(err)
			return nil, errors.Wrap(err, "create new customer")
		}
		customerID = person.ID
	}

	payload := backend.OrderPayload{
		CustomerID:    customerID,
		ConsultantID:  d.consultantID,
		Status:        models.StatusPending,
		ParentOrderID: d.parentOrderID,
		Items:         make([]backend.ItemPayload, 0, len(d.staged)),
	}
	for _, item := range d.staged {
		payload.Items = append(payload.Items, backend.ItemPayload{
			ServiceType: item.ServiceType,
			Status:      models.StatusPending,
			FromAddress: item.FromAddress,
			ToAddress:   item.ToAddress,
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
			Note:        item.Note,
		})
	}

	order, err := api.CreateOrder(ctx, payload)
	if err != nil {
		// The backend is the source of truth for whether a customer record
		// was created by the earlier POST; the flow does not try to undo it.
		d.fail(err)
		return nil, errors.Wrap(err, "create order")
	}

	d.state = StateSubmitted
	d.lastErr = nil
	return order, nil
}

func (d *Draft) fail(err error) {
	d.state = StateFailed
	d.lastErr = err
}
