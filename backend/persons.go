package backend

import (
	"context"
	"fmt"
	"net/http"

	"relocation-admin-api/models"
)

// PersonPayload is the body of person create/update requests.
type PersonPayload struct {
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phoneNumber"`
	Address     string            `json:"address"`
	PersonRole  models.PersonRole `json:"personRole"`
}

// PersonsByRole fetches active persons with the given role.
func (c *Client) PersonsByRole(ctx context.Context, role models.PersonRole) ([]models.Person, error) {
	var persons []models.Person
	path := "/api/persons/by-role/" + string(role)
	if err := c.do(ctx, http.MethodGet, path, nil, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// ArchivedCustomers fetches soft-deleted customers only.
func (c *Client) ArchivedCustomers(ctx context.Context) ([]models.Person, error) {
	var persons []models.Person
	if err := c.do(ctx, http.MethodGet, "/api/persons/by-role/CUSTOMER/archived", nil, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// CreatePerson creates a person and returns it with its backend-assigned id.
func (c *Client) CreatePerson(ctx context.Context, payload PersonPayload) (*models.Person, error) {
	var person models.Person
	if err := c.do(ctx, http.MethodPost, "/api/persons", payload, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// UpdatePerson replaces a person's editable fields.
func (c *Client) UpdatePerson(ctx context.Context, id int, payload PersonPayload) (*models.Person, error) {
	var person models.Person
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/persons/%d", id), payload, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// PatchPerson applies a partial update, e.g. {"archived": true}.
func (c *Client) PatchPerson(ctx context.Context, id int, fields map[string]interface{}) (*models.Person, error) {
	var person models.Person
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/persons/%d", id), fields, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// SetArchived archives or restores a customer through a partial update.
func (c *Client) SetArchived(ctx context.Context, id int, archived bool) (*models.Person, error) {
	return c.PatchPerson(ctx, id, map[string]interface{}{"archived": archived})
}

// Login checks credentials against the backend and returns the person on
// success; a non-2xx status comes back as an *APIError.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Person, error) {
	body := map[string]string{"email": email, "password": password}
	var person models.Person
	if err := c.do(ctx, http.MethodPost, "/api/persons/login", body, &person); err != nil {
		return nil, err
	}
	return &person, nil
}
