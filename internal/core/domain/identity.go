package domain

import "time"

// Attribute keys mirrored from the legacy CRM onto local identities.
const (
	AttrCRMCustomerID      = "crmCustomerId"
	AttrCRMCustomerAddress = "crmCustomerAddress"
)

// Identity is a local user record in the gateway's own store. It is created
// either by registration or by the first successful migration login, and its
// two CRM attributes always reflect the most recent successful legacy lookup.
type Identity struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	PasswordHash       string    `json:"-"`
	CRMCustomerID      string    `json:"crm_customer_id,omitempty"`
	CRMCustomerAddress string    `json:"crm_customer_address,omitempty"`
	Enabled            bool      `json:"enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
