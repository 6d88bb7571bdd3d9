package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// loginRequest mirrors the browser login form. Cancel carries the form's
// cancel signal; it short-circuits the flow before any legacy call.
type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Cancel   bool   `json:"cancel"   form:"cancel"`
}

type loginResponse struct {
	Status   string            `json:"status"`
	Token    string            `json:"token,omitempty"`
	Identity *identityResponse `json:"identity,omitempty"`
}

type registerRequest struct {
	Email     string `json:"email"      form:"email"      validate:"required,email"`
	Password  string `json:"password"   form:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name"  form:"last_name"  validate:"required"`
}

// identityResponse is the transport view of a local identity. It is
// intentionally separate from the domain type so the JSON contract is not
// coupled to internal changes.
type identityResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	CRMCustomerID      string    `json:"crm_customer_id,omitempty"`
	CRMCustomerAddress string    `json:"crm_customer_address,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
