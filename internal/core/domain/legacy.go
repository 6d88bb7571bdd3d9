package domain

// LoginResult is the raw outcome of a login call against the legacy CRM.
// The client does not interpret the status; callers check it themselves.
type LoginResult struct {
	Status     int
	LoginToken string
}

// CustomerProfile is the raw outcome of a profile lookup against the legacy
// CRM, scoped to the customer the login token belongs to.
type CustomerProfile struct {
	Status    int
	FirstName string
	LastName  string
	Address   string
}
