package usecasecontract

// IValidator validates user supplied values.
type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
	ValidateHTTPSURL(raw string) error
}
