package domain

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// DefaultRegion is used when a request omits the region.
const DefaultRegion = "us-east-1"

var (
	// Canonical long-lived key: AKIA followed by 16 uppercase alphanumerics.
	canonicalAccessKeyRe = regexp.MustCompile(`^AKIA[A-Z0-9]{16}$`)
	genericAccessKeyRe   = regexp.MustCompile(`^[A-Z0-9]{20}$`)
	regionRe             = regexp.MustCompile(`^[a-z]{2}-[a-z]+-\d+$`)
)

// Credentials is a request-scoped credential descriptor. It lives for a
// single request: decoded from the payload, used to build one scoped vendor
// client, then discarded. It must never be persisted or logged.
type Credentials struct {
	AccessKeyID     string `json:"access_key_id"     validate:"required,access_key_id"`
	SecretAccessKey string `json:"secret_access_key" validate:"required,min=40,max=128"`
	Region          string `json:"region"            validate:"omitempty,aws_region"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("access_key_id", func(fl validator.FieldLevel) bool {
		key := fl.Field().String()
		if canonicalAccessKeyRe.MatchString(key) || genericAccessKeyRe.MatchString(key) {
			return true
		}
		// Temporary and session credentials use other prefixes; only the
		// length bound applies to them.
		return len(key) >= 16 && len(key) <= 32
	})
	_ = v.RegisterValidation("aws_region", func(fl validator.FieldLevel) bool {
		return regionRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks shape plausibility only. Correctness of the credentials is
// proven by a successful identity lookup, not here. No network call happens.
func (c Credentials) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Message: fieldMessage(fieldErrs[0])}
	}
	return &ValidationError{Message: err.Error()}
}

// WithDefaults fills in the default region when none was supplied.
func (c Credentials) WithDefaults() Credentials {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	return c
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "AccessKeyID":
		return "AWS Access Key ID must be between 16 and 32 characters"
	case "SecretAccessKey":
		if fe.Tag() == "max" {
			return "AWS Secret Access Key must not exceed 128 characters"
		}
		return "AWS Secret Access Key must be at least 40 characters long"
	case "Region":
		return "AWS Region must be in format like us-east-1, eu-west-1, etc."
	}
	return fe.Error()
}
