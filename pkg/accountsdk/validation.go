package accountsdk

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinPasswordLength is the shortest password the service accepts.
const MinPasswordLength = 8

var (
	emailRules = []validation.Rule{
		validation.Required.Error("Email is required"),
		is.Email.Error("Invalid email format"),
	}
	passwordRules = []validation.Rule{
		validation.Required.Error("Password is required"),
		validation.Length(MinPasswordLength, 0).Error("Password must be at least 8 characters"),
	}
	fullNameRules = []validation.Rule{
		validation.Required.Error("Full name is required"),
	}
)

// Validate checks the request fields. Returns a map of field names to
// error messages, or nil if all fields are valid. Phone and role are
// checked by the service.
func (r RegisterRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.Password, passwordRules...),
		validation.Field(&r.FullName, fullNameRules...),
	))
}

func (r LoginRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	))
}

func (r ForgotPasswordRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules...),
	))
}

func (r ResetPasswordRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required.Error("Token is required")),
		validation.Field(&r.NewPassword,
			validation.Required.Error("New password is required"),
			validation.Length(MinPasswordLength, 0).Error("Password must be at least 8 characters"),
		),
	))
}

func (r ChangePasswordRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required.Error("Current password is required")),
		validation.Field(&r.NewPassword,
			validation.Required.Error("New password is required"),
			validation.Length(MinPasswordLength, 0).Error("Password must be at least 8 characters"),
		),
	))
}

func (r UpdateProfileRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.FullName, fullNameRules...),
	))
}

func (r MerchantRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.BusinessName, validation.Required.Error("Business name is required")),
	))
}

// fieldErrors flattens ozzo's per-field errors into the envelope's fields map.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return map[string]string{"request": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for field, fe := range errs {
		if fe != nil {
			out[field] = fe.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
