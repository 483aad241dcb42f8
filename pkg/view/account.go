package view

import "homura.shop/app/internal/storefront"

type LoginForm struct {
	Email       string
	ReturnTo    string
	Error       string
	FieldErrors map[string]string
}

type AccountPage struct {
	Customer storefront.Customer
}

// DisplayName falls back to the email when no name is set.
func (a AccountPage) DisplayName() string {
	name := a.Customer.FirstName
	if a.Customer.LastName != "" {
		if name != "" {
			name += " "
		}
		name += a.Customer.LastName
	}
	if name == "" {
		return a.Customer.Email
	}
	return name
}
