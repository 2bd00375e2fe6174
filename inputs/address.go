package inputs

import (
	"github.com/finbridge/merchant/secure"
	"github.com/finbridge/merchant/types"
)

// Address is the input shape for a postal address.
type Address struct {
	CountryCode string `validate:"required"`
	City        string `validate:"required"`
	PostalCode  string `validate:"required"`
	Line        string `validate:"required"`
}

// Convert validates the input and wraps the protected fields. On any
// failure every already-wrapped value is destroyed before returning.
func (in Address) Convert() (types.Address, error) {
	if err := validate.Struct(in); err != nil {
		return types.Address{}, convErr("Address", err)
	}
	country, err := types.ParseCountryCode(in.CountryCode)
	if err != nil {
		return types.Address{}, err
	}
	city, err := secure.NewCity(in.City)
	if err != nil {
		return types.Address{}, err
	}
	postal, err := secure.NewPostalCode(in.PostalCode)
	if err != nil {
		city.Destroy()
		return types.Address{}, err
	}
	line, err := secure.NewStreetAddress(in.Line)
	if err != nil {
		city.Destroy()
		postal.Destroy()
		return types.Address{}, err
	}
	return types.Address{
		Country:    country,
		City:       city,
		PostalCode: postal,
		Line:       line,
	}, nil
}
