package order

import (
	"errors"
	"strings"
)

var (
	ErrInvalidEmail     = errors.New("invalid buyer email")
	ErrEmptyPhoneNumber = errors.New("phone number cannot be empty")
	ErrIncompletePickup = errors.New("pickup selection is incomplete")
)

type BuyerContact struct {
	email       string
	phoneNumber string
}

func NewBuyerContact(email, phoneNumber string) (BuyerContact, error) {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return BuyerContact{}, ErrInvalidEmail
	}
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return BuyerContact{}, ErrEmptyPhoneNumber
	}
	return BuyerContact{email: email, phoneNumber: phoneNumber}, nil
}

func (c BuyerContact) Email() string       { return c.email }
func (c BuyerContact) PhoneNumber() string { return c.phoneNumber }

// PickupSelection is the country/region/station triple chosen at checkout.
// Location lookup itself is an external concern; only completeness is
// validated here.
type PickupSelection struct {
	country string
	region  string
	station string
}

func NewPickupSelection(country, region, station string) (PickupSelection, error) {
	country = strings.TrimSpace(country)
	region = strings.TrimSpace(region)
	station = strings.TrimSpace(station)
	if country == "" || region == "" || station == "" {
		return PickupSelection{}, ErrIncompletePickup
	}
	return PickupSelection{country: country, region: region, station: station}, nil
}

func (p PickupSelection) Country() string { return p.country }
func (p PickupSelection) Region() string  { return p.region }
func (p PickupSelection) Station() string { return p.station }
