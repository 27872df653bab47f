package model

// Country is a supported country for SIM unlock and payment methods.
type Country struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PhoneCode string `json:"phone_code"`
}

// Carrier is a mobile network operator. Carriers are the pricing dimension
// for the SIM unlock service and exist nowhere else in pricing.
type Carrier struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
}

// The carrier catalog is fixed: carriers are not admin-editable, only their
// per-model prices are.
var countries = []Country{
	{ID: "ar", Name: "Argentina", PhoneCode: "+54"},
	{ID: "us", Name: "Estados Unidos", PhoneCode: "+1"},
	{ID: "mx", Name: "México", PhoneCode: "+52"},
	{ID: "global", Name: "Global", PhoneCode: ""},
}

var carriers = []Carrier{
	{ID: "ar-movistar", Name: "Movistar", CountryID: "ar"},
	{ID: "ar-claro", Name: "Claro", CountryID: "ar"},
	{ID: "ar-personal", Name: "Personal", CountryID: "ar"},
	{ID: "us-att", Name: "AT&T", CountryID: "us"},
	{ID: "us-tmobile", Name: "T-Mobile", CountryID: "us"},
	{ID: "us-verizon", Name: "Verizon", CountryID: "us"},
	{ID: "mx-telcel", Name: "Telcel", CountryID: "mx"},
	{ID: "mx-movistar", Name: "Movistar", CountryID: "mx"},
}

// Countries returns the supported countries in display order.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// Carriers returns all known carriers in display order.
func Carriers() []Carrier {
	out := make([]Carrier, len(carriers))
	copy(out, carriers)
	return out
}

// CarrierByID returns the carrier with the given id, or nil.
func CarrierByID(id string) *Carrier {
	for i := range carriers {
		if carriers[i].ID == id {
			return &carriers[i]
		}
	}
	return nil
}

// CountryByID returns the country with the given id, or nil.
func CountryByID(id string) *Country {
	for i := range countries {
		if countries[i].ID == id {
			return &countries[i]
		}
	}
	return nil
}
