// Package transport defines the data shapes exposed by the vehicle context.
package transport

// VehicleRecord is the normalized vehicle as stored in the wizard session.
// It is immutable once created; a new plate submission replaces it wholesale.
type VehicleRecord struct {
	LicensePlate  string  `json:"licensePlate"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Year          string  `json:"year"`
	Cylinders     int     `json:"cylinders"`
	OilCapacity   float64 `json:"oilCapacity"`
	APKExpiration string  `json:"apkExpiration,omitempty"`
}

// RegistryRecord is a single raw record from the RDW open-data registry.
// The Socrata API serializes every field as a string; absent fields are
// simply omitted from the JSON object.
type RegistryRecord struct {
	Kenteken             string `json:"kenteken"`
	Merk                 string `json:"merk"`
	Handelsbenaming      string `json:"handelsbenaming"`
	DatumEersteToelating string `json:"datum_eerste_toelating"`
	AantalCilinders      string `json:"aantal_cilinders"`
	VervaldatumAPK       string `json:"vervaldatum_apk"`
}
