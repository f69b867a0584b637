package providers

// DecodedVIN is the narrow identity a VIN yields: manufacturer and model
// year. It asserts nothing about equipment.
type DecodedVIN struct {
	Brand     string
	ModelYear int
}

// VINDecoder resolves a 17-character VIN to brand and model year. VINs
// failing basic shape checks decode to ok=false, never an error.
type VINDecoder interface {
	Decode(vin string) (DecodedVIN, bool)
}
