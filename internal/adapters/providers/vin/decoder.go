package vin

import (
	"regexp"
	"strings"

	"github.com/recalibr/recalibr/backend/internal/domain/providers"
)

// vinShape is the basic 17-character plausibility check. I, O and Q are
// never valid VIN characters.
var vinShape = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// wmiBrands maps World Manufacturer Identifier prefixes to normalized
// brands. Three-character prefixes are consulted before two-character ones.
var wmiBrands = map[string]string{
	"JHM": "honda", "1HG": "honda", "2HG": "honda", "SHH": "honda",
	"19X": "honda", "5FN": "honda", "5J6": "honda", "7FA": "honda",
	"JH4": "acura", "19U": "acura", "5J8": "acura",
	"4T1": "toyota", "4T3": "toyota", "5TD": "toyota", "5TF": "toyota",
	"2T1": "toyota", "3TM": "toyota", "JTD": "toyota", "JTE": "toyota",
	"JTH": "lexus", "JTJ": "lexus", "2T2": "lexus", "5TG": "lexus",
	"JN1": "nissan", "JN8": "nissan", "1N4": "nissan", "1N6": "nissan",
	"5N1": "nissan", "3N1": "nissan",
	"JF1": "subaru", "JF2": "subaru", "4S3": "subaru", "4S4": "subaru",
	"1FA": "ford", "1FM": "ford", "1FT": "ford", "3FA": "ford", "1FD": "ford",
	"1G1": "chevrolet", "2G1": "chevrolet", "3G1": "chevrolet", "1GC": "chevrolet", "KL1": "chevrolet",
	"WBA": "bmw", "WBS": "bmw", "WBX": "bmw", "5UX": "bmw", "4US": "bmw",
	"WDB": "mercedes-benz", "WDC": "mercedes-benz", "WDD": "mercedes-benz",
	"W1K": "mercedes-benz", "W1N": "mercedes-benz", "4JG": "mercedes-benz",
	"WAU": "audi", "WA1": "audi", "TRU": "audi",
	"WVW": "volkswagen", "WVG": "volkswagen", "1VW": "volkswagen", "3VW": "volkswagen",
	"KMH": "hyundai", "KM8": "hyundai", "5NP": "hyundai", "5NM": "hyundai",
	"KNA": "kia", "KND": "kia", "5XY": "kia", "5XX": "kia", "3KP": "kia",
	"JM1": "mazda", "JM3": "mazda", "3MZ": "mazda", "4F2": "mazda",
	"5YJ": "tesla", "7SA": "tesla",
	"1C4": "jeep", "1C6": "ram", "1C3": "chrysler", "2C3": "chrysler", "2C4": "chrysler",
	"JT": "toyota",
	"JA": "mitsubishi",
}

// yearCodes maps the model-year character (position 10) to a year. Letter
// codes cover the 2010–2030 cycle, digit codes the 2001–2009 span; this is
// the window collision-repair estimates actually come from.
var yearCodes = map[byte]int{
	'A': 2010, 'B': 2011, 'C': 2012, 'D': 2013, 'E': 2014, 'F': 2015,
	'G': 2016, 'H': 2017, 'J': 2018, 'K': 2019, 'L': 2020, 'M': 2021,
	'N': 2022, 'P': 2023, 'R': 2024, 'S': 2025, 'T': 2026, 'V': 2027,
	'W': 2028, 'X': 2029, 'Y': 2030,
	'1': 2001, '2': 2002, '3': 2003, '4': 2004, '5': 2005, '6': 2006,
	'7': 2007, '8': 2008, '9': 2009,
}

// Decoder resolves brand and model year from a VIN via WMI prefix lookup.
type Decoder struct{}

// NewDecoder creates a new VIN decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode resolves the VIN. Malformed VINs and unknown manufacturers return
// ok=false; the engine treats them as absent identity, never an error.
func (d *Decoder) Decode(rawVIN string) (providers.DecodedVIN, bool) {
	vin := strings.ToUpper(strings.TrimSpace(rawVIN))
	if !vinShape.MatchString(vin) {
		return providers.DecodedVIN{}, false
	}

	brand, ok := wmiBrands[vin[:3]]
	if !ok {
		brand, ok = wmiBrands[vin[:2]]
	}
	if !ok {
		return providers.DecodedVIN{}, false
	}

	year, ok := yearCodes[vin[9]]
	if !ok {
		return providers.DecodedVIN{}, false
	}

	return providers.DecodedVIN{Brand: brand, ModelYear: year}, true
}
