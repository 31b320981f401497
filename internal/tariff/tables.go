package tariff

// Rule tables for the estimator. Countries are ISO-2 codes; rates are
// fractions. Missing entries resolve through documented fallbacks rather
// than errors.

// CategoryClothing is the default goods category and the fallback VAT
// table when a requested category is unknown.
const CategoryClothing = "clothing"

// defaultVATRate applies when a country is absent from the category's
// VAT table.
const defaultVATRate = 0.10

// defaultProcessingFee applies when a country has no fee entry.
const defaultProcessingFee = 10

// dutyFreeThresholds holds the maximum declared value below which no
// import tax is charged. Countries without an entry are never duty-free.
var dutyFreeThresholds = map[string]float64{
	"US": 800,
	"CN": 1000,
	"GB": 135,
	"DE": 150,
	"FR": 150,
	"JP": 10000,
	"AU": 1000,
	"CA": 20,
}

// vatRatesByCategory maps category → country → VAT rate.
var vatRatesByCategory = map[string]map[string]float64{
	"clothing": {
		"US": 0.00,
		"CN": 0.13,
		"GB": 0.20,
		"DE": 0.19,
		"FR": 0.20,
		"IT": 0.22,
		"ES": 0.21,
		"JP": 0.10,
		"AU": 0.10,
		"CA": 0.05,
		"MX": 0.16,
		"BR": 0.17,
		"IN": 0.18,
		"KR": 0.10,
		"SG": 0.07,
		"AE": 0.05,
	},
	"electronics": {
		"US": 0.00,
		"CN": 0.13,
		"GB": 0.20,
		"DE": 0.19,
		"JP": 0.10,
	},
	"books": {
		"US": 0.00,
		"CN": 0.00,
		"GB": 0.00,
		"DE": 0.07,
		"FR": 0.055,
	},
}

// dutyRates maps country → category → customs duty rate. Unknown
// countries fall back to the generic EU bucket; unknown categories to 0.
var dutyRates = map[string]map[string]float64{
	"US": {
		"clothing":    0.00,
		"electronics": 0.00,
		"books":       0.00,
	},
	"CN": {
		"clothing":    0.00,
		"electronics": 0.00,
		"books":       0.00,
	},
	"GB": {
		"clothing":    0.00,
		"electronics": 0.00,
		"books":       0.00,
	},
	"EU": {
		"clothing":    0.12,
		"electronics": 0.00,
		"books":       0.00,
	},
}

// processingFees is a flat per-country customs handling fee in USD.
var processingFees = map[string]float64{
	"US": 0,
	"CN": 10,
	"GB": 8,
	"DE": 10,
	"FR": 10,
	"JP": 5,
	"AU": 15,
	"CA": 5,
}

// customsDeclarationCountries always require a customs declaration form.
var customsDeclarationCountries = map[string]bool{
	"CN": true,
	"RU": true,
	"BR": true,
	"IN": true,
}

// importDeclarationCountries require an import declaration for high-value
// shipments.
var importDeclarationCountries = map[string]bool{
	"AU": true,
	"NZ": true,
}

var tariffNotes = map[string]string{
	"US": "US imports under $800 are duty-free. Your order may be subject to state sales tax upon delivery.",
	"CN": "Imports to China are subject to 13% VAT. Clothing items typically have no additional duty.",
	"GB": "UK imports are subject to 20% VAT. Additional duty may apply for certain categories.",
	"DE": "German imports are subject to 19% VAT. Clothing may have additional 12% duty.",
	"FR": "French imports are subject to 20% VAT. Additional duty may apply.",
	"JP": "Japanese imports are subject to 10% consumption tax.",
	"AU": "Australian imports over AUD$1000 are subject to 10% GST.",
	"CA": "Canadian imports are subject to 5% GST plus provincial taxes.",
}

const genericNote = "Import duties and taxes may apply. The final amount will be determined by customs."

const dutyFreeNote = "Your order is below the duty-free threshold. No import taxes will be charged."

// Categories returns the known goods categories.
func Categories() []string {
	return []string{"clothing", "electronics", "books"}
}

// Thresholds returns the duty-free threshold table.
func Thresholds() map[string]float64 {
	out := make(map[string]float64, len(dutyFreeThresholds))
	for k, v := range dutyFreeThresholds {
		out[k] = v
	}
	return out
}

// VATRates returns the VAT table for a category, falling back to the
// clothing table for unknown categories.
func VATRates(category string) map[string]float64 {
	table, ok := vatRatesByCategory[category]
	if !ok {
		table = vatRatesByCategory[CategoryClothing]
	}
	out := make(map[string]float64, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}
