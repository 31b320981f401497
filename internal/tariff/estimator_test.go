package tariff

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

func newTestEstimator() *Estimator {
	return NewEstimator(zap.NewNop())
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimate_Validation(t *testing.T) {
	e := newTestEstimator()

	tests := []struct {
		name string
		req  models.TariffRequest
	}{
		{"missing country", models.TariffRequest{Value: 100}},
		{"blank country", models.TariffRequest{Country: "  ", Value: 100}},
		{"zero value", models.TariffRequest{Country: "US", Value: 0}},
		{"negative value", models.TariffRequest{Country: "US", Value: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Estimate(tt.req)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !apperrors.IsValidation(err) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestEstimate_DutyFreeThresholdIsInclusive(t *testing.T) {
	e := newTestEstimator()

	atLimit, err := e.Estimate(models.TariffRequest{Country: "US", Value: 800})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !atLimit.IsDutyFree {
		t.Error("Expected value at threshold to be duty-free")
	}
	if atLimit.TotalTariff != 0 || atLimit.VATAmount != 0 || atLimit.DutyAmount != 0 {
		t.Errorf("Expected zero tariff amounts, got %+v", atLimit)
	}
	if !almostEqual(atLimit.TotalWithTariff, 800) {
		t.Errorf("Expected total 800, got %v", atLimit.TotalWithTariff)
	}

	overLimit, err := e.Estimate(models.TariffRequest{Country: "US", Value: 800.01})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if overLimit.IsDutyFree {
		t.Error("Expected value just over threshold to be taxable")
	}
	if overLimit.TotalTariff <= 0 {
		t.Errorf("Expected positive tariff over threshold, got %v", overLimit.TotalTariff)
	}
}

func TestEstimate_ZeroTableRateCoalescesToDefault(t *testing.T) {
	e := newTestEstimator()

	// The US clothing entry is 0.00; a zero rate coalesces to the 0.10
	// default rather than producing a free import above the threshold.
	est, err := e.Estimate(models.TariffRequest{Country: "US", Value: 1000})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !almostEqual(est.VATRate, 0.10) {
		t.Errorf("Expected default VAT rate 0.10, got %v", est.VATRate)
	}
	if !almostEqual(est.VATAmount, 100) {
		t.Errorf("Expected VAT 100, got %v", est.VATAmount)
	}
	if !almostEqual(est.TotalTariff, 100) {
		t.Errorf("Expected total tariff 100, got %v", est.TotalTariff)
	}
}

func TestEstimate_ClothingCarriesVATOnly(t *testing.T) {
	e := newTestEstimator()

	est, err := e.Estimate(models.TariffRequest{Country: "GB", Value: 200, Category: "clothing"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if est.DutyAmount != 0 {
		t.Errorf("Expected no customs duty for clothing, got %v", est.DutyAmount)
	}
	if !almostEqual(est.VATAmount, 40) {
		t.Errorf("Expected VAT 40 (20%% of 200), got %v", est.VATAmount)
	}
	if !almostEqual(est.TotalTariff, est.VATAmount) {
		t.Errorf("Expected total tariff to equal VAT, got %v", est.TotalTariff)
	}
	if !almostEqual(est.TotalWithTariff, 240) {
		t.Errorf("Expected total 240, got %v", est.TotalWithTariff)
	}
}

func TestEstimate_NonClothingCompoundsDutyThenVAT(t *testing.T) {
	e := newTestEstimator()

	// DE electronics over the 150 threshold: duty from the EU bucket (0
	// for electronics), then VAT on value plus duty.
	est, err := e.Estimate(models.TariffRequest{Country: "DE", Value: 1000, Category: "electronics"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !almostEqual(est.DutyAmount, 0) {
		t.Errorf("Expected duty 0, got %v", est.DutyAmount)
	}
	if !almostEqual(est.VATAmount, 190) {
		t.Errorf("Expected VAT 190 (19%% of 1000), got %v", est.VATAmount)
	}
	if !almostEqual(est.TotalWithTariff, 1190) {
		t.Errorf("Expected total 1190, got %v", est.TotalWithTariff)
	}
}

func TestEstimate_DefaultsAndNormalization(t *testing.T) {
	e := newTestEstimator()

	est, err := e.Estimate(models.TariffRequest{Country: "gb", Value: 200})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if est.Country != "GB" {
		t.Errorf("Expected country uppercased to GB, got %q", est.Country)
	}
	if est.Category != CategoryClothing {
		t.Errorf("Expected default category clothing, got %q", est.Category)
	}
	if est.Currency != "USD" {
		t.Errorf("Expected default currency USD, got %q", est.Currency)
	}
	if est.WeightKg != 0.5 {
		t.Errorf("Expected default weight 0.5, got %v", est.WeightKg)
	}
}

func TestEstimate_UnknownCountryFallsBack(t *testing.T) {
	e := newTestEstimator()

	// ZZ has no threshold, no VAT entry and no duty table. It is never
	// duty-free, uses the default VAT rate and the EU duty bucket.
	est, err := e.Estimate(models.TariffRequest{Country: "ZZ", Value: 100, Category: "clothing"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if est.IsDutyFree {
		t.Error("Expected unknown country to never be duty-free")
	}
	if !almostEqual(est.VATRate, 0.10) {
		t.Errorf("Expected default VAT rate 0.10, got %v", est.VATRate)
	}
	if !almostEqual(est.DutyRate, 0.12) {
		t.Errorf("Expected EU clothing duty rate 0.12, got %v", est.DutyRate)
	}
	if !almostEqual(est.VATAmount, 10) {
		t.Errorf("Expected VAT 10, got %v", est.VATAmount)
	}
}

func TestEstimate_UnknownCategoryUsesClothingTable(t *testing.T) {
	e := newTestEstimator()

	est, err := e.Estimate(models.TariffRequest{Country: "GB", Value: 200, Category: "furniture"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !almostEqual(est.VATRate, 0.20) {
		t.Errorf("Expected clothing-table VAT rate 0.20, got %v", est.VATRate)
	}
}

func TestEstimate_Documentation(t *testing.T) {
	e := newTestEstimator()

	tests := []struct {
		name     string
		req      models.TariffRequest
		expected []string
	}{
		{
			"low value defaults",
			models.TariffRequest{Country: "US", Value: 100},
			[]string{"Standard shipping documentation"},
		},
		{
			"high value invoice",
			models.TariffRequest{Country: "US", Value: 1500},
			[]string{"Commercial invoice"},
		},
		{
			"customs declaration country",
			models.TariffRequest{Country: "CN", Value: 100},
			[]string{"Customs declaration form"},
		},
		{
			"import declaration over 1000",
			models.TariffRequest{Country: "AU", Value: 2000},
			[]string{"Commercial invoice", "Import declaration"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := e.Estimate(tt.req)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(est.DocsRequired) != len(tt.expected) {
				t.Fatalf("Expected docs %v, got %v", tt.expected, est.DocsRequired)
			}
			for i, doc := range tt.expected {
				if est.DocsRequired[i] != doc {
					t.Errorf("Expected doc %q at %d, got %q", doc, i, est.DocsRequired[i])
				}
			}
		})
	}
}

func TestEstimate_ProcessingFeeAndNotes(t *testing.T) {
	e := newTestEstimator()

	est, err := e.Estimate(models.TariffRequest{Country: "GB", Value: 200})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if est.ProcessingFee != 8 {
		t.Errorf("Expected GB processing fee 8, got %v", est.ProcessingFee)
	}
	if est.Notes != tariffNotes["GB"] {
		t.Errorf("Expected GB note, got %q", est.Notes)
	}

	unknown, err := e.Estimate(models.TariffRequest{Country: "ZZ", Value: 200})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if unknown.ProcessingFee != defaultProcessingFee {
		t.Errorf("Expected default fee %v, got %v", float64(defaultProcessingFee), unknown.ProcessingFee)
	}
	if unknown.Notes != genericNote {
		t.Errorf("Expected generic note, got %q", unknown.Notes)
	}

	dutyFree, err := e.Estimate(models.TariffRequest{Country: "US", Value: 100})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if dutyFree.Notes != dutyFreeNote {
		t.Errorf("Expected duty-free note, got %q", dutyFree.Notes)
	}
}
