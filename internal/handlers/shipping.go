package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// GetShippingRates handles POST /api/v1/shipping-rates
func (h *Handlers) GetShippingRates(c *gin.Context) {
	var req models.ShippingRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("failed to bind shipping rates request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rates, seq, err := h.checkoutService.GetShippingRates(c.Request.Context(), sessionID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rates":      rates,
		"quote_seq":  seq,
		"to_address": req.ToAddress,
	})
}

// GetShippingOptions handles GET /api/v1/shipping-rates/options
func (h *Handlers) GetShippingOptions(c *gin.Context) {
	country := strings.ToUpper(c.DefaultQuery("country", "US"))

	carriers, ok := carriersByCountry[country]
	if !ok {
		carriers = carriersByCountry["US"]
	}

	c.JSON(http.StatusOK, gin.H{
		"country":             country,
		"carriers":            carriers,
		"default_parcel":      models.DefaultParcel,
		"supported_countries": supportedCountries,
		"currency_options":    models.AllCurrencies(),
	})
}

var supportedCountries = []string{"US", "CN", "GB", "DE", "FR", "JP", "AU", "CA", "MX", "BR", "IN"}

var carriersByCountry = map[string][]models.CarrierOption{
	"US": {
		{ID: "usps", Name: "USPS", Services: []string{"First Class", "Priority Mail", "Express Mail"}, Notes: "Most economical for domestic US"},
		{ID: "fedex", Name: "FedEx", Services: []string{"Ground", "2Day", "Overnight"}, Notes: "Reliable and fast"},
		{ID: "ups", Name: "UPS", Services: []string{"Ground", "3 Day Select", "Next Day Air"}, Notes: "Wide international coverage"},
	},
	"CN": {
		{ID: "dhl", Name: "DHL", Services: []string{"Express Worldwide", "Economy Select"}, Notes: "Fast delivery to China"},
		{ID: "fedex", Name: "FedEx", Services: []string{"International Priority", "International Economy"}, Notes: "Reliable international service"},
	},
	"GB": {
		{ID: "royalmail", Name: "Royal Mail", Services: []string{"International Standard", "International Tracked"}, Notes: "Official UK postal service"},
		{ID: "dpd", Name: "DPD", Services: []string{"Classic", "Predict"}, Notes: "Reliable European delivery"},
	},
	"EU": {
		{ID: "dhl", Name: "DHL", Services: []string{"Express", "Parcel"}, Notes: "Wide European network"},
		{ID: "dpd", Name: "DPD", Services: []string{"Classic", "Predict"}, Notes: "Reliable European delivery"},
	},
}
