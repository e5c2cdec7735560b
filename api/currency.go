package api

import (
	"errors"
	"net/http"

	"github.com/GenPay/GenPay-Backend/api/apistrings"
	apimodels "github.com/GenPay/GenPay-Backend/api/models"
	basemodels "github.com/GenPay/GenPay-Backend/models"
	"github.com/GenPay/GenPay-Backend/services/currency"
	"github.com/gin-gonic/gin"
)

type Currency struct {
	server          *Server
	currencyService *currency.CurrencyService
}

func (c Currency) router(server *Server) {
	c.server = server
	c.currencyService = currency.NewCurrencyService(server.store, server.logger)

	serverGroupV1 := server.router.Group("/api/v1/rates")
	serverGroupV1.GET("", AuthenticatedMiddleware(), c.listRates)
	serverGroupV1.POST("", AuthenticatedMiddleware(), AdminMiddleware(), c.setRate)
	serverGroupV1.POST("convert", AuthenticatedMiddleware(), c.convert)
}

func (c *Currency) listRates(ctx *gin.Context) {
	rates, err := c.currencyService.GetAllExchangeRates(ctx)
	if err != nil {
		if errors.Is(err, currency.ErrNoExchangeRate) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.RateNotFound))
			return
		}
		c.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Exchange Rates Fetched Successfully", rates))
}

func (c *Currency) setRate(ctx *gin.Context) {
	var request apimodels.SetRateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRateInput))
		return
	}

	created, err := c.currencyService.SetExchangeRate(ctx, request.BaseCurrency, request.QuoteCurrency, request.Rate)
	if err != nil {
		if errors.Is(err, currency.ErrUnsupportedCurrency) {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.CurrencyNotSupported))
			return
		}
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Exchange Rate Recorded Successfully", created))
}

func (c *Currency) convert(ctx *gin.Context) {
	var request apimodels.ConvertRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRateInput))
		return
	}

	if currency.IsCurrencyInvalid(request.FromCurrency) || currency.IsCurrencyInvalid(request.ToCurrency) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.CurrencyNotSupported))
		return
	}

	converted, err := c.currencyService.Convert(ctx, request.Amount, request.FromCurrency, request.ToCurrency)
	if err != nil {
		var currencyErr *currency.CurrencyError
		if errors.As(err, &currencyErr) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(currencyErr.Error()))
			return
		}
		c.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Conversion Calculated Successfully", gin.H{
		"amount":        request.Amount,
		"from_currency": request.FromCurrency,
		"to_currency":   request.ToCurrency,
		"converted":     converted,
	}))
}
