package api

import (
	"errors"
	"net/http"

	"github.com/GenPay/GenPay-Backend/api/apistrings"
	apimodels "github.com/GenPay/GenPay-Backend/api/models"
	basemodels "github.com/GenPay/GenPay-Backend/models"
	"github.com/GenPay/GenPay-Backend/services/account"
	"github.com/GenPay/GenPay-Backend/services/currency"
	"github.com/GenPay/GenPay-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Account struct {
	server         *Server
	accountService *account.AccountService
}

func (a Account) router(server *Server) {
	a.server = server

	numGen, err := utils.NewAccountNumberGenerator(server.config.AccountNumberSalt)
	if err != nil {
		panic(err)
	}
	a.accountService = account.NewAccountService(server.store, server.logger, numGen)

	serverGroupV1 := server.router.Group("/api/v1/accounts")
	serverGroupV1.POST("", AuthenticatedMiddleware(), a.createAccount)
	serverGroupV1.GET("", AuthenticatedMiddleware(), a.listAccounts)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), a.getAccount)
	serverGroupV1.DELETE(":id", AuthenticatedMiddleware(), a.closeAccount)
}

func (a *Account) createAccount(ctx *gin.Context) {
	var request apimodels.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAccountInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	accountType := request.Type
	if accountType == "" {
		accountType = "personal"
	}

	created, err := a.accountService.CreateAccount(ctx, activeUser.UserID, request.Currency, accountType, request.IsPrimary)
	if err != nil {
		switch {
		case errors.Is(err, currency.ErrUnsupportedCurrency):
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.CurrencyNotSupported))
		case errors.Is(err, account.ErrInvalidAccountType):
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(err.Error()))
		default:
			a.server.logger.Error(err)
			ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		}
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Account Created Successfully", created))
}

func (a *Account) listAccounts(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	if currencyCode := ctx.Query("currency"); currencyCode != "" {
		accounts, err := a.accountService.ListAccountsByCurrency(ctx, activeUser.UserID, currencyCode)
		if err != nil {
			if errors.Is(err, currency.ErrUnsupportedCurrency) {
				ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.CurrencyNotSupported))
				return
			}
			a.server.logger.Error(err)
			ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
			return
		}
		ctx.JSON(http.StatusOK, basemodels.NewSuccess("User Accounts Fetched Successfully", accounts))
		return
	}

	accounts, err := a.accountService.ListAccounts(ctx, activeUser.UserID)
	if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("User Accounts Fetched Successfully", accounts))
}

func (a *Account) getAccount(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAccountID))
		return
	}

	acct, err := a.accountService.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.AccountNotFound))
			return
		}
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	if acct.CustomerID != activeUser.UserID {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.AccountNotYours))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Account Fetched Successfully", acct))
}

func (a *Account) closeAccount(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAccountID))
		return
	}

	closed, err := a.accountService.CloseAccount(ctx, activeUser.UserID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.AccountNotFound))
		case errors.Is(err, account.ErrNotYours):
			ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.AccountNotYours))
		case errors.Is(err, account.ErrAccountClosed), errors.Is(err, account.ErrNonZeroBalance):
			ctx.JSON(http.StatusConflict, basemodels.NewError(err.Error()))
		default:
			a.server.logger.Error(err)
			ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		}
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Account Closed Successfully", closed))
}
