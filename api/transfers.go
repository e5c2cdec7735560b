package api

import (
	"errors"
	"net/http"

	"github.com/GenPay/GenPay-Backend/api/apistrings"
	apimodels "github.com/GenPay/GenPay-Backend/api/models"
	basemodels "github.com/GenPay/GenPay-Backend/models"
	"github.com/GenPay/GenPay-Backend/services/currency"
	"github.com/GenPay/GenPay-Backend/services/transaction"
	"github.com/GenPay/GenPay-Backend/services/transfer"
	"github.com/GenPay/GenPay-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transfer struct {
	server          *Server
	transferService *transfer.TransferService
}

func (t Transfer) router(server *Server) {
	t.server = server
	t.transferService = newTransferService(server)

	serverGroupV1 := server.router.Group("/api/v1/transfers")
	serverGroupV1.POST("", AuthenticatedMiddleware(), t.initiateTransfer)
	serverGroupV1.GET("", AuthenticatedMiddleware(), t.listTransfers)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), t.getTransfer)
	serverGroupV1.POST(":id/complete", AuthenticatedMiddleware(), t.completeTransfer)
	serverGroupV1.POST(":id/cancel", AuthenticatedMiddleware(), t.cancelTransfer)
}

// newTransferService wires the settlement engine with the rate source, the
// ledger recorder and, when redis is up, the daily cap tracker.
func newTransferService(server *Server) *transfer.TransferService {
	currencyService := currency.NewCurrencyService(server.store, server.logger)
	transactionService := transaction.NewTransactionService(server.store, server.logger)

	service := transfer.NewTransferService(server.store, server.logger, currencyService, transactionService)

	if server.redis != nil && server.config.DailyTransferCap != "" {
		cap, err := decimal.NewFromString(server.config.DailyTransferCap)
		if err != nil {
			server.logger.Error(errors.New("DAILY_TRANSFER_CAP is not a decimal, caps disabled"))
		} else {
			service.EnableDailyCap(server.redis, cap)
		}
	}
	return service
}

func (t *Transfer) initiateTransfer(ctx *gin.Context) {
	var request apimodels.InitiateTransferRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransferInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	fromAccountID, err := uuid.Parse(request.FromAccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAccountID))
		return
	}

	initiate := transfer.InitiateRequest{
		FromAccountID: fromAccountID,
		Amount:        request.Amount,
		FromCurrency:  request.FromCurrency,
		ToCurrency:    request.ToCurrency,
		TransferType:  request.TransferType,
		Reference:     request.Reference,
	}
	if request.ToAccountID != "" {
		toAccountID, err := uuid.Parse(request.ToAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAccountID))
			return
		}
		initiate.ToAccountID = &toAccountID
	}
	if request.Recipient != nil {
		initiate.Recipient = transfer.Recipient{
			Email: request.Recipient.Email,
			Name:  request.Recipient.Name,
			Iban:  request.Recipient.Iban,
			Bic:   request.Recipient.Bic,
		}
	}

	created, err := t.transferService.InitiateTransfer(ctx, activeUser.UserID, initiate)
	if err != nil {
		t.respondTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Transfer Initiated Successfully", created))
}

func (t *Transfer) completeTransfer(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transferID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransferID))
		return
	}

	// Ownership is checked before any settlement work happens
	if _, err := t.transferService.GetTransfer(ctx, activeUser.UserID, transferID); err != nil {
		t.respondTransferError(ctx, err)
		return
	}

	completed, err := t.transferService.CompleteTransfer(ctx, transferID)
	if err != nil {
		t.respondTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transfer Completed Successfully", completed))
}

func (t *Transfer) cancelTransfer(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transferID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransferID))
		return
	}

	cancelled, err := t.transferService.CancelTransfer(ctx, activeUser.UserID, transferID)
	if err != nil {
		t.respondTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transfer Cancelled Successfully", cancelled))
}

func (t *Transfer) getTransfer(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transferID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransferID))
		return
	}

	found, err := t.transferService.GetTransfer(ctx, activeUser.UserID, transferID)
	if err != nil {
		t.respondTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transfer Fetched Successfully", found))
}

func (t *Transfer) listTransfers(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transfers, err := t.transferService.ListTransfers(ctx, activeUser.UserID)
	if err != nil {
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transfers Fetched Successfully", transfers))
}

func (t *Transfer) respondTransferError(ctx *gin.Context, err error) {
	var insufficient *transfer.InsufficientFundsError
	var currencyErr *currency.CurrencyError

	switch {
	case errors.Is(err, transfer.ErrTransferNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.TransferNotFound))
	case errors.Is(err, transfer.ErrAccountNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.AccountNotFound))
	case errors.Is(err, transfer.ErrNotYours):
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.AccountNotYours))
	case errors.Is(err, transfer.ErrTransferNotPending),
		errors.Is(err, transfer.ErrDailyCapExceeded):
		ctx.JSON(http.StatusConflict, basemodels.NewError(err.Error()))
	case errors.As(err, &insufficient):
		ctx.JSON(http.StatusConflict, basemodels.NewError(insufficient.Error()))
	case errors.Is(err, transfer.ErrInvalidAmount),
		errors.Is(err, transfer.ErrInvalidTransferType),
		errors.Is(err, transfer.ErrMissingDestination),
		errors.Is(err, transfer.ErrMissingRecipient),
		errors.Is(err, transfer.ErrSameAccount),
		errors.Is(err, transfer.ErrCurrencyMismatch),
		errors.Is(err, transfer.ErrAccountNotActive),
		errors.Is(err, transfer.ErrRateUnavailable):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(err.Error()))
	case errors.As(err, &currencyErr):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(currencyErr.Error()))
	default:
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}
