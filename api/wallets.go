package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GenPay/GenPay-Backend/api/apistrings"
	apimodels "github.com/GenPay/GenPay-Backend/api/models"
	basemodels "github.com/GenPay/GenPay-Backend/models"
	"github.com/GenPay/GenPay-Backend/services/provider"
	"github.com/GenPay/GenPay-Backend/services/wallet"
	"github.com/GenPay/GenPay-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Wallet struct {
	server        *Server
	walletService *wallet.WalletService
}

func (w Wallet) router(server *Server) {
	w.server = server

	chain, exists := server.provider.GetProvider(provider.Tron)
	if !exists {
		panic("tron provider is not registered")
	}
	client, ok := chain.(wallet.BlockchainClient)
	if !ok {
		panic("registered tron provider cannot serve wallet operations")
	}
	w.walletService = wallet.NewWalletService(server.store, server.logger, client, server.encryption)

	serverGroupV1 := server.router.Group("/api/v1/wallet")
	serverGroupV1.POST("", AuthenticatedMiddleware(), w.createWallet)
	serverGroupV1.GET("", AuthenticatedMiddleware(), w.getWallet)
	serverGroupV1.POST("sync", AuthenticatedMiddleware(), w.syncBalance)
	serverGroupV1.POST("send", AuthenticatedMiddleware(), w.send)
	serverGroupV1.POST("deposits", AuthenticatedMiddleware(), w.recordDeposit)
	serverGroupV1.GET("transactions", AuthenticatedMiddleware(), w.listTransactions)
}

func (w *Wallet) createWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	created, err := w.walletService.CreateWallet(ctx, activeUser.UserID)
	if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Wallet Ready", created))
}

func (w *Wallet) getWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	found, err := w.walletService.GetWallet(ctx, activeUser.UserID)
	if err != nil {
		w.respondWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Fetched Successfully", found))
}

func (w *Wallet) syncBalance(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	synced, err := w.walletService.SyncBalance(ctx, activeUser.UserID)
	if err != nil {
		w.respondWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Balances Synced", synced))
}

func (w *Wallet) send(ctx *gin.Context) {
	var request apimodels.SendRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidSendInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	sent, err := w.walletService.Send(ctx, activeUser.UserID, request.ToAddress, request.Amount)
	if err != nil {
		w.respondWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transfer Broadcast Successfully", sent))
}

func (w *Wallet) recordDeposit(ctx *gin.Context) {
	var request apimodels.DepositNotification
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidDepositData))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	recorded, err := w.walletService.RecordReceive(ctx, activeUser.UserID, request.FromAddress, request.Amount, request.TxHash)
	if err != nil {
		w.respondWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Deposit Recorded Successfully", recorded))
}

func (w *Wallet) listTransactions(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	limit, _ := strconv.ParseInt(ctx.Query("limit"), 10, 32)
	transactions, err := w.walletService.ListTransactions(ctx, activeUser.UserID, int32(limit))
	if err != nil {
		w.respondWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Transactions Fetched Successfully", transactions))
}

func (w *Wallet) respondWalletError(ctx *gin.Context, err error) {
	var insufficient *wallet.InsufficientBalanceError

	switch {
	case errors.Is(err, wallet.ErrWalletNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
	case errors.As(err, &insufficient):
		ctx.JSON(http.StatusConflict, basemodels.NewError(insufficient.Error()))
	case errors.Is(err, wallet.ErrInvalidAddress), errors.Is(err, wallet.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(err.Error()))
	case errors.Is(err, wallet.ErrBlockchainSubmission), errors.Is(err, wallet.ErrKeyUnavailable):
		w.server.logger.Error(err)
		ctx.JSON(http.StatusBadGateway, basemodels.NewError(err.Error()))
	default:
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}
