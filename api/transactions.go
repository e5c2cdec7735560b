package api

import (
	"net/http"
	"strconv"

	"github.com/GenPay/GenPay-Backend/api/apistrings"
	basemodels "github.com/GenPay/GenPay-Backend/models"
	"github.com/GenPay/GenPay-Backend/services/account"
	"github.com/GenPay/GenPay-Backend/services/transaction"
	"github.com/GenPay/GenPay-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Transaction struct {
	server             *Server
	accountService     *account.AccountService
	transactionService *transaction.TransactionService
}

func (t Transaction) router(server *Server) {
	t.server = server

	numGen, err := utils.NewAccountNumberGenerator(server.config.AccountNumberSalt)
	if err != nil {
		panic(err)
	}
	t.accountService = account.NewAccountService(server.store, server.logger, numGen)
	t.transactionService = transaction.NewTransactionService(server.store, server.logger)

	serverGroupV1 := server.router.Group("/api/v1/accounts")
	serverGroupV1.GET(":id/transactions", AuthenticatedMiddleware(), t.listAccountTransactions)
}

func (t *Transaction) listAccountTransactions(ctx *gin.Context) {
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

	acct, err := t.accountService.GetAccount(ctx, accountID)
	if err != nil {
		if err == account.ErrAccountNotFound {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.AccountNotFound))
			return
		}
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}
	if acct.CustomerID != activeUser.UserID {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.AccountNotYours))
		return
	}

	limit, _ := strconv.ParseInt(ctx.Query("limit"), 10, 32)
	entries, err := t.transactionService.ListByAccount(ctx, accountID, int32(limit))
	if err != nil {
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transactions Fetched Successfully", entries))
}
