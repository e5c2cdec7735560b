package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/models"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/GenPay/GenPay-Backend/services/monitoring/tasks"
	"github.com/GenPay/GenPay-Backend/services/provider"
	"github.com/GenPay/GenPay-Backend/services/provider/cryptocurrency"
	redisservice "github.com/GenPay/GenPay-Backend/services/redis"
	"github.com/GenPay/GenPay-Backend/services/security"
	"github.com/GenPay/GenPay-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

type Server struct {
	router     *gin.Engine
	store      *db.Store
	config     *utils.Config
	logger     *logging.Logger
	provider   *provider.ProviderService
	redis      *redisservice.RedisService
	encryption *security.EncryptionService
	scheduler  *tasks.TaskScheduler
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	s := db.NewStore(conn)
	g := gin.Default()
	l := logging.NewLogger()
	p := provider.NewProviderService()

	// Set up the Tron fullnode client
	tp := cryptocurrency.NewTronProvider(l)
	p.AddProvider(tp)

	masterKey, err := security.MasterKeyFromConfig(c)
	if err != nil {
		panic(fmt.Sprintf("Could not derive master key: %v", err))
	}
	enc, err := security.NewEncryptionService(masterKey)
	if err != nil {
		panic(fmt.Sprintf("Could not initialise encryption: %v", err))
	}

	// Redis is optional; without it daily transfer caps are not enforced
	var r *redisservice.RedisService
	if c.RedisHost != "" {
		r, err = redisservice.NewRedisService(&redisservice.RedisConfig{
			Host:     c.RedisHost,
			Port:     c.RedisPort,
			Password: c.RedisPassword,
		})
		if err != nil {
			l.Error(fmt.Errorf("redis unavailable, daily caps disabled: %w", err))
			r = nil
		}
	}

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	TokenController = utils.NewJWTToken(c)

	return &Server{
		router:     g,
		store:      s,
		config:     c,
		logger:     l,
		provider:   p,
		redis:      r,
		encryption: enc,
		scheduler:  tasks.NewTaskScheduler(l),
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to GenPay!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Account{}.router(s)
	Transfer{}.router(s)
	Transaction{}.router(s)
	Wallet{}.router(s)
	Currency{}.router(s)

	s.startBackgroundTasks()
	defer s.scheduler.Stop()

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
