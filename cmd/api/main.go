package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "bbl-backend/internal/adapter/http"
	"bbl-backend/internal/adapter/middleware"
	"bbl-backend/internal/adapter/repository/mysql"
	"bbl-backend/internal/config"
	accountDomain "bbl-backend/internal/domain/account"
	"bbl-backend/internal/infrastructure/cache"
	"bbl-backend/internal/infrastructure/db"
	"bbl-backend/internal/oracle"
	accountuc "bbl-backend/internal/usecase/account"
	"bbl-backend/internal/usecase/liquidation"
	loanuc "bbl-backend/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	accountRepo := mysql.NewAccountRepository(gdb)
	marketRepo := mysql.NewMarketRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	priceOracle := oracle.New(marketRepo)
	if err := priceOracle.Load(ctx); err != nil {
		log.Fatal(err)
	}

	scores := accountDomain.DeltaScorePolicy{
		RepayReward:  cfg.RepayScoreReward,
		ClosePenalty: cfg.CloseScorePenalty,
	}

	accounts := accountuc.NewUsecase(accountRepo)
	loans := loanuc.NewUsecase(loanRepo, unit, priceOracle, scores)
	sweeper := liquidation.NewUsecase(loanRepo, unit, priceOracle, scores, cfg.LiquidationThreshold)
	runner := liquidation.NewRunner(sweeper, time.Duration(cfg.SweepIntervalSecs)*time.Second)
	go runner.Run(ctx)

	h := httpadp.NewHandler()
	accountH := httpadp.NewAccountHandler(accounts)
	loanH := httpadp.NewLoanHandler(loans)
	marketH := httpadp.NewMarketHandler(priceOracle, cfg.FeedToken, runner.Kick)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.GET("/market/price", marketH.GetPrice)
	e.PUT("/market/price", marketH.UpdatePrice)

	e.POST("/profiles", accountH.CreateProfile)
	e.GET("/profiles/:principal", accountH.GetProfile)
	e.GET("/profiles/:principal/loans", loanH.ListUserLoans)

	e.POST("/loans", loanH.RequestLoan)
	e.POST("/loans/:loan_id/repay", loanH.RepayLoan)
	e.GET("/loans/max-loan", loanH.MaxLoan)
	e.GET("/loans/:loan_id", loanH.GetLoan)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
