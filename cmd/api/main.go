package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "agrifund-engine/internal/adapter/http"
	appmw "agrifund-engine/internal/adapter/middleware"
	"agrifund-engine/internal/adapter/repository/mysql"
	"agrifund-engine/internal/adapter/scoring"
	"agrifund-engine/internal/config"
	"agrifund-engine/internal/infrastructure/cache"
	"agrifund-engine/internal/infrastructure/db"
	"agrifund-engine/internal/logger"
	"agrifund-engine/internal/pricing"
	fundinguc "agrifund-engine/internal/usecase/funding"
	lifecycleuc "agrifund-engine/internal/usecase/lifecycle"
	loanrequc "agrifund-engine/internal/usecase/loanreq"
	reputationuc "agrifund-engine/internal/usecase/reputation"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.Sync()
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalw("mysql connect failed", "err", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalw("redis connect failed", "err", err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	installmentRepo := mysql.NewInstallmentRepository(gdb)
	contributionRepo := mysql.NewContributionRepository(gdb)
	reputationRepo := mysql.NewReputationRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	scorer := scoring.NewClient(cfg.ScoringBaseURL, time.Duration(cfg.ScoringTimeoutSecs)*time.Second)

	loanUC := loanrequc.NewUsecase(loanRepo, installmentRepo, contributionRepo, scorer, pricing.Default(), cfg.InstallmentCount)
	fundingUC := fundinguc.NewUsecase(guow, cfg.Overflow)
	lifecycleUC := lifecycleuc.NewUsecase(guow)
	reputationUC := reputationuc.NewUsecase(reputationRepo, cfg.ReputationDecay)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	settlementH := httpadp.NewSettlementHandler(fundingUC, lifecycleUC)
	withdrawalH := httpadp.NewWithdrawalHandler(fundingUC)
	lifecycleH := httpadp.NewLifecycleHandler(lifecycleUC)
	reputationH := httpadp.NewReputationHandler(reputationUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.GET("/loans/:loan_id/progress", loanH.GetProgress)
	e.GET("/loans/:loan_id/schedule", loanH.GetSchedule)
	e.GET("/borrowers/:borrower_id/reputation", reputationH.GetReputation)

	m := e.Group("", idemp)
	m.POST("/loans", loanH.CreateLoan)
	m.POST("/settlements/contribution", settlementH.ContributionSettled)
	m.POST("/settlements/disbursement", settlementH.DisbursementConfirmed)
	m.POST("/settlements/installment", settlementH.InstallmentPaid)
	m.POST("/loans/:loan_id/withdrawals", withdrawalH.Withdraw)
	m.POST("/loans/:loan_id/default", lifecycleH.DeclareDefault)
	m.POST("/loans/:loan_id/liquidation", lifecycleH.Liquidate)
	m.POST("/loans/:loan_id/installments/:idx/overdue", lifecycleH.MarkInstallmentOverdue)

	addr := ":" + cfg.AppPort
	log.Infow("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		log.Fatalw("server stopped", "err", err)
	}
}
