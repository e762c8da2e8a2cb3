package router

import (
	"github.com/AlenaMolokova/gamehub/internal/config"
	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/AlenaMolokova/gamehub/internal/handlers"
	"github.com/AlenaMolokova/gamehub/internal/middleware"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const (
	APIPrefix   = "/api"
	AdminPrefix = "/api/admin"

	HealthPath              = "/healthz"
	LoginPath               = "/login"
	VIPRequestsPath         = "/vip-requests"
	ReferralWithdrawalsPath = "/referral/withdrawals"
	WithdrawalsPath         = "/withdrawals"
	ReferralClickPath       = "/referral/click"
	ReferralRegisterPath    = "/referral/registration"
	ReferralStatsPath       = "/referral/stats"
	PlayersPath             = "/players"
	SupportMessagesPath     = "/support/messages"
	SupportChatsPath        = "/support/chats"
)

type Store interface {
	models.TxStore
	handlers.Pinger
}

func SetupRoutes(store Store, cfg *config.Config, log logrus.FieldLogger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowOrigins))

	ledgers := []struct {
		path   string
		ledger *usecase.RequestLedger
	}{
		{VIPRequestsPath, usecase.NewRequestLedger(store, usecase.VIPPolicy(cfg.Ledger), log)},
		{ReferralWithdrawalsPath, usecase.NewRequestLedger(store, usecase.ReferralWithdrawalPolicy(cfg.Ledger), log)},
		{WithdrawalsPath, usecase.NewRequestLedger(store, usecase.WithdrawalPolicy(cfg.Ledger), log)},
	}
	referralUC := usecase.NewReferralUseCase(store, cfg.Ledger, log)
	playerUC := usecase.NewPlayerUseCase(store, log)
	supportUC := usecase.NewSupportUseCase(store, log)

	r.Get(HealthPath, handlers.NewHealthHandler(store, log).ServeHTTP)
	r.Post(AdminPrefix+LoginPath, handlers.NewAdminLoginHandler(handlers.AdminCredentials{
		Login:        cfg.AdminLogin,
		PasswordHash: cfg.AdminPasswordHash,
		AdminID:      cfg.AdminID,
	}, cfg.JWTSecret, constants.DefaultTokenTTL, log).ServeHTTP)

	for _, l := range ledgers {
		r.Post(APIPrefix+l.path, handlers.NewCreateRequestHandler(l.ledger, log).ServeHTTP)
		r.Get(APIPrefix+l.path, handlers.NewListRequestsHandler(l.ledger, log, false).ServeHTTP)
		r.Get(APIPrefix+l.path+"/{id}", handlers.NewGetRequestHandler(l.ledger, log).ServeHTTP)
	}
	r.Post(APIPrefix+ReferralClickPath, handlers.NewReferralClickHandler(referralUC, log).ServeHTTP)
	r.Post(APIPrefix+ReferralRegisterPath, handlers.NewReferralRegistrationHandler(referralUC, log).ServeHTTP)
	r.Get(APIPrefix+ReferralStatsPath, handlers.NewReferralStatsHandler(referralUC, log).ServeHTTP)
	r.Get(APIPrefix+SupportMessagesPath, handlers.NewSupportThreadHandler(supportUC, log, false).ServeHTTP)
	r.Post(APIPrefix+SupportMessagesPath, handlers.NewPostSupportMessageHandler(supportUC, log, false).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.JWTSecret, log))

		for _, l := range ledgers {
			r.Get(AdminPrefix+l.path, handlers.NewListRequestsHandler(l.ledger, log, true).ServeHTTP)
			r.Put(AdminPrefix+l.path, handlers.NewResolveRequestHandler(l.ledger, log).ServeHTTP)
			if l.ledger.Deletable() {
				r.Delete(AdminPrefix+l.path+"/{id}", handlers.NewDeleteRequestHandler(l.ledger, log).ServeHTTP)
			}
		}

		r.Get(AdminPrefix+PlayersPath, handlers.NewListPlayersHandler(playerUC, log).ServeHTTP)
		r.Put(AdminPrefix+PlayersPath+"/{id}", handlers.NewUpdatePlayerHandler(playerUC, log).ServeHTTP)
		r.Delete(AdminPrefix+PlayersPath+"/{id}", handlers.NewDeletePlayerHandler(playerUC, log).ServeHTTP)
		r.Post(AdminPrefix+PlayersPath+"/{id}/ban", handlers.NewBanPlayerHandler(playerUC, log).ServeHTTP)
		r.Post(AdminPrefix+PlayersPath+"/{id}/unban", handlers.NewUnbanPlayerHandler(playerUC, log).ServeHTTP)

		r.Get(AdminPrefix+SupportChatsPath, handlers.NewSupportChatsHandler(supportUC, log).ServeHTTP)
		r.Get(AdminPrefix+SupportMessagesPath, handlers.NewSupportThreadHandler(supportUC, log, true).ServeHTTP)
		r.Post(AdminPrefix+SupportMessagesPath, handlers.NewPostSupportMessageHandler(supportUC, log, true).ServeHTTP)
	})

	return r
}
