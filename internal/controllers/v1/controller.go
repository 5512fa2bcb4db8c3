// Package v1 implements the v1 HTTP API.
package v1

import (
	"time"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	DB     *gorm.DB
	Ledger *ledger.Service
	Auth   *auth.Service
}

// New returns a Controller for the database.
func New(db *gorm.DB, sessionTTL time.Duration) Controller {
	return Controller{
		DB:     db,
		Ledger: ledger.New(db),
		Auth:   auth.New(db, sessionTTL),
	}
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
// Everything except registration and login requires a session.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterAuthRoutes(r.Group("/auth"))

	authenticated := r.Group("", co.Auth.Middleware())
	co.RegisterBudgetRoutes(authenticated.Group("/budgets"))
	co.RegisterRevenueRoutes(authenticated.Group("/revenues"))
	co.RegisterExpenseRoutes(authenticated.Group("/expenses"))
	co.RegisterCategoryRoutes(authenticated.Group("/categories"))
	co.RegisterTagRoutes(authenticated.Group("/tags"))
	co.RegisterAlertRoutes(authenticated.Group("/alerts"))
	co.RegisterStatsRoutes(authenticated.Group("/stats"))
}
