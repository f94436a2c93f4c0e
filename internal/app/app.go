package app

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"

	"github.com/orgball2608/piazza/internal/api"
	"github.com/orgball2608/piazza/internal/auth"
	"github.com/orgball2608/piazza/internal/auth/authimpl"
	"github.com/orgball2608/piazza/internal/db"
	"github.com/orgball2608/piazza/internal/engagement"
	"github.com/orgball2608/piazza/internal/engagement/engagementimpl"
	"github.com/orgball2608/piazza/internal/query"
	"github.com/orgball2608/piazza/internal/query/queryimpl"
	repositories "github.com/orgball2608/piazza/internal/repositories/fx"
	"github.com/orgball2608/piazza/internal/retention"
	"github.com/orgball2608/piazza/pkg/config"
	"github.com/orgball2608/piazza/pkg/logger"
	"github.com/orgball2608/piazza/pkg/pgx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		clockwork.NewRealClock,
	),
	fx.Provide(
		fx.Annotate(
			authimpl.New,
			fx.As(new(auth.Client)),
		),
		fx.Annotate(
			engagementimpl.New,
			fx.As(new(engagement.Client)),
		),
		fx.Annotate(
			queryimpl.New,
			fx.As(new(query.Client)),
		),
	),
	repositories.Module,
	db.Module,
	api.Module,
	retention.Module,
)
