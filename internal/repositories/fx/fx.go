package fx

import (
	"github.com/orgball2608/piazza/internal/repositories/post"
	"github.com/orgball2608/piazza/internal/repositories/user"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
	user.Module,
)
