package session

import (
	"go.uber.org/fx"
)

// Module provides the session controller
var Module = fx.Options(
	fx.Provide(
		New,
	),
)
