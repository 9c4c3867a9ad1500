package api

import (
	"go.uber.org/fx"
)

// Module provides the session client
var Module = fx.Options(
	fx.Provide(
		NewClient,
	),
)
