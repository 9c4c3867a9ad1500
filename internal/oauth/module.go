package oauth

import (
	"go.uber.org/fx"
)

// Module provides the callback listener
var Module = fx.Options(
	fx.Provide(
		NewListener,
	),
)
