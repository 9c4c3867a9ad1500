package catalog

import (
	"go.uber.org/fx"
)

// Module provides the embedded catalog and the progress tracker
var Module = fx.Options(
	fx.Provide(
		Load,
		NewProgressTracker,
	),
)
