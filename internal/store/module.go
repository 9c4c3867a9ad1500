package store

import (
	"github.com/spf13/afero"
	"go.uber.org/fx"
)

// Module provides the durable state stores
var Module = fx.Options(
	fx.Provide(
		func() afero.Fs { return afero.NewOsFs() },
		NewTokenStore,
		NewDraftStore,
	),
)
