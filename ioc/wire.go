//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/promocode/internal/promocode"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		InitSession,
		promocode.InitModule,
		wire.FieldsOf(new(*promocode.Module), "Hdl", "AdminHdl", "ClearJob"),
		initGinxServer,
		InitAdminServer,
		initCronJobs)
	return new(App), nil
}
