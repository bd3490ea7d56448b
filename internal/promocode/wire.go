// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//go:build wireinject

package promocode

import (
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/ecodeclub/promocode/internal/promocode/internal/event"
	"github.com/ecodeclub/promocode/internal/promocode/internal/job"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository/cache"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository/dao"
	"github.com/ecodeclub/promocode/internal/promocode/internal/service"
	"github.com/ecodeclub/promocode/internal/promocode/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
	"github.com/lithammer/shortuuid/v4"
)

const (
	defaultCacheExpiration = time.Minute
	defaultCacheEvictDelay = time.Second
	defaultClearTimeout    = 10 * time.Minute
)

func InitModule(db *egorm.Component, q mq.MQ, ec ecache.Cache, sp session.Provider) (*Module, error) {
	wire.Build(
		initConfig,
		initDAO,
		initCache,
		initRepository,
		event.NewRedeemedEventProducer,
		eventKeyGenerator,
		service.NewService,
		service.NewAdminService,
		web.NewHandler,
		web.NewAdminHandler,
		initClearJob,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

func initConfig() (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if econf.Get("promocode") != nil {
		if err := econf.UnmarshalKey("promocode", &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("读取优惠码配置失败: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %w", service.ErrInvalidConfig, err)
	}
	return cfg, nil
}

func initDAO(db *egorm.Component, cfg domain.Config) (dao.PromocodeDAO, error) {
	err := dao.InitTables(db, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dao.NewGORMPromocodeDAO(db, cfg.Database), nil
}

func initCache(ec ecache.Cache) cache.PromocodeCache {
	expiration := econf.GetDuration("promocode.cacheExpiration")
	if expiration <= 0 {
		expiration = defaultCacheExpiration
	}
	return cache.NewPromocodeECache(ec, expiration)
}

func initRepository(d dao.PromocodeDAO, c cache.PromocodeCache) repository.PromocodeRepository {
	delay := econf.GetDuration("promocode.cacheEvictDelay")
	if delay <= 0 {
		delay = defaultCacheEvictDelay
	}
	return repository.NewPromocodeRepository(d, c, delay)
}

func initClearJob(svc service.AdminService) *job.ClearUnavailablePromocodesJob {
	timeout := econf.GetDuration("promocode.clearTimeout")
	if timeout <= 0 {
		timeout = defaultClearTimeout
	}
	return job.NewClearUnavailablePromocodesJob(svc, timeout)
}

func eventKeyGenerator() func() string {
	return shortuuid.New
}

