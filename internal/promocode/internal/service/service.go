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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/ecodeclub/promocode/internal/promocode/internal/event"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository"
	"github.com/ecodeclub/promocode/internal/promocode/internal/service/generator"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrInvalidConfig        = generator.ErrInvalidConfig
	ErrDuplicateCode        = repository.ErrDuplicateCode
	ErrPromocodeNotFound    = repository.ErrPromocodeNotFound
	ErrPromocodeUnavailable = repository.ErrPromocodeUnavailable
	ErrPromocodeUsed        = repository.ErrPromocodeUsed
	ErrUnauthorized         = errors.New("兑换该优惠码需要登录")
)

// IsIneligible 是否为正常的业务结果，而不是系统错误
func IsIneligible(err error) bool {
	return errors.Is(err, ErrPromocodeNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrPromocodeUnavailable) ||
		errors.Is(err, ErrPromocodeUsed)
}

//go:generate mockgen -source=./service.go -package=promocodemocks -destination=../../mocks/promocode.mock.go Service
type Service interface {
	// Redeem 兑换优惠码，uid 为 0 表示未登录
	Redeem(ctx context.Context, code string, uid int64) (domain.Promocode, error)
	// Use 等价于 Redeem
	Use(ctx context.Context, code string, uid int64) (domain.Promocode, error)
	// Apply 等价于 Redeem
	Apply(ctx context.Context, code string, uid int64) (domain.Promocode, error)
	// Available 只判断能否兑换，不关心兑换人。不能兑换时返回 false 而不是 error
	Available(ctx context.Context, code string) (domain.Promocode, bool, error)
}

type service struct {
	repo              repository.PromocodeRepository
	producer          event.RedeemedEventProducer
	eventKeyGenerator func() string
	logger            *elog.Component
}

func NewService(repo repository.PromocodeRepository,
	producer event.RedeemedEventProducer,
	eventKeyGenerator func() string) Service {
	return &service{
		repo:              repo,
		producer:          producer,
		eventKeyGenerator: eventKeyGenerator,
		logger:            elog.DefaultLogger,
	}
}

func (s *service) Redeem(ctx context.Context, code string, uid int64) (domain.Promocode, error) {
	p, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Promocode{}, fmt.Errorf("查找优惠码失败: %w, code=%s", err, code)
	}
	if p.IsAuthRequired() && uid <= 0 {
		return domain.Promocode{}, fmt.Errorf("%w: code=%s", ErrUnauthorized, code)
	}
	now := time.Now()
	if !p.IsAvailableAt(now) {
		return domain.Promocode{}, fmt.Errorf("%w: code=%s", ErrPromocodeUnavailable, code)
	}
	if p.IsDisposable() && p.IsUsed() {
		return domain.Promocode{}, fmt.Errorf("%w: code=%s", ErrPromocodeUsed, code)
	}
	// 上面的判断只是为了快速失败，真正的判断在事务里面
	res, err := s.repo.Redeem(ctx, p, uid, now.UnixMilli())
	if err != nil {
		return domain.Promocode{}, fmt.Errorf("兑换优惠码失败: %w", err)
	}
	s.sendRedeemedEvent(ctx, uid, res, now.UnixMilli())
	return res, nil
}

func (s *service) sendRedeemedEvent(ctx context.Context, uid int64, p domain.Promocode, usedAt int64) {
	evt := event.PromocodeRedeemedEvent{
		Key:         s.eventKeyGenerator(),
		Uid:         uid,
		PromocodeID: p.ID,
		Code:        p.Code,
		Payload:     p.Payload,
		UsedAt:      usedAt,
	}
	// 兑换已经成功，消息发送失败不回滚
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送优惠码兑换消息失败",
			elog.FieldErr(err),
			elog.String("code", p.Code),
			elog.Int64("uid", uid),
		)
	}
}

func (s *service) Use(ctx context.Context, code string, uid int64) (domain.Promocode, error) {
	return s.Redeem(ctx, code, uid)
}

func (s *service) Apply(ctx context.Context, code string, uid int64) (domain.Promocode, error) {
	return s.Redeem(ctx, code, uid)
}

func (s *service) Available(ctx context.Context, code string) (domain.Promocode, bool, error) {
	p, err := s.repo.FindSnapshot(ctx, code)
	if errors.Is(err, ErrPromocodeNotFound) {
		return domain.Promocode{}, false, nil
	}
	if err != nil {
		return domain.Promocode{}, false, err
	}
	if !p.IsRedeemable() {
		return domain.Promocode{}, false, nil
	}
	return p, true, nil
}
