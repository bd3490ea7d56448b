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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository"
	"github.com/ecodeclub/promocode/internal/promocode/internal/service/generator"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=./admin.go -package=promocodemocks -destination=../../mocks/admin.mock.go AdminService
type AdminService interface {
	// Output 只生成兑换码，不落库
	Output(ctx context.Context, b domain.Batch) ([]string, error)
	Create(ctx context.Context, b domain.Batch) ([]domain.Promocode, error)
	// Disable 让优惠码立刻过期，找不到时返回 false
	Disable(ctx context.Context, code string) (bool, error)
	// Expire 等价于 Disable
	Expire(ctx context.Context, code string) (bool, error)
	// Dispose 等价于 Disable
	Dispose(ctx context.Context, code string) (bool, error)
	// Delete 删除优惠码和它的兑换记录
	Delete(ctx context.Context, code string) (bool, error)
	Restore(ctx context.Context, code string) (bool, error)
	// Clear 删除所有不能再兑换的优惠码，返回删除的个数
	Clear(ctx context.Context) (int64, error)
	AllAvailable(ctx context.Context) ([]domain.Promocode, error)
	List(ctx context.Context, offset, limit int) ([]domain.Promocode, int64, error)
	Detail(ctx context.Context, code string) (domain.Promocode, error)
}

type adminService struct {
	repo   repository.PromocodeRepository
	cfg    domain.Config
	logger *elog.Component
}

func NewAdminService(repo repository.PromocodeRepository, cfg domain.Config) AdminService {
	return &adminService{
		repo:   repo,
		cfg:    cfg,
		logger: elog.DefaultLogger,
	}
}

func (a *adminService) newGenerator(b domain.Batch) (*generator.Generator, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	p, err := generator.Compile(a.cfg.Pattern().Merge(b.Pattern))
	if err != nil {
		return nil, err
	}
	return generator.NewGenerator(p, generator.WithMaxAttempts(a.cfg.MaxAttempts)), nil
}

func (a *adminService) Output(ctx context.Context, b domain.Batch) ([]string, error) {
	g, err := a.newGenerator(b)
	if err != nil {
		return nil, err
	}
	return a.output(ctx, g, b.Amount)
}

func (a *adminService) output(ctx context.Context, g *generator.Generator, amount int) ([]string, error) {
	existing, err := a.repo.LiveCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询已有的兑换码失败: %w", err)
	}
	return g.Batch(amount, existing)
}

func (a *adminService) Create(ctx context.Context, b domain.Batch) ([]domain.Promocode, error) {
	g, err := a.newGenerator(b)
	if err != nil {
		return nil, err
	}
	for i := 0; ; i++ {
		codes, err := a.output(ctx, g, b.Amount)
		if err != nil {
			return nil, err
		}
		if len(codes) == 0 {
			return []domain.Promocode{}, nil
		}
		now := time.Now()
		res, err := a.repo.Create(ctx, slice.Map(codes, func(idx int, src string) domain.Promocode {
			return a.newPromocode(src, b, now)
		}))
		if err == nil {
			return res, nil
		}
		// 生成之后、落库之前别人插入了同样的兑换码，重新生成
		if !errors.Is(err, ErrDuplicateCode) || i >= a.cfg.CreateRetries {
			return nil, err
		}
		a.logger.Warn("兑换码冲突，重新生成", elog.Int("retry", i+1), elog.FieldErr(err))
	}
}

func (a *adminService) newPromocode(code string, b domain.Batch, now time.Time) domain.Promocode {
	p := domain.Promocode{
		Code:         code,
		Payload:      b.Payload,
		Disposable:   b.Disposable,
		AuthRequired: b.AuthRequired,
	}
	if b.Quantity != nil {
		quantity := *b.Quantity
		p.Quantity = &quantity
	}
	if b.ExpiresIn > 0 {
		p.ExpiresAt = now.AddDate(0, 0, b.ExpiresIn).UnixMilli()
	}
	return p
}

func (a *adminService) Disable(ctx context.Context, code string) (bool, error) {
	p, err := a.repo.FindByCode(ctx, code)
	if errors.Is(err, ErrPromocodeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = a.repo.Disable(ctx, p, time.Now().UnixMilli()); err != nil {
		return false, fmt.Errorf("禁用优惠码失败: %w, code=%s", err, code)
	}
	return true, nil
}

func (a *adminService) Expire(ctx context.Context, code string) (bool, error) {
	return a.Disable(ctx, code)
}

func (a *adminService) Dispose(ctx context.Context, code string) (bool, error) {
	return a.Disable(ctx, code)
}

func (a *adminService) Delete(ctx context.Context, code string) (bool, error) {
	p, err := a.repo.FindByCode(ctx, code)
	if errors.Is(err, ErrPromocodeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = a.repo.Delete(ctx, p); err != nil {
		return false, fmt.Errorf("删除优惠码失败: %w, code=%s", err, code)
	}
	return true, nil
}

func (a *adminService) Restore(ctx context.Context, code string) (bool, error) {
	p, err := a.repo.FindDeletedByCode(ctx, code)
	if errors.Is(err, ErrPromocodeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = a.repo.Restore(ctx, p); err != nil {
		return false, fmt.Errorf("恢复优惠码失败: %w, code=%s", err, code)
	}
	return true, nil
}

func (a *adminService) Clear(ctx context.Context) (int64, error) {
	var (
		lastID  int64
		cleared int64
	)
	now := time.Now()
	limit := a.cfg.ClearBatchSize
	for {
		ps, err := a.repo.ListAfter(ctx, lastID, limit)
		if err != nil {
			return cleared, fmt.Errorf("查询优惠码失败: %w", err)
		}
		for _, p := range ps {
			if p.IsRedeemableAt(now) {
				continue
			}
			if err = a.repo.Delete(ctx, p); err != nil {
				return cleared, fmt.Errorf("清理优惠码失败: %w, code=%s", err, p.Code)
			}
			cleared++
		}
		if len(ps) < limit {
			return cleared, nil
		}
		lastID = ps[len(ps)-1].ID
	}
}

func (a *adminService) AllAvailable(ctx context.Context) ([]domain.Promocode, error) {
	ps, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return slice.FindAll(ps, func(src domain.Promocode) bool {
		return src.IsRedeemableAt(now)
	}), nil
}

func (a *adminService) List(ctx context.Context, offset, limit int) ([]domain.Promocode, int64, error) {
	var (
		eg    errgroup.Group
		ps    []domain.Promocode
		total int64
	)
	eg.Go(func() error {
		var err error
		ps, err = a.repo.List(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = a.repo.Total(ctx)
		return err
	})
	err := eg.Wait()
	return ps, total, err
}

func (a *adminService) Detail(ctx context.Context, code string) (domain.Promocode, error) {
	return a.repo.FindDetail(ctx, code)
}
