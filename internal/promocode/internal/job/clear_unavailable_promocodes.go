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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/promocode/internal/promocode/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*ClearUnavailablePromocodesJob)(nil)

// ClearUnavailablePromocodesJob 定时清理已经过期、已经用完的优惠码
type ClearUnavailablePromocodesJob struct {
	svc     service.AdminService
	timeout time.Duration
	l       *elog.Component
}

func NewClearUnavailablePromocodesJob(svc service.AdminService, timeout time.Duration) *ClearUnavailablePromocodesJob {
	return &ClearUnavailablePromocodesJob{
		svc:     svc,
		timeout: timeout,
		l:       elog.DefaultLogger,
	}
}

func (c *ClearUnavailablePromocodesJob) Name() string {
	return "ClearUnavailablePromocodesJob"
}

func (c *ClearUnavailablePromocodesJob) Run(ctx context.Context) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	cleared, err := c.svc.Clear(ctx)
	if err != nil {
		return fmt.Errorf("清理优惠码失败: %w, cleared=%d", err, cleared)
	}
	c.l.Info("清理优惠码", elog.Int64("cleared", cleared))
	return nil
}
