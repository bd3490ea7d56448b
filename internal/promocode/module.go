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

package promocode

import (
	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/ecodeclub/promocode/internal/promocode/internal/event"
	"github.com/ecodeclub/promocode/internal/promocode/internal/job"
	"github.com/ecodeclub/promocode/internal/promocode/internal/service"
	"github.com/ecodeclub/promocode/internal/promocode/internal/web"
)

type (
	Promocode                     = domain.Promocode
	Redemption                    = domain.Redemption
	Batch                         = domain.Batch
	Config                        = domain.Config
	Service                       = service.Service
	AdminService                  = service.AdminService
	Handler                       = web.Handler
	AdminHandler                  = web.AdminHandler
	ClearUnavailablePromocodesJob = job.ClearUnavailablePromocodesJob
	RedeemedEvent                 = event.PromocodeRedeemedEvent
)

const RedeemedEventName = event.PromocodeRedeemedEventName

var (
	ErrInvalidConfig        = service.ErrInvalidConfig
	ErrDuplicateCode        = service.ErrDuplicateCode
	ErrPromocodeNotFound    = service.ErrPromocodeNotFound
	ErrPromocodeUnavailable = service.ErrPromocodeUnavailable
	ErrPromocodeUsed        = service.ErrPromocodeUsed
	ErrUnauthorized         = service.ErrUnauthorized
)

// IsIneligible 兑换失败是因为优惠码本身不满足条件，而不是系统错误
func IsIneligible(err error) bool {
	return service.IsIneligible(err)
}

type Module struct {
	Svc      Service
	AdminSvc AdminService
	Hdl      *Handler
	AdminHdl *AdminHandler
	ClearJob *ClearUnavailablePromocodesJob
}
