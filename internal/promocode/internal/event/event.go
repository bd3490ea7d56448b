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

package event

import (
	"context"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/promocode/internal/pkg/mqx"
)

const PromocodeRedeemedEventName = "promocode_redeemed_events"

// PromocodeRedeemedEvent 兑换成功之后发出，业务方根据 Payload 发放权益
type PromocodeRedeemedEvent struct {
	Key         string         `json:"key"`
	Uid         int64          `json:"uid"`
	PromocodeID int64          `json:"promocode_id"`
	Code        string         `json:"code"`
	Payload     map[string]any `json:"payload"`
	UsedAt      int64          `json:"used_at"`
}

func (e PromocodeRedeemedEvent) MessageKey() string {
	return e.Key
}

//go:generate mockgen -source=./event.go -package=evtmocks -destination=./mocks/redeemed.mock.go RedeemedEventProducer
type RedeemedEventProducer interface {
	Produce(ctx context.Context, evt PromocodeRedeemedEvent) error
}

func NewRedeemedEventProducer(q mq.MQ) (RedeemedEventProducer, error) {
	p, err := mqx.NewGeneralProducer[PromocodeRedeemedEvent](q, PromocodeRedeemedEventName)
	if err != nil {
		return nil, err
	}
	return p, nil
}
