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

package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/ecodeclub/ekit/set"
)

// Generator 按照 Pattern 生成兑换码
type Generator struct {
	pattern     Pattern
	randIndex   func(n int) (int, error)
	maxAttempts int
}

type Option func(g *Generator)

// WithRandSource 替换随机源，返回 [0, n) 之间的整数
func WithRandSource(fn func(n int) (int, error)) Option {
	return func(g *Generator) {
		g.randIndex = fn
	}
}

// WithMaxAttempts 连续生成到重复兑换码的次数上限，0 表示不限
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		g.maxAttempts = n
	}
}

func NewGenerator(p Pattern, opts ...Option) *Generator {
	g := &Generator{
		pattern:   p,
		randIndex: cryptoRandIndex,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func cryptoRandIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Generate 生成一个兑换码，不检查是否重复
func (g *Generator) Generate() (string, error) {
	body := slices.Clone(g.pattern.mask)
	alphabet := g.pattern.alphabet
	for _, pos := range g.pattern.slots {
		idx, err := g.randIndex(len(alphabet))
		if err != nil {
			return "", fmt.Errorf("获取随机数失败: %w", err)
		}
		body[pos] = alphabet[idx]
	}
	var sb strings.Builder
	if g.pattern.prefix != "" {
		sb.WriteString(g.pattern.prefix)
		sb.WriteString(g.pattern.delimiter)
	}
	sb.WriteString(string(body))
	if g.pattern.suffix != "" {
		sb.WriteString(g.pattern.delimiter)
		sb.WriteString(g.pattern.suffix)
	}
	return sb.String(), nil
}

// Batch 生成 amount 个兑换码，结果之间互不重复，也不会和 existing 重复。
// 顺序即生成顺序。
func (g *Generator) Batch(amount int, existing []string) ([]string, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount=%d", ErrInvalidConfig, amount)
	}
	seen := set.NewMapSet[string](len(existing) + amount)
	for _, code := range existing {
		seen.Add(code)
	}
	res := make([]string, 0, amount)
	for len(res) < amount {
		code, err := g.next(seen)
		if err != nil {
			return nil, err
		}
		seen.Add(code)
		res = append(res, code)
	}
	return res, nil
}

func (g *Generator) next(seen *set.MapSet[string]) (string, error) {
	for attempts := 1; ; attempts++ {
		code, err := g.Generate()
		if err != nil {
			return "", err
		}
		if !seen.Exist(code) {
			return code, nil
		}
		if g.maxAttempts > 0 && attempts >= g.maxAttempts {
			return "", fmt.Errorf("%w: 连续 %d 次生成重复的兑换码，可用组合可能已经耗尽", ErrInvalidConfig, attempts)
		}
	}
}
