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
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ecodeclub/ekit/set"
	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
)

const (
	placeholder = '*'
	// MaxCodeLength 兑换码列的长度
	MaxCodeLength = 32
)

var ErrInvalidConfig = errors.New("兑换码生成规则非法")

// Pattern 编译后的生成规则
type Pattern struct {
	mask      []rune
	slots     []int
	alphabet  []rune
	prefix    string
	suffix    string
	delimiter string
}

func Compile(p domain.Pattern) (Pattern, error) {
	mask := []rune(p.Mask)
	slots := make([]int, 0, len(mask))
	for i, r := range mask {
		if r == placeholder {
			slots = append(slots, i)
		}
	}
	if len(slots) == 0 {
		return Pattern{}, fmt.Errorf("%w: mask %q 中没有占位符", ErrInvalidConfig, p.Mask)
	}
	alphabet := dedup([]rune(p.Characters))
	if len(alphabet) == 0 {
		return Pattern{}, fmt.Errorf("%w: 字符集为空", ErrInvalidConfig)
	}
	res := Pattern{
		mask:      mask,
		slots:     slots,
		alphabet:  alphabet,
		prefix:    p.Prefix,
		suffix:    p.Suffix,
		delimiter: p.Delimiter,
	}
	if l := res.Length(); l > MaxCodeLength {
		return Pattern{}, fmt.Errorf("%w: 兑换码长度 %d 超过 %d", ErrInvalidConfig, l, MaxCodeLength)
	}
	return res, nil
}

func dedup(chars []rune) []rune {
	seen := set.NewMapSet[rune](len(chars))
	res := make([]rune, 0, len(chars))
	for _, c := range chars {
		if seen.Exist(c) {
			continue
		}
		seen.Add(c)
		res = append(res, c)
	}
	return res
}

func (p Pattern) SlotCount() int {
	return len(p.slots)
}

func (p Pattern) Alphabet() []rune {
	return p.alphabet
}

// Length 生成的兑换码的字符数
func (p Pattern) Length() int {
	l := len(p.mask)
	delimiterLen := utf8.RuneCountInString(p.delimiter)
	if p.prefix != "" {
		l += utf8.RuneCountInString(p.prefix) + delimiterLen
	}
	if p.suffix != "" {
		l += utf8.RuneCountInString(p.suffix) + delimiterLen
	}
	return l
}
