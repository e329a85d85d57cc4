// Copyright 2022 Huawei Cloud Computing Technologies Co., Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Validator interface {
	Validate() error
}

// Engine is the full configuration of the engine process.
type Engine struct {
	Logging Logger `toml:"logging"`
	Query   Query  `toml:"query"`
}

func NewEngine() Engine {
	return Engine{
		Logging: NewLogger(),
		Query:   NewQuery(),
	}
}

func (c Engine) Validate() error {
	items := []Validator{
		c.Logging,
		c.Query,
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func Parse(conf Validator, p string) error {
	if p == "" {
		return nil
	}

	return fromTomlFile(conf, p)
}

func fromTomlFile(c Validator, p string) error {
	content, err := os.ReadFile(path.Clean(p))
	if err != nil {
		return err
	}

	// strip a possible byte order mark before decoding
	dec := unicode.BOMOverride(transform.Nop)
	content, _, err = transform.Bytes(dec, content)
	if err != nil {
		return err
	}

	return fromToml(c, string(content))
}

func fromToml(c Validator, content string) error {
	_, err := toml.Decode(content, c)
	if err != nil {
		return err
	}
	return c.Validate()
}
