// Copyright 2025 walteh LLC
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

package gcode

import (
	"regexp"
	"sync"
)

var settingRegexps sync.Map

// settingRegexp returns the cached matcher for a "key = number" setting
func settingRegexp(key string) *regexp.Regexp {
	if re, ok := settingRegexps.Load(key); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(regexp.QuoteMeta(key) + `\s*=\s*([0-9]*\.?[0-9]+)`)
	settingRegexps.Store(key, re)
	return re
}
