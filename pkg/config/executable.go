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

package config

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔎 ResolveExecutable expands a glob pattern such as "/opt/klipper_estimator*" to the
// first matching path. Plain paths are returned unchanged.
func ResolveExecutable(pattern string) (string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return pattern, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", errors.Errorf("expanding %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", errors.Errorf("no executable matches %q", pattern)
	}

	sort.Strings(matches)
	return matches[0], nil
}
