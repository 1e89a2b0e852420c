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

package transform

import (
	"math"
	"strconv"
	"strings"
)

// formatDecimal renders v in shortest form, always with a decimal point: 5 -> "5.0", 5.2 -> "5.2"
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatCompact renders v like a C "%g": 213 -> "213", 213.5 -> "213.5"
func formatCompact(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// commentOut neutralizes a line, keeping its original text after the label
func commentOut(label, line string) string {
	return "; " + label + ": " + strings.TrimRight(line, " \t")
}
