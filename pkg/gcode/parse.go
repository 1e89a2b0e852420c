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

/*
Package gcode holds the small line-level parsers used by the post-processing transforms.

It is not a G-code interpreter. Each parser recognizes one field of one kind of line and
reports whether the field is present; anything it does not recognize is "absent".

	id, ok := gcode.ToolSelect("T2 ; select tool")   // 2, true
	s, raw, ok := gcode.HeaterTarget("M104 S215 T1") // 215, "215", true
	pts, ok := gcode.Polygon("EXCLUDE_OBJECT_DEFINE NAME=a POLYGON=[[0,0],[10,0],[10,10]]")
*/
package gcode

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/walteh/gcodepost/pkg/geometry"
)

const (
	// LayerChangeMarker marks the start of a printed layer
	LayerChangeMarker = ";LAYER_CHANGE"
	// ExcludeObjectDefine starts a boundary-definition line
	ExcludeObjectDefine = "EXCLUDE_OBJECT_DEFINE"
	// TypePrefix starts a feature section marker such as ";TYPE:Brim"
	TypePrefix = ";TYPE:"
	// WidthPrefix starts a line width declaration such as ";WIDTH:0.42"
	WidthPrefix = ";WIDTH:"
)

var (
	reTool    = regexp.MustCompile(`(?i)^T(\d+)$`)
	reM104    = regexp.MustCompile(`(?i)^M104\b`)
	reSParam  = regexp.MustCompile(`(?i)\bS\s*(-?\d+(?:\.\d+)?)\b`)
	reX       = regexp.MustCompile(`X([0-9.-]+)`)
	reY       = regexp.MustCompile(`Y([0-9.-]+)`)
	rePolygon = regexp.MustCompile(`POLYGON=\[\[(.*?)\]\]`)
)

// Command returns the part of a line before any ';' comment, trimmed
func Command(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// IsComment reports whether the line, ignoring leading whitespace, is a comment
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), ";")
}

// IsBlank reports whether the line holds only whitespace
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsLayerChange reports whether the line carries the layer-change marker
func IsLayerChange(line string) bool {
	return strings.Contains(line, LayerChangeMarker)
}

// FirstToken returns the first whitespace separated word of the command part
func FirstToken(line string) string {
	fields := strings.Fields(Command(line))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// LeadingWhitespace returns the indentation of a line
func LeadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// 🔧 ToolSelect parses a tool-selection command ("T<n>") and returns its identifier
func ToolSelect(line string) (int, bool) {
	m := reTool.FindStringSubmatch(FirstToken(line))
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// 🔥 HeaterTarget parses a heater-set command ("M104 S<temp>") and returns the target
// temperature together with its original spelling
func HeaterTarget(line string) (float64, string, bool) {
	cmd := Command(line)
	if !reM104.MatchString(cmd) {
		return 0, "", false
	}
	m := reSParam.FindStringSubmatch(cmd)
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return v, m[1], true
}

// 📍 MoveXY parses the X and Y words of a linear move ("G1 X.. Y..")
func MoveXY(line string) (geometry.Point, bool) {
	cmd := strings.TrimSpace(line)
	if !strings.HasPrefix(cmd, "G1 ") {
		return geometry.Point{}, false
	}
	cmd = Command(cmd)
	xm := reX.FindStringSubmatch(cmd)
	ym := reY.FindStringSubmatch(cmd)
	if xm == nil || ym == nil {
		return geometry.Point{}, false
	}
	x, err := strconv.ParseFloat(xm[1], 64)
	if err != nil {
		return geometry.Point{}, false
	}
	y, err := strconv.ParseFloat(ym[1], 64)
	if err != nil {
		return geometry.Point{}, false
	}
	return geometry.Point{X: x, Y: y}, true
}

// 🔷 Polygon parses the POLYGON=[[x,y],...] list of a boundary-definition line
func Polygon(line string) ([]geometry.Point, bool) {
	if !strings.HasPrefix(line, ExcludeObjectDefine) {
		return nil, false
	}
	m := rePolygon.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	var points []geometry.Point
	for _, pair := range strings.Split(m[1], "],[") {
		xy := strings.Split(strings.Trim(pair, "[] "), ",")
		if len(xy) != 2 {
			return nil, false
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return nil, false
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return nil, false
		}
		points = append(points, geometry.Point{X: x, Y: y})
	}
	return points, len(points) > 0
}

// ⚙️ SettingFloat parses a numeric "key = value" slicer setting anywhere in the line
func SettingFloat(line, key string) (float64, bool) {
	if !strings.Contains(line, key) {
		return 0, false
	}
	re := settingRegexp(key)
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SectionType returns the feature type of a ";TYPE:<name>" marker line
func SectionType(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, TypePrefix) {
		return "", false
	}
	return s[len(TypePrefix):], true
}

// Width returns the declared line width of a ";WIDTH:<mm>" line
func Width(line string) (float64, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, WidthPrefix) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[len(WidthPrefix):]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
