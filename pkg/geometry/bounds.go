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

// Package geometry derives axis-aligned bounds and clearances from toolpath coordinates.
package geometry

import "math"

// Point is an X/Y coordinate in millimetres
type Point struct {
	X, Y float64
}

// Bounds is an axis-aligned bounding rectangle. It is never mutated after construction.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// BoundsOf returns the bounding rectangle of the points, or false when there are none
func BoundsOf(points []Point) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b, true
}

// Expand grows the rectangle outward by d on every side
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{
		MinX: b.MinX - d, MaxX: b.MaxX + d,
		MinY: b.MinY - d, MaxY: b.MaxY + d,
	}
}

// Outside reports whether p lies strictly outside b grown by tolerance
func (b Bounds) Outside(p Point, tolerance float64) bool {
	return p.X < b.MinX-tolerance || p.X > b.MaxX+tolerance ||
		p.Y < b.MinY-tolerance || p.Y > b.MaxY+tolerance
}

// Clearance is the distance from each edge of an inner rectangle to the matching edge of an outer one
type Clearance struct {
	Left, Right, Bottom, Top float64
}

// ClearanceTo measures how far outer extends beyond b on each side
func (b Bounds) ClearanceTo(outer Bounds) Clearance {
	return Clearance{
		Left:   b.MinX - outer.MinX,
		Right:  outer.MaxX - b.MaxX,
		Bottom: b.MinY - outer.MinY,
		Top:    outer.MaxY - b.MaxY,
	}
}

// Max returns the largest of the four clearances
func (c Clearance) Max() float64 {
	return math.Max(math.Max(c.Left, c.Right), math.Max(c.Bottom, c.Top))
}
