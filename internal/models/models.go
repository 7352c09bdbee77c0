package models

import (
	"math"

	"github.com/google/uuid"
)

type Point2D struct {
	X, Y float64
}

type Point3D struct {
	X, Y, Z float64
}

func (p Point2D) Sub(q Point2D) Point2D   { return Point2D{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point2D) Add(q Point2D) Point2D   { return Point2D{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point2D) Scale(s float64) Point2D { return Point2D{X: p.X * s, Y: p.Y * s} }
func (p Point2D) Dot(q Point2D) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point2D) Len() float64            { return math.Hypot(p.X, p.Y) }
func (p Point2D) Lift(z float64) Point3D  { return Point3D{X: p.X, Y: p.Y, Z: z} }
func (p Point3D) Add(q Point3D) Point3D   { return Point3D{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z} }
func (p Point3D) Scale(s float64) Point3D { return Point3D{X: p.X * s, Y: p.Y * s, Z: p.Z * s} }
func (p Point3D) Sub(q Point3D) Point3D   { return Point3D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z} }
func (p Point3D) Planar(xz bool) Point2D {
	if xz {
		return Point2D{X: p.X, Y: p.Z}
	}
	return Point2D{X: p.X, Y: p.Y}
}

// Stroke is one pointer-down to pointer-up path. World is either empty or
// parallel to Points.
type Stroke struct {
	ID            uuid.UUID
	Points        []Point2D
	World         []Point3D
	UnitsPerPixel float64
}

// NewStroke wraps points that are already in pixel units.
func NewStroke(points []Point2D) *Stroke {
	return &Stroke{ID: uuid.New(), Points: points, UnitsPerPixel: 1}
}

func (s *Stroke) Len() int { return len(s.Points) }

// WorldAt returns the world point recorded with sample i, or the 2D sample
// lifted onto z=0 when no world points were captured.
func (s *Stroke) WorldAt(i int) Point3D {
	if i < 0 {
		i = 0
	}
	if len(s.World) > 0 {
		if i >= len(s.World) {
			i = len(s.World) - 1
		}
		return s.World[i]
	}
	if i >= len(s.Points) {
		i = len(s.Points) - 1
	}
	return s.Points[i].Lift(0)
}

// Scale converts pixel lengths into stroke units.
func (s *Stroke) Scale() float64 {
	if s.UnitsPerPixel <= 0 {
		return 1
	}
	return math.Max(1e-6, s.UnitsPerPixel)
}

type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

type InputEvent struct {
	Type   EventType
	Screen Point2D
	OverUI bool
}
