// Package solid defines the convex primitives a ray batch can be traced
// against. Each solid is an immutable set of shape scalars centered on the
// origin; orientation and placement are the caller's concern.
package solid

import "fmt"

type Kind uint8

const (
	KindBox Kind = iota
	KindSphere
	KindCylinder
	KindPyramid
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	case KindPyramid:
		return "pyramid"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Solid describes one traceable primitive. Faces reports the number of
// candidate intersection slots each ray requires for this shape; it fixes
// the stride of the candidate time buffer.
type Solid interface {
	Type() Kind
	Faces() int
	Validate() error
}

// A rectangular box with full edge lengths X, Y, Z.
type Box struct {
	X, Y, Z float32
}

func (Box) Type() Kind { return KindBox }

// Six bounded planes: +X, -X, +Y, -Y, +Z, -Z.
func (Box) Faces() int { return 6 }

func (b Box) Validate() error {
	if b.X <= 0 || b.Y <= 0 || b.Z <= 0 {
		return fmt.Errorf("solid: box dimensions must be positive, got (%g, %g, %g)", b.X, b.Y, b.Z)
	}
	return nil
}

// A sphere of the given radius.
type Sphere struct {
	Radius float32
}

func (Sphere) Type() Kind { return KindSphere }

// At most two roots of a single quadratic.
func (Sphere) Faces() int { return 2 }

func (s Sphere) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("solid: sphere radius must be positive, got %g", s.Radius)
	}
	return nil
}

// A cylinder whose axis is Z, with the given radius and full height.
type Cylinder struct {
	Radius, Height float32
}

func (Cylinder) Type() Kind { return KindCylinder }

// Top cap, bottom cap and up to two side roots.
func (Cylinder) Faces() int { return 4 }

func (c Cylinder) Validate() error {
	if c.Radius <= 0 || c.Height <= 0 {
		return fmt.Errorf("solid: cylinder dimensions must be positive, got (r=%g, h=%g)", c.Radius, c.Height)
	}
	return nil
}

// A rectangular pyramid: base edge lengths X, Y in the z = -Height/2 plane,
// apex on the axis at z = +Height/2.
type Pyramid struct {
	X, Y, Height float32
}

func (Pyramid) Type() Kind { return KindPyramid }

// Base plane plus four slant triangles.
func (Pyramid) Faces() int { return 5 }

func (p Pyramid) Validate() error {
	if p.X <= 0 || p.Y <= 0 || p.Height <= 0 {
		return fmt.Errorf("solid: pyramid dimensions must be positive, got (%g, %g, h=%g)", p.X, p.Y, p.Height)
	}
	return nil
}
