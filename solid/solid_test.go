package solid

import "testing"

func TestValidate(t *testing.T) {
	type spec struct {
		sol    Solid
		expErr bool
	}
	specs := []spec{
		{Box{X: 1, Y: 2, Z: 3}, false},
		{Box{X: 0, Y: 2, Z: 3}, true},
		{Box{X: 1, Y: -2, Z: 3}, true},
		{Sphere{Radius: 1}, false},
		{Sphere{Radius: 0}, true},
		{Cylinder{Radius: 1, Height: 2}, false},
		{Cylinder{Radius: 1, Height: 0}, true},
		{Cylinder{Radius: -1, Height: 2}, true},
		{Pyramid{X: 2, Y: 2, Height: 2}, false},
		{Pyramid{X: 2, Y: 0, Height: 2}, true},
	}

	for index, s := range specs {
		err := s.sol.Validate()
		if s.expErr && err == nil {
			t.Fatalf("[spec %d] expected %s validation to fail", index, s.sol.Type())
		}
		if !s.expErr && err != nil {
			t.Fatalf("[spec %d] expected %s to validate; got %v", index, s.sol.Type(), err)
		}
	}
}

func TestFaces(t *testing.T) {
	type spec struct {
		sol      Solid
		expFaces int
	}
	specs := []spec{
		{Box{}, 6},
		{Sphere{}, 2},
		{Cylinder{}, 4},
		{Pyramid{}, 5},
	}

	for index, s := range specs {
		if got := s.sol.Faces(); got != s.expFaces {
			t.Fatalf("[spec %d] expected %s to report %d candidate slots; got %d", index, s.sol.Type(), s.expFaces, got)
		}
	}
}
