// Package scene holds the scene graph, its single camera, and the routines
// that build, animate and render it.
package scene

import (
	"errors"
	"fmt"
)

// Scene is an unordered container of meshes, lights and helpers.
type Scene struct {
	// Background is an image path drawn behind everything once it has loaded.
	Background string

	meshes  []*Mesh
	lights  []*Light
	helpers []*Helper
	nextID  ObjectID
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add inserts objects into the scene and assigns their IDs. The batch is
// checked first: on error nothing is added. Adding an object twice is an
// error.
func (s *Scene) Add(objects ...Object) error {
	seen := make(map[*node]bool, len(objects))
	for i, o := range objects {
		n, err := checkObject(o)
		if err != nil {
			return fmt.Errorf("scene: object %d: %w", i, err)
		}
		if n.id != 0 || seen[n] {
			return fmt.Errorf("scene: %q already added", n.name)
		}
		seen[n] = true
	}

	for _, o := range objects {
		s.nextID++
		o.base().id = s.nextID

		switch obj := o.(type) {
		case *Mesh:
			s.meshes = append(s.meshes, obj)
		case *Light:
			s.lights = append(s.lights, obj)
		case *Helper:
			s.helpers = append(s.helpers, obj)
		}
	}
	return nil
}

func checkObject(o Object) (*node, error) {
	switch obj := o.(type) {
	case *Mesh:
		if obj == nil {
			return nil, errors.New("nil mesh")
		}
	case *Light:
		if obj == nil {
			return nil, errors.New("nil light")
		}
	case *Helper:
		if obj == nil {
			return nil, errors.New("nil helper")
		}
	default:
		return nil, fmt.Errorf("unsupported object type %T", o)
	}
	return o.base(), nil
}

// Meshes returns the scene's meshes in insertion order.
func (s *Scene) Meshes() []*Mesh { return s.meshes }

// Lights returns the scene's lights in insertion order.
func (s *Scene) Lights() []*Light { return s.lights }

// Helpers returns the scene's debug helpers in insertion order.
func (s *Scene) Helpers() []*Helper { return s.helpers }

// Len returns the total number of objects.
func (s *Scene) Len() int {
	return len(s.meshes) + len(s.lights) + len(s.helpers)
}

// Find returns the first object with the given name.
func (s *Scene) Find(name string) (Object, bool) {
	for _, m := range s.meshes {
		if m.name == name {
			return m, true
		}
	}
	for _, l := range s.lights {
		if l.name == name {
			return l, true
		}
	}
	for _, h := range s.helpers {
		if h.name == name {
			return h, true
		}
	}
	return nil, false
}
