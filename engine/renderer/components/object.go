package components

import "github.com/spaghettifunk/resonance/engine/renderer/device"

// Object3D is the base of every scene object: it only carries the context
// the object was created on.
type Object3D struct {
	gl *device.Context
}

func NewObject3D(gl *device.Context) Object3D {
	return Object3D{gl: gl}
}

func (o *Object3D) Context() *device.Context {
	return o.gl
}
