package device

import "github.com/spaghettifunk/resonance/engine/core"

// Handles are numbered per category, a ShaderID and a BufferID with the same
// value name unrelated objects. Distinct types keep them from being mixed up.
type (
	ContextID core.Handle
	ShaderID  core.Handle
	ProgramID core.Handle
	BufferID  core.Handle
	TextureID core.Handle
	UniformID core.Handle
	ImageID   core.Handle
)

const (
	InvalidContext = ContextID(core.InvalidHandle)
	InvalidShader  = ShaderID(core.InvalidHandle)
	InvalidProgram = ProgramID(core.InvalidHandle)
	InvalidBuffer  = BufferID(core.InvalidHandle)
	InvalidTexture = TextureID(core.InvalidHandle)
	InvalidUniform = UniformID(core.InvalidHandle)
	InvalidImage   = ImageID(core.InvalidHandle)
)

func (id ContextID) Valid() bool { return core.Handle(id).Valid() }
func (id ShaderID) Valid() bool  { return core.Handle(id).Valid() }
func (id ProgramID) Valid() bool { return core.Handle(id).Valid() }
func (id BufferID) Valid() bool  { return core.Handle(id).Valid() }
func (id TextureID) Valid() bool { return core.Handle(id).Valid() }
func (id UniformID) Valid() bool { return core.Handle(id).Valid() }
func (id ImageID) Valid() bool   { return core.Handle(id).Valid() }
