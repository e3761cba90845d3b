package renderer

// staleHandle marks a cache slot whose native state is unknown, so the next
// bind is always issued.
const staleHandle Handle = ^Handle(0)

// Bindings remembers the last handle bound per kind so redundant binds are
// skipped. It belongs to one GL context.
type Bindings struct {
	device GraphicsDevice

	buffers     [bufferTargetCount]Handle
	vertexArray Handle
	program     Handle
	textures    map[uint32]Handle
}

func NewBindings(device GraphicsDevice) *Bindings {
	return &Bindings{
		device:   device,
		textures: make(map[uint32]Handle),
	}
}

// BindBuffer binds buffer to target unless it is already bound. It reports
// whether a native call was issued.
func (b *Bindings) BindBuffer(target BufferTarget, buffer Handle) bool {
	if b.buffers[target] == buffer {
		return false
	}
	b.device.BindBuffer(target, buffer)
	b.buffers[target] = buffer
	return true
}

// ReleaseBuffer unbinds buffer from every target it is bound to.
func (b *Bindings) ReleaseBuffer(buffer Handle) {
	for target := BufferTarget(0); target < bufferTargetCount; target++ {
		if b.buffers[target] == buffer {
			b.BindBuffer(target, InvalidHandle)
		}
	}
}

func (b *Bindings) BoundBuffer(target BufferTarget) Handle {
	return b.buffers[target]
}

func (b *Bindings) BindVertexArray(vao Handle) bool {
	if b.vertexArray == vao {
		return false
	}
	b.device.BindVertexArray(vao)
	b.vertexArray = vao
	// the element buffer binding is vertex array state
	b.buffers[ElementArrayBuffer] = staleHandle
	return true
}

func (b *Bindings) ReleaseVertexArray(vao Handle) {
	if b.vertexArray == vao {
		b.BindVertexArray(InvalidHandle)
	}
}

func (b *Bindings) BoundVertexArray() Handle {
	return b.vertexArray
}

func (b *Bindings) UseProgram(program Handle) bool {
	if b.program == program {
		return false
	}
	b.device.UseProgram(program)
	b.program = program
	return true
}

func (b *Bindings) ReleaseProgram(program Handle) {
	if b.program == program {
		b.UseProgram(InvalidHandle)
	}
}

func (b *Bindings) BoundProgram() Handle {
	return b.program
}

func (b *Bindings) BindTexture(unit uint32, texture Handle) bool {
	if b.textures[unit] == texture {
		return false
	}
	b.device.BindTextureUnit(unit, texture)
	b.textures[unit] = texture
	return true
}

// ReleaseTexture unbinds texture from every unit it is bound to.
func (b *Bindings) ReleaseTexture(texture Handle) {
	for unit, bound := range b.textures {
		if bound == texture {
			b.BindTexture(unit, InvalidHandle)
		}
	}
}

func (b *Bindings) BoundTexture(unit uint32) Handle {
	return b.textures[unit]
}

// Invalidate forgets every cached binding, for use after external code touched GL state.
func (b *Bindings) Invalidate() {
	for i := range b.buffers {
		b.buffers[i] = staleHandle
	}
	b.vertexArray = staleHandle
	b.program = staleHandle
	for unit := range b.textures {
		b.textures[unit] = staleHandle
	}
}
