// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gfx-go/render2d/gl"
)

// BufferUsage hints how often a vertex buffer will be rewritten.
type BufferUsage uint8

const (
	BufferStatic BufferUsage = iota
	BufferDynamic
	BufferStream
)

func (u BufferUsage) glUsage() gl.Enum {
	switch u {
	case BufferDynamic:
		return gl.DYNAMIC_DRAW
	case BufferStream:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

// VertexBuffer is GPU-resident vertex storage. Drawing from one skips the
// per-draw client-array upload; the trade-off is an explicit Update step.
type VertexBuffer struct {
	ctx       Context
	handle    gl.Buffer
	count     int
	primitive PrimitiveType
	usage     BufferUsage
}

// BuffersAvailable reports whether the context supports vertex buffers.
func BuffersAvailable(ctx Context) bool {
	return ctx.Caps().VertexBufferObject
}

// NewVertexBuffer creates an empty vertex buffer.
func NewVertexBuffer(ctx Context, primitive PrimitiveType, usage BufferUsage) (*VertexBuffer, error) {
	if !BuffersAvailable(ctx) {
		return nil, errors.New("render: vertex buffers not available on this context")
	}
	f := ctx.Functions()
	handle := f.CreateBuffer()
	if !handle.Valid() {
		return nil, errors.New("render: buffer creation failed")
	}
	return &VertexBuffer{
		ctx:       ctx,
		handle:    handle,
		primitive: primitive,
		usage:     usage,
	}, nil
}

// Update replaces the buffer contents.
func (b *VertexBuffer) Update(verts []Vertex) error {
	if b == nil || !b.handle.Valid() {
		return errors.New("render: update of invalid vertex buffer")
	}
	if len(verts) == 0 {
		return fmt.Errorf("render: empty vertex buffer update")
	}
	f := b.ctx.Functions()
	f.BindBuffer(gl.ARRAY_BUFFER, b.handle)
	f.BufferData(gl.ARRAY_BUFFER, len(verts)*vertexStride, b.usage.glUsage())
	f.BufferSubData(gl.ARRAY_BUFFER, 0, vertexBytes(verts))
	f.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	glCheck(f, "glBufferSubData")
	b.count = len(verts)
	return nil
}

// VertexCount returns the number of vertices in the buffer.
func (b *VertexBuffer) VertexCount() int {
	return b.count
}

// Primitive returns the primitive the buffer was created for.
func (b *VertexBuffer) Primitive() PrimitiveType {
	return b.primitive
}

// NativeHandle exposes the driver handle for interop with external GL code.
func (b *VertexBuffer) NativeHandle() gl.Buffer {
	return b.handle
}

// Release deletes the driver object.
func (b *VertexBuffer) Release() {
	if b.handle.Valid() {
		b.ctx.Functions().DeleteBuffer(b.handle)
		b.handle = gl.Buffer{}
		b.count = 0
	}
}
