package native

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/dotscreen"
)

//go:embed shaders/static.wgsl
var staticShaderWGSL string

// gpuTimeout bounds every fence wait; a stuck device fails the tick instead
// of hanging the loop.
const gpuTimeout = 5 * time.Second

// Stage renders the static effect on the GPU. It owns an RGBA8 target
// texture sized to the low target resolution and a single render pipeline;
// per-frame resources (uniform buffer, bind group) are created and destroyed
// inside Render.
//
// A Stage is not safe for concurrent use; the pipeline serializes access.
type Stage struct {
	device hal.Device
	queue  hal.Queue

	width  uint32
	height uint32

	target     hal.Texture
	targetView hal.TextureView

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	released bool
}

// NewStage creates a GPU stage with a w x h target on an opened device.
// The caller keeps ownership of the device and queue.
func NewStage(device hal.Device, queue hal.Queue, w, h int) (*Stage, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	s := &Stage{device: device, queue: queue}

	if err := s.createPipeline(); err != nil {
		return nil, err
	}
	if err := s.createTarget(uint32(w), uint32(h)); err != nil {
		s.destroyPipeline()
		return nil, err
	}
	return s, nil
}

// createPipeline compiles the effect shader and builds the render pipeline.
func (s *Stage) createPipeline() error {
	spirvBytes, err := naga.Compile(staticShaderWGSL)
	if err != nil {
		return fmt.Errorf("native: compile static shader: %w", err)
	}
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	shader, err := s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "static_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("native: create shader module: %w", err)
	}
	s.shader = shader

	uniformLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "static_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		s.destroyPipeline()
		return fmt.Errorf("native: create uniform layout: %w", err)
	}
	s.uniformLayout = uniformLayout

	pipeLayout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "static_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.uniformLayout},
	})
	if err != nil {
		s.destroyPipeline()
		return fmt.Errorf("native: create pipeline layout: %w", err)
	}
	s.pipeLayout = pipeLayout

	pipeline, err := s.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "static_pipeline",
		Layout: s.pipeLayout,
		Vertex: hal.VertexState{
			Module:     s.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     s.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		s.destroyPipeline()
		return fmt.Errorf("native: create render pipeline: %w", err)
	}
	s.pipeline = pipeline
	return nil
}

// createTarget allocates the render target texture and view.
func (s *Stage) createTarget(w, h uint32) error {
	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "static_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("native: create target texture: %w", err)
	}
	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "static_target_view",
	})
	if err != nil {
		s.device.DestroyTexture(tex)
		return fmt.Errorf("native: create target view: %w", err)
	}
	s.target = tex
	s.targetView = view
	s.width = w
	s.height = h
	return nil
}

// Size returns the current target dimensions.
func (s *Stage) Size() (w, h int) {
	return int(s.width), int(s.height)
}

// Resize replaces the target texture. The new texture is created before the
// old one is destroyed; on failure the stage keeps its previous target.
func (s *Stage) Resize(w, h int) error {
	if s.released {
		return ErrStageReleased
	}
	if uint32(w) == s.width && uint32(h) == s.height {
		return nil
	}

	oldTex, oldView := s.target, s.targetView
	if err := s.createTarget(uint32(w), uint32(h)); err != nil {
		s.target, s.targetView = oldTex, oldView
		return err
	}
	s.device.DestroyTextureView(oldView)
	s.device.DestroyTexture(oldTex)
	return nil
}

// Render draws one frame of the effect into the target texture and waits
// for completion.
func (s *Stage) Render(t float64, p *dotscreen.Params) error {
	if s.released {
		return ErrStageReleased
	}
	if p == nil {
		def := dotscreen.DefaultParams()
		p = &def
	}

	uniformBuf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "static_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create uniform buffer: %w", err)
	}
	defer s.device.DestroyBuffer(uniformBuf)
	s.queue.WriteBuffer(uniformBuf, 0, packUniforms(s.width, s.height, t, p))

	bindGroup, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "static_bind",
		Layout: s.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group: %w", err)
	}
	defer s.device.DestroyBindGroup(bindGroup)

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "static_encoder",
	})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("static_frame"); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "static_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       s.targetView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	rp.SetPipeline(s.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	return s.submitAndWait(cmdBuf)
}

// Readback copies the rendered target into dst (RGBA, width*height*4 bytes).
// The copy goes through a staging buffer with the 256-byte row pitch the
// copy path requires; padding is stripped while writing into dst. dst is
// only written after the GPU copy completed, so a failed readback leaves it
// untouched.
func (s *Stage) Readback(dst []byte) error {
	if s.released {
		return ErrStageReleased
	}
	want := int(s.width) * int(s.height) * 4
	if len(dst) != want {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrBufferSize, want, len(dst))
	}

	bytesPerRow := s.width * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(s.height)

	stagingBuf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "static_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("%w: create staging buffer: %v", ErrReadbackFailed, err)
	}
	defer s.device.DestroyBuffer(stagingBuf)

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "static_readback_encoder",
	})
	if err != nil {
		return fmt.Errorf("%w: create encoder: %v", ErrReadbackFailed, err)
	}
	if err := encoder.BeginEncoding("static_readback"); err != nil {
		return fmt.Errorf("%w: begin encoding: %v", ErrReadbackFailed, err)
	}

	// The copy path requires the texture in CopySrc; transition back after
	// so the next frame's render pass sees RenderAttachment.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(s.target, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  alignedBytesPerRow,
			RowsPerImage: s.height,
		},
		TextureBase: hal.ImageCopyTexture{Texture: s.target, MipLevel: 0},
		Size:        hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("%w: end encoding: %v", ErrReadbackFailed, err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	if err := s.submitAndWait(cmdBuf); err != nil {
		return fmt.Errorf("%w: %v", ErrReadbackFailed, err)
	}

	readback := make([]byte, stagingSize)
	if err := s.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("%w: read staging buffer: %v", ErrReadbackFailed, err)
	}

	if alignedBytesPerRow == bytesPerRow {
		copy(dst, readback[:want])
		return nil
	}
	for row := uint32(0); row < s.height; row++ {
		srcOff := int(row) * int(alignedBytesPerRow)
		dstOff := int(row) * int(bytesPerRow)
		copy(dst[dstOff:dstOff+int(bytesPerRow)], readback[srcOff:srcOff+int(bytesPerRow)])
	}
	return nil
}

// submitAndWait submits one command buffer and blocks on its fence.
func (s *Stage) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := s.device.CreateFence()
	if err != nil {
		return fmt.Errorf("native: create fence: %w", err)
	}
	defer s.device.DestroyFence(fence)

	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	ok, err := s.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !ok {
		return fmt.Errorf("native: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Release destroys the target and pipeline. Release is idempotent; the
// device itself stays open for the caller.
func (s *Stage) Release() {
	if s.released {
		return
	}
	s.released = true

	if s.targetView != nil {
		s.device.DestroyTextureView(s.targetView)
		s.targetView = nil
	}
	if s.target != nil {
		s.device.DestroyTexture(s.target)
		s.target = nil
	}
	s.destroyPipeline()
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (s *Stage) destroyPipeline() {
	if s.pipeline != nil {
		s.device.DestroyRenderPipeline(s.pipeline)
		s.pipeline = nil
	}
	if s.pipeLayout != nil {
		s.device.DestroyPipelineLayout(s.pipeLayout)
		s.pipeLayout = nil
	}
	if s.uniformLayout != nil {
		s.device.DestroyBindGroupLayout(s.uniformLayout)
		s.uniformLayout = nil
	}
	if s.shader != nil {
		s.device.DestroyShaderModule(s.shader)
		s.shader = nil
	}
}

var _ dotscreen.Stage = (*Stage)(nil)
