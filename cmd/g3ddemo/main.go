// Command g3ddemo renders an animated, lit scene on the noop backend and
// reports per-frame statistics. It runs without a GPU or a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/material"
	"github.com/gogpu/g3d/render"
	"github.com/gogpu/g3d/scene"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/math/f32"
)

type demoConfig struct {
	width, height float32
	frames        int
	fps           int
	configPath    string
	verbose       bool
}

func main() {
	var (
		width   = flag.Int("width", 800, "render target width")
		height  = flag.Int("height", 600, "render target height")
		frames  = flag.Int("frames", 120, "number of frames to draw")
		fps     = flag.Int("fps", 60, "animation frame rate")
		config  = flag.String("config", "", "renderer TOML configuration file")
		verbose = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	g3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	err := run(demoConfig{
		width:      float32(*width),
		height:     float32(*height),
		frames:     *frames,
		fps:        *fps,
		configPath: *config,
		verbose:    *verbose,
	})
	if err != nil {
		log.Fatalf("g3ddemo: %v", err)
	}
}

// frameStats counts what one frame recorded.
type frameStats struct {
	passes    int
	pipelines int
	draws     int
	indices   uint32
}

// countingEncoder is a noop command encoder that counts the commands of
// the passes it begins.
type countingEncoder struct {
	hal.CommandEncoder
	stats *frameStats
}

func (e *countingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	e.stats.passes++
	return &countingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), stats: e.stats}
}

type countingPass struct {
	hal.RenderPassEncoder
	stats *frameStats
}

func (p *countingPass) SetPipeline(pipeline hal.RenderPipeline) {
	p.stats.pipelines++
	p.RenderPassEncoder.SetPipeline(pipeline)
}

func (p *countingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.stats.draws++
	p.stats.indices += indexCount
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func loadConfig(path string) (render.Config, error) {
	if path == "" {
		return render.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return render.Config{}, err
	}
	defer f.Close()
	return render.LoadConfig(f)
}

func openDevice() (hal.Device, hal.Queue, func(), error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("no adapters")
	}
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("open device: %w", err)
	}
	return dev.Device, dev.Queue, func() {
		dev.Device.Destroy()
		instance.Destroy()
	}, nil
}

func run(cfg demoConfig) error {
	rcfg, err := loadConfig(cfg.configPath)
	if err != nil {
		return err
	}
	device, queue, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, err := rcfg.Apply(render.Context{
		Device:      device,
		Queue:       queue,
		ColorFormat: gputypes.TextureFormatBGRA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
	})
	if err != nil {
		return err
	}
	opts, err := rcfg.Options()
	if err != nil {
		return err
	}
	if rcfg.Width == 0 || rcfg.Height == 0 {
		opts = append(opts, render.WithSize(cfg.width, cfg.height))
	}

	// The light orbits the box, chased by a spring so its motion eases.
	bulb := scene.NewPointLight("bulb")
	bulb.SetColor(f32.Vec3{1, 0.9, 0.7})
	bulb.SetIntensity(4)
	bulb.SetRange(20)
	chase := scene.NewSpring3(cfg.fps, 6, 0.5, f32.Vec3{3, 2, 0})
	frame := 0
	opts = append(opts, render.WithOnUpdate(func() {
		angle := 2 * math.Pi * float64(frame) / float64(cfg.fps*4)
		chase.SetTarget(f32.Vec3{3 * float32(math.Cos(angle)), 2, 3 * float32(math.Sin(angle))})
		bulb.SetPosition(chase.Update())
		frame++
	}))
	r := render.New(ctx, opts...)
	defer r.Release()

	root := scene.NewObject("root")
	box := scene.NewMesh("box", scene.Box(1, 1, 1), material.NewBasic(
		material.WithLabel("Box Material"),
		material.WithLighting(true),
		material.WithColor(gputypes.Color{R: 0.8, G: 0.3, B: 0.2, A: 1}),
	))
	floor := scene.NewMesh("floor", scene.Box(10, 0.1, 10), material.NewBasic(
		material.WithLabel("Floor Material"),
		material.WithLighting(true),
	))
	floor.SetPosition(f32.Vec3{0, -0.55, 0})
	floor.SetRenderOrder(1)
	sun := scene.NewDirectionalLight("sun")
	sun.SetIntensity(0.3)
	sun.Rotate(f32.Vec3{1, 0, 0}, -math.Pi/4)
	cam := scene.NewPerspectiveCamera("camera")
	cam.SetPosition(f32.Vec3{0, 1.5, 6})
	cam.Rotate(f32.Vec3{1, 0, 0}, -0.2)
	root.Add(box, floor, bulb, sun, cam)
	r.Compile(root, cam)

	var total frameStats
	for i := range cfg.frames {
		box.Rotate(f32.Vec3{0, 1, 0}, float32(2*math.Pi/float64(cfg.fps*8)))

		var stats frameStats
		raw, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "g3ddemo frame"})
		if err != nil {
			return fmt.Errorf("create command encoder: %w", err)
		}
		if err := raw.BeginEncoding("g3ddemo frame"); err != nil {
			return fmt.Errorf("begin encoding: %w", err)
		}
		encoder := &countingEncoder{CommandEncoder: raw, stats: &stats}
		if err := r.Draw(&render.RenderPass{}, encoder, root, cam); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		cmd, err := raw.EndEncoding()
		if err != nil {
			return fmt.Errorf("end encoding: %w", err)
		}
		if _, err := queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
			return fmt.Errorf("submit: %w", err)
		}
		device.FreeCommandBuffer(cmd)

		if cfg.verbose {
			p := bulb.WorldPosition()
			g3d.Logger().Debug("frame", "n", i, "draws", stats.draws, "light", fmt.Sprintf("%.2f,%.2f,%.2f", p[0], p[1], p[2]))
		}
		total.passes += stats.passes
		total.pipelines += stats.pipelines
		total.draws += stats.draws
		total.indices += stats.indices
	}

	lights := 0
	if lb := r.LightBuffer(); lb != nil {
		lights = lb.Count
	}
	width, height := r.Size()
	g3d.Logger().Info("g3ddemo: done",
		"frames", cfg.frames,
		"size", fmt.Sprintf("%gx%g", width, height),
		"samples", ctx.Samples(),
		"passes", total.passes,
		"pipelines", total.pipelines,
		"draws", total.draws,
		"indices", total.indices,
		"lights", lights,
	)
	return nil
}
