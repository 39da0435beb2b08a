package gfx_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kjkrol/gorast/internal/platform"
	"github.com/kjkrol/gorast/internal/platform/headless"
	"github.com/kjkrol/gorast/pkg/framebuffer"
	"github.com/kjkrol/gorast/pkg/gfx"
)

func startDriver(t *testing.T, b *headless.Backend, opts ...gfx.Option) *gfx.Driver {
	t.Helper()
	d := gfx.NewDriver(gfx.NewLifecycleWith(b, testWindow), opts...)
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if d.State() != gfx.Running {
		t.Fatalf("state after Start = %v, want RUNNING", d.State())
	}
	return d
}

func TestDriver_StepPresentsClearedFrame(t *testing.T) {
	b := headless.New(headless.Config{})
	d := startDriver(t, b, gfx.WithClearColor(0xFF00FF00))
	defer d.Stop()

	if !d.Step() {
		t.Fatalf("Step() = false without a quit request")
	}
	if d.Frames() != 1 || b.Presented() != 1 {
		t.Errorf("frames = %d, presented = %d, want 1", d.Frames(), b.Presented())
	}
	snap := b.Snapshot()
	for y := 0; y < testWindow.Height; y++ {
		for x := 0; x < testWindow.Width; x++ {
			c := snap.RGBAAt(x, y)
			if c.R != 0 || c.G != 0xFF || c.B != 0 || c.A != 0xFF {
				t.Fatalf("pixel (%d,%d) = %+v, want green", x, y, c)
			}
		}
	}
}

func TestDriver_PhaseOrder(t *testing.T) {
	b := headless.New(headless.Config{})
	var phases []string
	d := startDriver(t, b,
		gfx.WithEventHandler(func(gfx.Event) { phases = append(phases, "input") }),
		gfx.WithUpdate(func(gfx.Frame) { phases = append(phases, "update") }),
		gfx.WithDraw(func(fb *framebuffer.Framebuffer) {
			for _, p := range fb.Pixels() {
				if p != gfx.DefaultClearColor {
					t.Errorf("draw ran before clear")
					break
				}
			}
			phases = append(phases, "draw")
		}),
	)
	defer d.Stop()

	b.Push(platform.Expose{})
	before := len(b.Journal().Entries())
	d.Step()

	if want := []string{"input", "update", "draw"}; !reflect.DeepEqual(phases, want) {
		t.Errorf("phases = %v, want %v", phases, want)
	}
	want := []string{headless.EntryUpdate, headless.EntryCopy, headless.EntryPresent}
	if got := b.Journal().Entries()[before:]; !reflect.DeepEqual(got, want) {
		t.Errorf("presentation calls = %v, want %v", got, want)
	}
}

func TestDriver_DrawIsVisible(t *testing.T) {
	b := headless.New(headless.Config{})
	d := startDriver(t, b, gfx.WithDraw(func(fb *framebuffer.Framebuffer) {
		fb.SetPixel(2, 5, 0xFF0000FF)
	}))
	defer d.Stop()
	d.Step()

	if c := b.Snapshot().RGBAAt(5, 2); c.B != 0xFF || c.R != 0 {
		t.Errorf("drawn pixel = %+v, want blue", c)
	}
	if c := b.Snapshot().RGBAAt(0, 0); c.R != 0xFF || c.B != 0 {
		t.Errorf("background pixel = %+v, want red", c)
	}
}

func TestDriver_StopsOnQuitEvent(t *testing.T) {
	b := headless.New(headless.Config{})
	updates := 0
	d := startDriver(t, b, gfx.WithUpdate(func(gfx.Frame) { updates++ }))

	d.Step()
	d.Step()
	b.Push(platform.Quit{})
	if d.Step() {
		t.Fatalf("Step() = true after quit event")
	}
	if updates != 2 || d.Frames() != 2 {
		t.Errorf("updates = %d, frames = %d, want 2 each", updates, d.Frames())
	}
	if d.State() != gfx.Stopped {
		t.Errorf("state after quit = %v, want STOPPED", d.State())
	}
	if n := b.Journal().Count(headless.EntryQuit); n != 1 {
		t.Errorf("teardown ran %d times after quit, want 1", n)
	}
	if d.Step() {
		t.Errorf("Step() after quit should not iterate")
	}
	if updates != 2 || b.Presented() != 2 {
		t.Errorf("iterations ran after quit: updates = %d, presented = %d", updates, b.Presented())
	}
	d.Stop()
	if n := b.Journal().Count(headless.EntryQuit); n != 1 {
		t.Errorf("Stop after quit tore down again: %d", n)
	}
}

func TestDriver_StopsOnCancelKey(t *testing.T) {
	b := headless.New(headless.Config{})
	d := startDriver(t, b)
	defer d.Stop()

	b.Push(platform.KeyPress{Key: platform.KeyEnter})
	if !d.Step() {
		t.Fatalf("a non-cancel key stopped the driver")
	}
	b.Push(platform.KeyPress{Key: platform.KeyEscape, Label: "Escape"})
	if d.Step() {
		t.Fatalf("Step() = true after escape")
	}
	if d.Frames() != 1 {
		t.Errorf("frames = %d, want 1", d.Frames())
	}
	if d.State() != gfx.Stopped {
		t.Errorf("state after escape = %v, want STOPPED", d.State())
	}
	if n := b.Journal().Count(headless.EntryQuit); n != 1 {
		t.Errorf("teardown ran %d times after escape, want 1", n)
	}
}

func TestDriver_StepAfterExternalTeardown(t *testing.T) {
	b := headless.New(headless.Config{})
	lc := gfx.NewLifecycleWith(b, testWindow)
	d := gfx.NewDriver(lc)
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	lc.Teardown()
	if d.Step() {
		t.Fatalf("Step() = true on a torn down lifecycle")
	}
	if d.State() != gfx.Stopped {
		t.Errorf("state = %v, want STOPPED", d.State())
	}
	if b.Presented() != 0 {
		t.Errorf("presented %d frames after teardown", b.Presented())
	}
	if n := b.Journal().Count(headless.EntryQuit); n != 1 {
		t.Errorf("teardown ran %d times, want 1", n)
	}
	if v := b.Journal().Violations(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestDriver_PollsOneEventPerIteration(t *testing.T) {
	b := headless.New(headless.Config{})
	d := startDriver(t, b)
	defer d.Stop()

	b.Push(platform.MotionNotify{X: 1, Y: 1}, platform.Quit{})

	if !d.Step() {
		t.Fatalf("first iteration should only see the motion event")
	}
	if b.Pending() != 1 {
		t.Errorf("pending = %d after one iteration, want 1", b.Pending())
	}
	if d.Step() {
		t.Fatalf("second iteration should see the quit event")
	}
	if d.Frames() != 1 {
		t.Errorf("frames = %d, want 1", d.Frames())
	}
}

func TestDriver_DrainMaxSeesQuitInSameIteration(t *testing.T) {
	b := headless.New(headless.Config{})
	d := startDriver(t, b, gfx.WithEventsStrategy(gfx.DrainMax(4)))
	defer d.Stop()

	b.Push(platform.MotionNotify{}, platform.Quit{}, platform.Expose{})
	if d.Step() {
		t.Fatalf("DrainMax should reach the quit event in the first iteration")
	}
	if b.Pending() != 1 {
		t.Errorf("events after the quit should stay queued, pending = %d", b.Pending())
	}
}

func TestDriver_RunUntilQuit(t *testing.T) {
	b := headless.New(headless.Config{Frames: 3})
	d := gfx.NewDriver(gfx.NewLifecycleWith(b, testWindow))

	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.Frames() != 3 {
		t.Errorf("frames = %d, want 3", d.Frames())
	}
	if d.State() != gfx.Stopped {
		t.Errorf("state = %v, want STOPPED", d.State())
	}
	want := []string{headless.EntryDestroyImage, headless.EntryDestroyRenderer, headless.EntryDestroyWindow, headless.EntryQuit}
	if got := b.Journal().Releases(); !reflect.DeepEqual(got, want) {
		t.Errorf("releases = %v, want %v", got, want)
	}

	d.Stop()
	if n := b.Journal().Count(headless.EntryQuit); n != 1 {
		t.Errorf("teardown ran %d times", n)
	}
}

func TestDriver_RunSetupFailure(t *testing.T) {
	b := headless.New(headless.Config{FailAt: headless.StageImage})
	updates := 0
	d := gfx.NewDriver(gfx.NewLifecycleWith(b, testWindow), gfx.WithUpdate(func(gfx.Frame) { updates++ }))

	err := d.Run()
	if !errors.Is(err, gfx.ErrResourceCreation) {
		t.Fatalf("Run error = %v, want ErrResourceCreation", err)
	}
	if d.State() != gfx.Stopped {
		t.Errorf("state = %v, want STOPPED", d.State())
	}
	if updates != 0 || b.Presented() != 0 {
		t.Errorf("loop ran after setup failure")
	}
	want := []string{headless.EntryDestroyRenderer, headless.EntryDestroyWindow, headless.EntryQuit}
	if got := b.Journal().Releases(); !reflect.DeepEqual(got, want) {
		t.Errorf("releases = %v, want %v", got, want)
	}
	if v := b.Journal().Violations(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
	if d.Step() {
		t.Errorf("Step() on a stopped driver")
	}
}

func TestDriver_StartTwice(t *testing.T) {
	b := headless.New(headless.Config{})
	d := startDriver(t, b)
	defer d.Stop()
	if err := d.Start(); !errors.Is(err, gfx.ErrAlreadyStarted) {
		t.Errorf("second Start error = %v", err)
	}
}

func TestDriver_StepBeforeStart(t *testing.T) {
	d := gfx.NewDriver(gfx.NewLifecycleWith(headless.New(headless.Config{}), testWindow))
	if d.Step() {
		t.Errorf("Step() ran on a driver that was never started")
	}
	if d.State() != gfx.NotStarted {
		t.Errorf("state = %v, want NOT_STARTED", d.State())
	}
}

func TestUploadAndPresent_LeavesFramebufferUntouched(t *testing.T) {
	b := headless.New(headless.Config{})
	lc := gfx.NewLifecycleWith(b, testWindow)
	_ = lc.Startup()
	_ = lc.SetupResources()
	defer lc.Teardown()

	fb := lc.Framebuffer()
	for i := range fb.Pixels() {
		fb.Pixels()[i] = uint32(i) | 0xFF000000
	}
	before := append([]uint32(nil), fb.Pixels()...)

	if !lc.UploadAndPresent() {
		t.Fatalf("UploadAndPresent reported failure")
	}
	if !reflect.DeepEqual(before, fb.Pixels()) {
		t.Errorf("framebuffer mutated by upload")
	}
	snap := b.Snapshot()
	row, col := 3, 7
	if got := snap.RGBAAt(col, row).B; got != uint8(testWindow.Width*row+col) {
		t.Errorf("uploaded pixel (%d,%d) blue = %d", row, col, got)
	}
}
