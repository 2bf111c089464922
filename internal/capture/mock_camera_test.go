package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	frame1 := SolidFrame(640, 480, 0)
	defer frame1.Close()
	frame2 := SolidFrame(640, 480, 128)
	defer frame2.Close()

	cam := NewMockCamera([]*gocv.Mat{frame1, frame2}, false)

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() frame %d error = %v", i, err)
		}
		f.Close()
	}

	// Third read runs off the end (no loop)
	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error after all frames consumed")
	}
}

func TestMockCamera_Loop(t *testing.T) {
	frame := SolidFrame(640, 480, 64)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{frame}, true)
	cam.Open()
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error = %v", i, err)
		}
		f.Close()
	}
}

func TestMockCamera_ReadWhileClosed(t *testing.T) {
	frame := SolidFrame(640, 480, 0)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{frame}, true)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() before Open error = %v, want ErrCameraNotOpen", err)
	}
}

func TestSolidFrame(t *testing.T) {
	frame := SolidFrame(320, 240, 200)
	defer frame.Close()

	if frame.Cols() != 320 || frame.Rows() != 240 {
		t.Errorf("frame dimensions = %dx%d, want 320x240", frame.Cols(), frame.Rows())
	}
	if frame.Empty() {
		t.Error("synthesized frame should not be empty")
	}
}
