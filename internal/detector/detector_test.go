package detector

import (
	"context"
	"errors"
	"testing"

	"github.com/martinsuchenak/camguard/internal/enumerate"
	"github.com/martinsuchenak/camguard/pkg/detection"
	"github.com/martinsuchenak/camguard/pkg/model"
)

type stubSource struct {
	name    string
	devices []model.CameraDevice
	err     error
}

func (s *stubSource) Name() string {
	return s.name
}

func (s *stubSource) Enumerate(_ context.Context) ([]model.CameraDevice, error) {
	return s.devices, s.err
}

func newDetector(stubs ...*stubSource) *Detector {
	sources := make([]detection.Source, 0, len(stubs))
	for _, s := range stubs {
		sources = append(sources, s)
	}
	return New(enumerate.NewEnumerator(sources...), nil)
}

func TestDetectCamerasScenarios(t *testing.T) {
	real := model.CameraDevice{Name: "Logitech BRIO", VendorID: "046d", ProductID: "085e"}
	virtual := model.CameraDevice{Name: "OBS Virtual Camera"}

	tests := []struct {
		name    string
		sources []*stubSource
		want    model.Verdict
	}{
		{
			name:    "no sources report devices",
			sources: []*stubSource{{name: "a"}, {name: "b"}},
			want:    model.VerdictNoCamera,
		},
		{
			name:    "single real camera",
			sources: []*stubSource{{name: "a", devices: []model.CameraDevice{real}}},
			want:    model.VerdictRealCamera,
		},
		{
			name: "real camera plus virtual camera from another source",
			sources: []*stubSource{
				{name: "a", devices: []model.CameraDevice{real}},
				{name: "b", devices: []model.CameraDevice{virtual}},
			},
			want: model.VerdictRealCamera,
		},
		{
			name:    "only a virtual camera",
			sources: []*stubSource{{name: "a", devices: []model.CameraDevice{virtual}}},
			want:    model.VerdictVirtualCamera,
		},
		{
			name:    "failing source degrades to no camera",
			sources: []*stubSource{{name: "a", err: errors.New("subsystem failed")}},
			want:    model.VerdictNoCamera,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := newDetector(tt.sources...).DetectCameras(context.Background())
			if verdict != tt.want {
				t.Errorf("DetectCameras() = %v, want %v", verdict, tt.want)
			}
			if !verdict.Valid() {
				t.Errorf("DetectCameras() returned invalid verdict %q", verdict)
			}
		})
	}
}

func TestRunRecordsCounts(t *testing.T) {
	d := newDetector(&stubSource{name: "a", devices: []model.CameraDevice{
		{Name: "Logitech BRIO"},
		{Name: "OBS Virtual Camera"},
		{Name: "ManyCam Virtual Webcam"},
	}})

	run := d.Run(context.Background())

	if run.ID == "" {
		t.Error("run should carry an id")
	}
	if run.Verdict != model.VerdictRealCamera {
		t.Errorf("verdict = %v, want %v", run.Verdict, model.VerdictRealCamera)
	}
	if run.DeviceCount != 3 || run.RealCount != 1 || run.VirtualCount != 2 {
		t.Errorf("counts = %d/%d/%d, want 3/1/2", run.DeviceCount, run.RealCount, run.VirtualCount)
	}
	if run.CompletedAt.Before(run.StartedAt) {
		t.Error("completed_at should not precede started_at")
	}
}

func TestClassifyDevicesReportsLayers(t *testing.T) {
	d := newDetector(&stubSource{name: "a", devices: []model.CameraDevice{
		{Name: "Logitech BRIO"},
		{Name: "OBS Virtual Camera"},
	}})

	results := d.ClassifyDevices(context.Background())
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Virtual {
		t.Error("hardware camera flagged virtual")
	}
	if !results[1].Virtual || results[1].Layer != "name" {
		t.Errorf("virtual camera classification = %+v, want name layer match", results[1])
	}
}
