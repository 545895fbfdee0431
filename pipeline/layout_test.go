package pipeline

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/mkualquiera/webengine"
	"github.com/mkualquiera/webengine/shader"
)

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()
	if len(layout) != 1 {
		t.Fatalf("expected 1 vertex buffer, got %d", len(layout))
	}

	buf := layout[0]
	if buf.ArrayStride != webengine.VertexStride {
		t.Errorf("stride = %d, want %d", buf.ArrayStride, webengine.VertexStride)
	}
	if buf.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("step mode = %v, want per-vertex", buf.StepMode)
	}
	if len(buf.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(buf.Attributes))
	}

	pos := buf.Attributes[0]
	if pos.Format != gputypes.VertexFormatFloat32x3 || pos.Offset != 0 || pos.ShaderLocation != PositionLocation {
		t.Errorf("position attribute = %+v", pos)
	}
	col := buf.Attributes[1]
	if col.Format != gputypes.VertexFormatFloat32x3 || col.Offset != 12 || col.ShaderLocation != ColorLocation {
		t.Errorf("color attribute = %+v", col)
	}
}

func TestValidateContract(t *testing.T) {
	src, err := shader.Source()
	if err != nil {
		t.Fatalf("shader source: %v", err)
	}
	if err := ValidateContract(src); err != nil {
		t.Errorf("embedded shader violates binding contract: %v", err)
	}

	broken := strings.ReplaceAll(src, "@group(1)", "@group(2)")
	if err := ValidateContract(broken); err == nil {
		t.Error("expected error for shader with relocated color binding")
	}
}

func TestBindingContract(t *testing.T) {
	if TransformGroup == ColorGroup {
		t.Error("transform and color must live in separate bind groups")
	}
	if TransformUniformSize != 64 {
		t.Errorf("transform uniform size = %d, want 64", TransformUniformSize)
	}
	if ColorUniformSize != 16 {
		t.Errorf("color uniform size = %d, want 16", ColorUniformSize)
	}

	td := TransformLayoutDesc("test")
	if len(td.Entries) != 1 {
		t.Fatalf("transform layout entries = %d, want 1", len(td.Entries))
	}
	te := td.Entries[0]
	if te.Binding != TransformBindingIndex {
		t.Errorf("transform binding = %d, want %d", te.Binding, TransformBindingIndex)
	}
	if te.Visibility != gputypes.ShaderStageVertex {
		t.Errorf("transform visibility = %v, want vertex stage", te.Visibility)
	}
	if te.Buffer == nil || te.Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Error("transform binding must be a uniform buffer")
	}

	cd := ColorLayoutDesc("test")
	if len(cd.Entries) != 1 {
		t.Fatalf("color layout entries = %d, want 1", len(cd.Entries))
	}
	ce := cd.Entries[0]
	if ce.Binding != ColorBindingIndex {
		t.Errorf("color binding = %d, want %d", ce.Binding, ColorBindingIndex)
	}
	if ce.Visibility != gputypes.ShaderStageFragment {
		t.Errorf("color visibility = %v, want fragment stage", ce.Visibility)
	}
	if ce.Buffer == nil || ce.Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Error("color binding must be a uniform buffer")
	}
}
