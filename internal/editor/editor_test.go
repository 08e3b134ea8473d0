package editor

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func sp(x, y float64) ScreenPoint { return ScreenPoint{X: x, Y: y} }

func vx(x, y float64) Vertex { return r3.Vector{X: x, Y: y} }

// drawPolygon clicks every point, moving the pointer to the next one first
// the way a real pointer would, and finishes with a double-click.
func drawPolygon(t *testing.T, e *Editor, pts ...ScreenPoint) *Shape {
	t.Helper()
	before := len(e.Shapes())
	for _, p := range pts {
		e.PointerMove(p)
		e.Click(p)
		e.PointerMove(sp(p.X+0.25, p.Y+0.25))
	}
	e.DoubleClick(pts[len(pts)-1])
	shapes := e.Shapes()
	require.Len(t, shapes, before+1)
	return shapes[len(shapes)-1]
}

func assertVerticesInDelta(t *testing.T, want, got []Vertex) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, eps, "x of vertex %d", i)
		assert.InDelta(t, want[i].Y, got[i].Y, eps, "y of vertex %d", i)
		assert.InDelta(t, want[i].Z, got[i].Z, eps, "z of vertex %d", i)
	}
}

func TestNewStartsInDrawMode(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	assert.Equal(t, ModeDraw, e.Mode())
	assert.True(t, v.crosshair)
	assert.False(t, e.Drawing())
	assert.Empty(t, v.entities)
}

func TestDrawTriangle(t *testing.T) {
	v := newFlatViewer()
	e := New(v)

	e.Click(sp(0, 0))
	require.True(t, e.Drawing())
	require.Len(t, v.polygons(), 1)
	preview := v.polygons()[0]

	e.PointerMove(sp(0.5, 0))
	e.Click(sp(1, 0))
	e.PointerMove(sp(1, 0.5))
	e.Click(sp(1, 1))
	e.PointerMove(sp(0.3, 0.8))
	assert.Len(t, e.DrawingVertices(), 4, "three committed plus preview")
	assert.Equal(t, 3, e.CommittedCount())

	e.DoubleClick(sp(0.3, 0.8))

	shapes := e.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, []Vertex{vx(0, 0), vx(1, 0), vx(1, 1)}, shapes[0].Vertices.Positions())
	assert.NotContains(t, v.entities, preview, "preview polygon removed")
	assert.Contains(t, v.entities, shapes[0].ID)
	assert.Equal(t, ModeDraw, e.Mode())
	assert.False(t, e.Drawing())
	assert.Zero(t, e.CommittedCount())
	assert.Nil(t, e.DrawingVertices())
}

func TestFinishedVertexCountMatchesClicks(t *testing.T) {
	tests := []struct {
		name   string
		clicks int
		moves  int
	}{
		{"single point", 1, 0},
		{"two points with moves", 2, 3},
		{"triangle no moves", 3, 0},
		{"hexagon many moves", 6, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newFlatViewer()
			e := New(v)
			for i := 0; i < tt.clicks; i++ {
				for j := 0; j < tt.moves; j++ {
					e.PointerMove(sp(float64(i)+float64(j)/10, float64(j)))
				}
				e.Click(sp(float64(i), float64(i*i)))
			}
			for j := 0; j < tt.moves; j++ {
				e.PointerMove(sp(-1, float64(j)))
			}
			e.DoubleClick(sp(0, 0))
			shapes := e.Shapes()
			require.Len(t, shapes, 1)
			assert.Equal(t, tt.clicks, shapes[0].Vertices.Len())
		})
	}
}

func TestPreviewFollowsPointer(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	e.Click(sp(0, 0))
	e.PointerMove(sp(3, 4))
	e.PointerMove(sp(5, 6))
	assert.Equal(t, []Vertex{vx(0, 0), vx(5, 6)}, e.DrawingVertices())

	// the preview polygon reads the live buffer
	preview := v.entities[v.polygons()[0]]
	assert.Equal(t, []Vertex{vx(0, 0), vx(5, 6)}, preview.src.Positions())
}

func TestUnprojectMissIsSkipped(t *testing.T) {
	v := newFlatViewer()
	v.misses[sp(9, 9)] = true
	e := New(v)

	e.Click(sp(9, 9))
	assert.False(t, e.Drawing())
	assert.Empty(t, v.entities)

	e.Click(sp(0, 0))
	e.PointerMove(sp(1, 1))
	e.PointerMove(sp(9, 9))
	assert.Equal(t, []Vertex{vx(0, 0), vx(1, 1)}, e.DrawingVertices())
	e.Click(sp(9, 9))
	assert.Equal(t, 1, e.CommittedCount())
}

func TestDoubleClickWithoutDrawingIsNoop(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	e.DoubleClick(sp(0, 0))
	assert.Empty(t, e.Shapes())
	assert.Empty(t, v.entities)
}

func TestDegeneratePolygonAccepted(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	e.Click(sp(2, 2))
	e.Click(sp(3, 3))
	e.DoubleClick(sp(3, 3))
	shapes := e.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, 2, shapes[0].Vertices.Len())
}

func TestSelectEmptySpace(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	drawPolygon(t, e, sp(0, 0), sp(1, 0), sp(1, 1))
	count := len(v.entities)

	e.BeginSelectMode()
	e.Click(sp(50, 50))

	assert.Nil(t, e.Selected())
	_, ok := e.Boundary()
	assert.False(t, ok)
	assert.Empty(t, e.Handles())
	assert.Len(t, v.entities, count)
}

func TestSelectNonShapeEntity(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	e.Click(sp(0, 0))
	e.Click(sp(1, 0))
	preview := v.polygons()[0]

	e.BeginSelectMode()
	v.picks[sp(0.5, 0)] = preview
	e.Click(sp(0.5, 0))
	assert.Nil(t, e.Selected())
	assert.Empty(t, e.Handles())
}

func selectSquare(t *testing.T) (*flatViewer, *Editor, *Shape) {
	t.Helper()
	v := newFlatViewer()
	e := New(v)
	s := drawPolygon(t, e, sp(-1, -1), sp(-1, 1), sp(1, 1), sp(1, -1))
	e.BeginSelectMode()
	v.picks[sp(0, 0)] = s.ID
	e.Click(sp(0, 0))
	require.Same(t, s, e.Selected())
	return v, e, s
}

func TestSelectShape(t *testing.T) {
	v, e, s := selectSquare(t)

	boundary, ok := e.Boundary()
	require.True(t, ok)
	assert.Contains(t, v.entities, boundary)
	assert.True(t, v.entities[boundary].style.Dashed)

	handles := e.Handles()
	require.Len(t, handles, 4)
	assert.ElementsMatch(t, handles, v.tagged(TagRotateHandle))
	var got []Vertex
	for _, h := range handles {
		got = append(got, v.entities[h].pos)
	}
	assert.Equal(t, []Vertex{vx(-1, -1), vx(-1, 1), vx(1, 1), vx(1, -1)}, got)
	assert.Equal(t, got, v.entities[boundary].src.Positions())

	assert.Equal(t, []orb.Point{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}, e.OriginalGeoVertices())
	assert.Equal(t, orb.Point{0, 0}, e.Pivot())
	assert.Equal(t, s.Vertices.Len(), 4)
}

func TestHandleCornersOrder(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	got := e.HandleCorners([]Vertex{vx(3, 7), vx(-2, 4), vx(5, 1), vx(0, 9)})
	assert.Equal(t, []Vertex{vx(-2, 1), vx(-2, 9), vx(5, 9), vx(5, 1)}, got)
}

func TestHandleCornersSkipMisses(t *testing.T) {
	v := newFlatViewer()
	v.misses[sp(5, 9)] = true
	e := New(v)
	got := e.HandleCorners([]Vertex{vx(3, 7), vx(-2, 4), vx(5, 1), vx(0, 9)})
	assert.Equal(t, []Vertex{vx(-2, 1), vx(-2, 9), vx(5, 1)}, got)
	assert.Nil(t, e.HandleCorners(nil))
}

func TestBoundaryRefreshDoesNotAccumulateHandles(t *testing.T) {
	v, e, _ := selectSquare(t)
	boundary, _ := e.Boundary()
	for i := 0; i < 5; i++ {
		v.entities[boundary].src.Positions()
	}
	assert.Len(t, v.tagged(TagRotateHandle), 4)
	assert.Len(t, e.Handles(), 4)
}

func TestReselectTearsDownPreviousBoundary(t *testing.T) {
	v, e, _ := selectSquare(t)
	first, _ := e.Boundary()
	e.Click(sp(0, 0))
	second, ok := e.Boundary()
	require.True(t, ok)
	assert.NotEqual(t, first, second)
	assert.NotContains(t, v.entities, first)
	assert.Len(t, v.tagged(TagRotateHandle), 4)
}

func TestBeginDrawModeResets(t *testing.T) {
	v, e, s := selectSquare(t)
	boundary, _ := e.Boundary()
	v.crosshair = false

	e.BeginDrawMode()

	assert.Equal(t, ModeDraw, e.Mode())
	assert.Nil(t, e.Selected())
	assert.NotContains(t, v.entities, boundary)
	assert.Empty(t, v.tagged(TagRotateHandle))
	assert.Empty(t, e.OriginalGeoVertices())
	assert.Zero(t, e.CommittedCount())
	assert.False(t, e.Drawing())
	assert.True(t, v.crosshair)
	assert.Contains(t, v.entities, s.ID, "finished shapes stay")
}

func TestBeginDrawModeMidDrawing(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	e.Click(sp(0, 0))
	e.Click(sp(1, 0))
	preview := v.polygons()[0]

	e.BeginDrawMode()

	assert.Zero(t, e.CommittedCount())
	assert.False(t, e.Drawing())
	assert.NotContains(t, v.entities, preview)
	assert.Empty(t, e.Shapes())
}

func TestSelectModeKeepsDrawSession(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	e.Click(sp(0, 0))
	e.Click(sp(1, 0))

	e.BeginSelectMode()

	assert.True(t, e.Drawing())
	assert.Equal(t, 2, e.CommittedCount())
	assert.Len(t, v.polygons(), 1)
}

func TestRotateByDrag(t *testing.T) {
	v, e, s := selectSquare(t)
	v.picks[sp(0, 1)] = s.ID

	e.PointerDown(sp(0, 1))
	require.True(t, e.Dragging())
	assert.False(t, v.cameraRotation)

	e.PointerMove(sp(1, 0))
	assertVerticesInDelta(t, []Vertex{vx(-1, 1), vx(1, 1), vx(1, -1), vx(-1, -1)}, s.Vertices.Positions())

	e.PointerUp(sp(1, 0))
	assert.False(t, e.Dragging())
	assert.True(t, v.cameraRotation)

	before := append([]Vertex(nil), s.Vertices.Positions()...)
	e.PointerMove(sp(0, 1))
	assert.Equal(t, before, s.Vertices.Positions(), "no rotation after release")
}

func TestRotateByHandleDrag(t *testing.T) {
	v, e, s := selectSquare(t)
	handles := e.Handles()
	require.Len(t, handles, 4)
	// second handle is the (minX, maxY) corner
	grab := handles[1]
	require.Equal(t, TagRotateHandle, v.entities[grab].tag)
	assert.Equal(t, vx(-1, 1), v.entities[grab].pos)
	v.picks[sp(-1, 1)] = grab

	e.PointerDown(sp(-1, 1))
	require.True(t, e.Dragging())
	assert.False(t, v.cameraRotation)

	// from north-west to north-east of the pivot: a quarter turn clockwise
	e.PointerMove(sp(1, 1))
	want := []Vertex{vx(-1, 1), vx(1, 1), vx(1, -1), vx(-1, -1)}
	got := s.Vertices.Positions()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-3, "x of vertex %d", i)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-3, "y of vertex %d", i)
	}
	assert.Equal(t, orb.Point{0, 0}, e.Pivot())
	assert.Same(t, s, e.Selected())

	e.PointerUp(sp(1, 1))
	assert.True(t, v.cameraRotation)
}

func TestRotationIsComputedFromBaseline(t *testing.T) {
	v, e, s := selectSquare(t)
	v.picks[sp(0, 1)] = s.ID
	e.PointerDown(sp(0, 1))

	e.PointerMove(sp(1, 0))
	once := append([]Vertex(nil), s.Vertices.Positions()...)
	e.PointerMove(sp(1, 0))
	assert.Equal(t, once, s.Vertices.Positions(), "repeated moves do not compound")

	e.PointerMove(sp(0, 1))
	assert.Equal(t, []Vertex{vx(-1, -1), vx(-1, 1), vx(1, 1), vx(1, -1)}, s.Vertices.Positions())
}

func TestRotationKeepsBufferReference(t *testing.T) {
	v, e, s := selectSquare(t)
	buf := s.Vertices
	rendered := v.entities[s.ID].src
	v.picks[sp(0, 1)] = s.ID
	e.PointerDown(sp(0, 1))
	e.PointerMove(sp(-1, 0))
	assert.Same(t, buf, s.Vertices)
	assert.Equal(t, s.Vertices.Positions(), rendered.Positions())
}

func TestBoundaryTracksRotatedShape(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	s := drawPolygon(t, e, sp(-2, -1), sp(-2, 1), sp(2, 1), sp(2, -1))
	e.BeginSelectMode()
	v.picks[sp(0, 0)] = s.ID
	e.Click(sp(0, 0))
	boundary, _ := e.Boundary()

	v.picks[sp(0, 1)] = s.ID
	e.PointerDown(sp(0, 1))
	e.PointerMove(sp(1, 0))

	got := v.entities[boundary].src.Positions()
	assertVerticesInDelta(t, []Vertex{vx(-1, -2), vx(-1, 2), vx(1, 2), vx(1, -2)}, got)
}

func TestDragStartOffGlobeSkipsRotation(t *testing.T) {
	v, e, s := selectSquare(t)
	v.picks[sp(0, 1)] = s.ID
	v.misses[sp(0, 1)] = true

	e.PointerDown(sp(0, 1))
	require.True(t, e.Dragging())
	e.PointerMove(sp(1, 0))
	assert.Equal(t, []Vertex{vx(-1, -1), vx(-1, 1), vx(1, 1), vx(1, -1)}, s.Vertices.Positions())
}

func TestPointerDownMissDoesNotDrag(t *testing.T) {
	v, e, _ := selectSquare(t)
	e.PointerDown(sp(40, 40))
	assert.False(t, e.Dragging())
	assert.True(t, v.cameraRotation)
}

func TestPointerDownInDrawModeDoesNotDrag(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	s := drawPolygon(t, e, sp(0, 0), sp(1, 0), sp(1, 1))
	v.picks[sp(0.5, 0.5)] = s.ID
	e.PointerDown(sp(0.5, 0.5))
	assert.False(t, e.Dragging())
}

func TestComputeRotatedVerticesIdentity(t *testing.T) {
	_, e, _ := selectSquare(t)
	got := e.ComputeRotatedVertices(e.Pivot(), vx(0.3, 0.9), vx(0.3, 0.9))
	assert.Equal(t, []Vertex{vx(-1, -1), vx(-1, 1), vx(1, 1), vx(1, -1)}, got)
}

func TestRotateVerticesInverse(t *testing.T) {
	_, e, _ := selectSquare(t)
	original := e.OriginalGeoVertices()
	for _, theta := range []float64{12.5, 90, -135, 179} {
		forward := e.RotateVertices(original, theta, e.Pivot())
		var geoForward []orb.Point
		for _, w := range forward {
			geoForward = append(geoForward, orb.Point{w.X, w.Y})
		}
		back := e.RotateVertices(geoForward, -theta, e.Pivot())
		assertVerticesInDelta(t, []Vertex{vx(-1, -1), vx(-1, 1), vx(1, 1), vx(1, -1)}, back)
	}
}

func TestDeleteSelected(t *testing.T) {
	v, e, s := selectSquare(t)
	boundary, _ := e.Boundary()

	e.DeleteSelected()

	assert.NotContains(t, v.entities, s.ID)
	assert.NotContains(t, v.entities, boundary)
	assert.Empty(t, v.tagged(TagRotateHandle))
	assert.Nil(t, e.Selected())
	assert.Empty(t, e.Handles())
	assert.Empty(t, e.Shapes())
	_, ok := e.Shape(s.ID)
	assert.False(t, ok)
}

func TestDeleteWithoutSelectionIsNoop(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	s := drawPolygon(t, e, sp(0, 0), sp(1, 0), sp(1, 1))
	e.DeleteSelected()
	assert.Contains(t, v.entities, s.ID)
	assert.Len(t, e.Shapes(), 1)
}

func TestRecolorSelected(t *testing.T) {
	v, e, s := selectSquare(t)
	e.RecolorSelected()
	want := DefaultStyles().Highlight
	assert.Equal(t, want, s.Style.OutlineColor)
	assert.Equal(t, want, v.entities[s.ID].style.OutlineColor)
}

func TestRecolorWithoutSelectionIsNoop(t *testing.T) {
	v := newFlatViewer()
	e := New(v)
	s := drawPolygon(t, e, sp(0, 0), sp(1, 0), sp(1, 1))
	e.RecolorSelected()
	assert.Equal(t, DefaultStyles().Shape.OutlineColor, v.entities[s.ID].style.OutlineColor)
}

func TestRecolorWithoutOutlineIsNoop(t *testing.T) {
	styles := DefaultStyles()
	styles.Shape.Outline = false
	v := newFlatViewer()
	e := New(v, WithStyles(styles))
	s := drawPolygon(t, e, sp(-1, -1), sp(-1, 1), sp(1, 1))
	e.BeginSelectMode()
	v.picks[sp(-0.5, 0.5)] = s.ID
	e.Click(sp(-0.5, 0.5))
	require.NotNil(t, e.Selected())
	e.RecolorSelected()
	assert.Equal(t, styles.Shape.OutlineColor, s.Style.OutlineColor)
}

func TestDeselect(t *testing.T) {
	v, e, s := selectSquare(t)
	e.Deselect()
	assert.Nil(t, e.Selected())
	assert.Empty(t, v.tagged(TagRotateHandle))
	assert.Contains(t, v.entities, s.ID)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "draw", ModeDraw.String())
	assert.Equal(t, "select", ModeSelect.String())
	assert.Equal(t, "unknown", Mode(7).String())
}
