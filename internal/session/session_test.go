/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"reflect"
	"slices"
	"testing"

	"sketchcanvas/internal/coords"
	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/idgen"
	applog "sketchcanvas/internal/log"
	"sketchcanvas/internal/render"
)

func newSession(t *testing.T, firstID int64, mutate func(*Options)) (*Session, *render.Recorder) {
	t.Helper()
	rec := &render.Recorder{}
	opts := DefaultOptions()
	opts.IDs = idgen.Counter(firstID)
	opts.Filenames = func() string { return "sketch" }
	opts.Logger = applog.Discard()
	if mutate != nil {
		mutate(&opts)
	}
	return New(rec, opts), rec
}

func at(x, y float64) Pointer {
	p := domain.Point{X: x, Y: y}
	return Pointer{Location: p, Page: p}
}

func TestDrawThenUndo(t *testing.T) {
	s, rec := newSession(t, 100, nil)
	s.SetViewport(domain.Size{Width: 300, Height: 300})
	s.Start(at(10, 10))
	s.Move(domain.Point{X: 20, Y: 20})
	evs := s.End()
	if len(evs) != 1 || evs[0].Kind() != "strokeEnded" {
		t.Fatalf("unexpected end events: %v", evs)
	}

	paths := s.Paths()
	if len(paths) != 1 {
		t.Fatalf("got %d paths want 1", len(paths))
	}
	if want := []string{"10.00,10.00", "20.00,20.00"}; !reflect.DeepEqual(paths[0].Path.Data, want) {
		t.Fatalf("data got %v want %v", paths[0].Path.Data, want)
	}
	if got := rec.Names(); !reflect.DeepEqual(got, []string{"newPath", "addPoint", "addPoint", "endPath"}) {
		t.Fatalf("commands got %v", got)
	}

	id, _ := s.Undo()
	if id != 100 {
		t.Fatalf("undo got %d want 100", id)
	}
	if len(s.Paths()) != 0 {
		t.Fatalf("paths should be empty after undo")
	}
	if got := rec.Deleted(); !reflect.DeepEqual(got, []string{"100"}) {
		t.Fatalf("deleted got %v", got)
	}
	if id, evs := s.Undo(); id != NoneID || evs != nil {
		t.Fatalf("undo on empty session got %d %v", id, evs)
	}
}

func TestUndoPrefersShapes(t *testing.T) {
	s, _ := newSession(t, 1, func(o *Options) { o.User = "ann" })
	s.SetViewport(domain.Size{Width: 100, Height: 100})
	s.Start(at(1, 1))
	s.End()
	s.SetDrawMode(domain.Rect)
	s.Start(at(5, 5))
	s.Move(domain.Point{X: 50, Y: 50})
	s.End()

	id, evs := s.Undo()
	if id != 2 {
		t.Fatalf("undo got %d want shape 2", id)
	}
	if len(s.Paths()) != 1 || len(s.Shapes()) != 0 {
		t.Fatalf("undo should remove the shape only: %d paths %d shapes", len(s.Paths()), len(s.Shapes()))
	}
	if !reflect.DeepEqual(evs, []Event{ShapesChanged{Count: 0}}) {
		t.Fatalf("events got %v", evs)
	}
	if id, _ := s.Undo(); id != 1 {
		t.Fatalf("second undo got %d want path 1", id)
	}
}

func TestUndoOnlyTouchesOwnPaths(t *testing.T) {
	s, _ := newSession(t, 1, func(o *Options) { o.User = "ann" })
	s.SetViewport(domain.Size{Width: 100, Height: 100})
	s.AddPath(domain.Path{Drawer: "bob", Size: domain.Size{Width: 100, Height: 100}, Path: domain.PathData{ID: 77, Data: []string{"1,1"}}})
	if id, _ := s.Undo(); id != NoneID {
		t.Fatalf("undo should not remove another drawer's path, got %d", id)
	}
	s.Start(at(2, 2))
	s.End()
	s.AddPath(domain.Path{Drawer: "bob", Path: domain.PathData{ID: 78}})
	if id, _ := s.Undo(); id != 1 {
		t.Fatalf("undo got %d want own path 1", id)
	}
	if len(s.Paths()) != 2 {
		t.Fatalf("bob's paths should remain, got %d", len(s.Paths()))
	}
}

func TestIdempotentIngestion(t *testing.T) {
	s, rec := newSession(t, 1, nil)
	s.SetViewport(domain.Size{Width: 100, Height: 100})
	p := domain.Path{Size: domain.Size{Width: 100, Height: 100}, Path: domain.PathData{ID: 9, Data: []string{"1,2"}}}
	if !s.AddPath(p) {
		t.Fatalf("first AddPath should be taken")
	}
	if s.AddPath(p) {
		t.Fatalf("duplicate AddPath should be ignored")
	}
	if n := len(s.Paths()); n != 1 {
		t.Fatalf("got %d paths want 1", n)
	}
	if got := rec.Names(); !reflect.DeepEqual(got, []string{"newPath", "addPoint"}) {
		t.Fatalf("commands got %v", got)
	}
}

func TestIngestionQueuedUntilViewport(t *testing.T) {
	s, rec := newSession(t, 1, func(o *Options) { o.Scaler = coords.Scaler{Scale: 2} })
	p := domain.Path{
		Size: domain.Size{Width: 200, Height: 200},
		Path: domain.PathData{ID: 4, Width: 2, Data: []string{"10,20", "x,1", "30.004,40"}},
	}
	s.AddPath(p)
	s.AddPath(p)
	if len(rec.Commands) != 0 || len(s.Paths()) != 0 {
		t.Fatalf("nothing should be emitted or committed before the viewport is known")
	}
	s.SetViewport(domain.Size{Width: 100, Height: 100})
	want := []render.Command{
		render.NewPath{ID: "4", Width: 4},
		render.AddPoint{X: 10, Y: 20},
		render.AddPoint{X: 30, Y: 40},
	}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Fatalf("got %#v want %#v", rec.Commands, want)
	}
	if len(s.Paths()) != 1 {
		t.Fatalf("queued path should be committed once")
	}
	// a second layout does not replay anything
	s.SetViewport(domain.Size{Width: 120, Height: 100})
	if len(rec.Commands) != len(want) {
		t.Fatalf("relayout should not re-emit")
	}
}

func TestEmittedCoordinatesAreDevicePixels(t *testing.T) {
	s, rec := newSession(t, 1, func(o *Options) { o.Scaler = coords.Scaler{Scale: 2} })
	s.SetViewport(domain.Size{Width: 100, Height: 100})
	evs := s.Start(Pointer{Location: domain.Point{X: 5, Y: 5}, Page: domain.Point{X: 105, Y: 55}})
	if !reflect.DeepEqual(evs, []Event{StrokeStarted{Point: domain.Point{X: 5, Y: 5}}}) {
		t.Fatalf("start events got %v", evs)
	}
	evs = s.Move(domain.Point{X: 110.004, Y: 60})
	if !reflect.DeepEqual(evs, []Event{StrokeChanged{Point: domain.Point{X: 10, Y: 10}}}) {
		t.Fatalf("move events got %v", evs)
	}
	want := []render.Command{
		render.NewPath{ID: "1", Color: DefaultStrokeColor, Width: 6},
		render.AddPoint{X: 10, Y: 10},
		render.AddPoint{X: 20, Y: 20},
	}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Fatalf("got %#v want %#v", rec.Commands, want)
	}
}

func TestFilledRectangleDeletionSet(t *testing.T) {
	s, rec := newSession(t, 5, func(o *Options) {
		o.Mode = domain.Rect
		o.Filled = true
	})
	s.Start(at(0, 0))
	rec.Reset()
	s.Move(domain.Point{X: 40, Y: 30})
	got := rec.Deleted()
	if len(got) != 26 {
		t.Fatalf("got %d deletions want 26: %v", len(got), got)
	}
	for _, want := range []string{"5side0", "5side3", "5diag0", "5diag1", "5hline1", "5hline10", "5vline1", "5vline10"} {
		if !slices.Contains(got, want) {
			t.Fatalf("missing deletion %q in %v", want, got)
		}
	}
}

func TestUnfilledRectangleDeletionSet(t *testing.T) {
	s, rec := newSession(t, 5, func(o *Options) { o.Mode = domain.Rect })
	s.Start(at(0, 0))
	rec.Reset()
	evs := s.Move(domain.Point{X: 40, Y: 30})
	if got := rec.Deleted(); !reflect.DeepEqual(got, []string{"5", "6", "7", "8"}) {
		t.Fatalf("got %v", got)
	}
	ch, ok := evs[0].(ShapeChanged)
	if !ok || ch.Shape.Shape.EndPoint != (domain.Point{X: 40, Y: 30}) {
		t.Fatalf("unexpected move event %v", evs)
	}
}

func TestFillToggleMidDragLeavesStaleIDs(t *testing.T) {
	s, rec := newSession(t, 5, func(o *Options) { o.Mode = domain.Rect })
	s.Start(at(0, 0))
	s.Move(domain.Point{X: 10, Y: 10})
	s.SetFilled(true)
	rec.Reset()
	s.Move(domain.Point{X: 20, Y: 20})
	got := rec.Deleted()
	if len(got) != 26 || slices.Contains(got, "6") {
		t.Fatalf("redraw should use the filled key set only, got %v", got)
	}
	s.End()
	if !s.Shapes()[0].Shape.Filled {
		t.Fatalf("committed shape should carry the toggled fill state")
	}
}

func TestShapeLifecycleEvents(t *testing.T) {
	s, rec := newSession(t, 42, func(o *Options) {
		o.Mode = domain.Arrow
		o.User = "ann"
	})
	s.SetViewport(domain.Size{Width: 50, Height: 60})
	if evs := s.Start(at(1, 1)); evs[0] != (ShapeStarted{Point: domain.Point{X: 1, Y: 1}}) {
		t.Fatalf("start got %v", evs)
	}
	if got := rec.Names(); len(got) != 7 || got[0] != "newPath" {
		t.Fatalf("degenerate arrow should be drawn on start, got %v", got)
	}
	rec.Reset()
	s.Move(domain.Point{X: 30, Y: 1})
	if got := rec.Deleted(); !reflect.DeepEqual(got, []string{"42"}) {
		t.Fatalf("arrow redraw should delete the bare id, got %v", got)
	}
	evs := s.End()
	if len(evs) != 2 || evs[1] != (ShapesChanged{Count: 1}) {
		t.Fatalf("end events got %v", evs)
	}
	end := evs[0].(ShapeEnded)
	if end.Shape.Drawer != "ann" || end.Shape.Size != (domain.Size{Width: 50, Height: 60}) {
		t.Fatalf("committed wrapper got %+v", end.Shape)
	}
	if s.Drawing() {
		t.Fatalf("session should be idle after end")
	}
}

func TestModeNoneAndTouchDisabled(t *testing.T) {
	s, rec := newSession(t, 1, func(o *Options) { o.Mode = domain.NoDraw })
	if evs := s.Start(at(1, 1)); evs != nil {
		t.Fatalf("none mode should not produce events, got %v", evs)
	}
	s.SetDrawMode(domain.Draw)
	s.SetTouchEnabled(false)
	s.Start(at(1, 1))
	s.Move(domain.Point{X: 3, Y: 3})
	s.End()
	if len(rec.Commands) != 0 || len(s.Paths()) != 0 {
		t.Fatalf("disabled touch should suppress drawing, got %v", rec.Names())
	}
}

func TestNoneModeSuppressesEndOfActiveStroke(t *testing.T) {
	s, _ := newSession(t, 1, nil)
	s.Start(at(1, 1))
	s.SetDrawMode(domain.NoDraw)
	if evs := s.End(); evs != nil {
		t.Fatalf("end in none mode should be suppressed, got %v", evs)
	}
	s.SetDrawMode(domain.Draw)
	s.Start(at(2, 2))
	s.End()
	if paths := s.Paths(); len(paths) != 1 || paths[0].Path.ID != 2 {
		t.Fatalf("stale stroke should be replaced by the next start, got %+v", paths)
	}
}

func TestPendingTextAndTextTap(t *testing.T) {
	s, rec := newSession(t, 1, func(o *Options) { o.PendingText = true })
	evs := s.Start(Pointer{Location: domain.Point{X: 7, Y: 8}, Page: domain.Point{X: 70, Y: 80}})
	if !reflect.DeepEqual(evs, []Event{TextPlaced{Position: domain.Point{X: 7, Y: 8}}}) {
		t.Fatalf("got %v", evs)
	}
	s.SetPendingText(false)
	s.SetTexts([]domain.CanvasText{{ID: 1, Text: "Hi", FontSize: 20}})
	evs = s.Start(at(5, 5))
	if !reflect.DeepEqual(evs, []Event{TextTapped{ID: 1}}) {
		t.Fatalf("got %v", evs)
	}
	if id, ok := s.SelectedText(); !ok || id != 1 {
		t.Fatalf("selected got %d %v", id, ok)
	}
	if len(rec.Commands) != 0 || s.Drawing() {
		t.Fatalf("a text tap must not start drawing")
	}
	s.Start(at(50, 50))
	if !s.Drawing() {
		t.Fatalf("a tap away from text should start a stroke")
	}
}

func TestClear(t *testing.T) {
	s, rec := newSession(t, 1, nil)
	s.SetViewport(domain.Size{Width: 10, Height: 10})
	s.Start(at(1, 1))
	s.End()
	s.Start(at(2, 2))
	rec.Reset()
	s.Clear()
	if got := rec.Names(); !reflect.DeepEqual(got, []string{"clear"}) {
		t.Fatalf("got %v", got)
	}
	if len(s.Paths()) != 0 || len(s.Shapes()) != 0 || s.Drawing() {
		t.Fatalf("clear should reset all state")
	}
}

func TestSeededShapesDrawnOnLayout(t *testing.T) {
	seed := domain.Shape{
		Size:  domain.Size{Width: 200, Height: 200},
		Shape: domain.ShapeData{ID: 3, Type: domain.ShapeLine, EndPoint: domain.Point{X: 100, Y: 50}},
	}
	s, rec := newSession(t, 1, func(o *Options) { o.Shapes = []domain.Shape{seed, seed} })
	if len(s.Shapes()) != 0 || len(rec.Commands) != 0 {
		t.Fatalf("seeded shapes should wait for the viewport")
	}
	s.SetViewport(domain.Size{Width: 100, Height: 100})
	if len(s.Shapes()) != 1 {
		t.Fatalf("got %d shapes want 1", len(s.Shapes()))
	}
	if got := rec.Points(); !reflect.DeepEqual(got, []domain.Point{{X: 0, Y: 0}, {X: 50, Y: 25}}) {
		t.Fatalf("points got %v", got)
	}
	if names := rec.Names(); names[len(names)-1] != "endPath" {
		t.Fatalf("ingested shape should be sealed, got %v", names)
	}
}

func TestSaveAndExportEvents(t *testing.T) {
	s, rec := newSession(t, 1, nil)
	s.Save(nil)
	want := render.Save{Pref: domain.SavePreference{ImageType: domain.ImagePNG, Filename: "sketch", IncludeImage: true, IncludeText: true}}
	if !reflect.DeepEqual(rec.Commands, []render.Command{want}) {
		t.Fatalf("got %#v", rec.Commands)
	}
	rec.Reset()
	s.Save(&domain.SavePreference{ImageType: domain.ImageJPG, Folder: "out", Transparent: true})
	got := rec.Commands[0].(render.Save).Pref
	if got.Filename != "sketch" || got.ImageType != domain.ImageJPG || got.Folder != "out" || got.IncludeText {
		t.Fatalf("explicit preference got %+v", got)
	}

	rec.Reset()
	s.GetBase64(render.ImageRequest{}, func(string, error) {})
	if tb, ok := rec.Commands[0].(render.TransferToBase64); !ok || tb.Request.ImageType != domain.ImagePNG || tb.Done == nil {
		t.Fatalf("got %#v", rec.Commands[0])
	}

	if evs := s.HandleExportResult(domain.ExportResult{Success: true, Path: "/tmp/a.png"}); evs[0] != (SketchSaved{Success: true, Path: "/tmp/a.png"}) {
		t.Fatalf("got %v", evs)
	}
	if evs := s.HandlePathsUpdate(3); evs[0] != (PathsChanged{Count: 3}) {
		t.Fatalf("got %v", evs)
	}
}

func TestTextOperations(t *testing.T) {
	s, rec := newSession(t, 500, nil)
	id, evs := s.AddText(domain.CanvasText{Text: "note"})
	if id != 500 {
		t.Fatalf("assigned id got %d want 500", id)
	}
	if tc := evs[0].(TextEditingComplete); tc.Text.ID != 500 {
		t.Fatalf("event text got %+v", tc.Text)
	}
	if evs := s.UpdateText(domain.CanvasText{Text: "no id"}); evs != nil {
		t.Fatalf("update without id should be ignored")
	}
	s.UpdateText(domain.CanvasText{ID: 500, Text: "edited"})
	if texts := s.Texts(); len(texts) != 1 || texts[0].Text != "edited" {
		t.Fatalf("texts got %+v", texts)
	}
	s.DeleteText(500)
	if len(s.Texts()) != 0 {
		t.Fatalf("text should be deleted")
	}
	if got := rec.Names(); !reflect.DeepEqual(got, []string{"addText", "updateText", "deleteText"}) {
		t.Fatalf("commands got %v", got)
	}
}

func TestLocalIDsAvoidIngestedIDs(t *testing.T) {
	s, rec := newSession(t, 1, func(o *Options) { o.User = "ann" })
	size := domain.Size{Width: 100, Height: 100}
	s.SetViewport(size)
	for id := int64(1); id <= 4; id++ {
		s.AddPath(domain.Path{Drawer: "bob", Size: size, Path: domain.PathData{ID: id, Data: []string{"1,1"}}})
	}

	s.Start(at(10, 10))
	s.End()
	s.SetDrawMode(domain.Rect)
	s.Start(at(0, 0))
	rec.Reset()
	s.Move(domain.Point{X: 20, Y: 20})
	redraw := rec.Deleted()
	s.End()

	seen := map[int64]bool{}
	for _, p := range s.Paths() {
		if seen[p.Path.ID] {
			t.Fatalf("duplicate committed path id %d", p.Path.ID)
		}
		seen[p.Path.ID] = true
	}
	if own := s.Paths()[4].Path.ID; own <= 4 {
		t.Fatalf("local stroke reused ingested id %d", own)
	}
	for _, key := range redraw {
		for id := range seen {
			if key == render.Key(id) {
				t.Fatalf("rectangle redraw deleted path buffer %s", key)
			}
		}
	}

	s.Undo()
	s.Undo()
	if n := len(s.Paths()); n != 4 {
		t.Fatalf("bob's paths should survive ann's undo, got %d", n)
	}
}

func TestIDsAvoidUnfilledRectangleSpan(t *testing.T) {
	s, _ := newSession(t, 1, func(o *Options) { o.Mode = domain.Rect })
	s.Start(at(0, 0))
	s.End()
	s.SetDrawMode(domain.Draw)
	s.Start(at(1, 1))
	s.End()
	if rect, path := s.Shapes()[0].Shape.ID, s.Paths()[0].Path.ID; rect != 1 || path != 5 {
		t.Fatalf("got rect %d path %d want 1 and 5", rect, path)
	}

	// A generator stuck on one value still terminates.
	stuck, _ := newSession(t, 1, func(o *Options) { o.IDs = func() int64 { return 7 } })
	stuck.Start(at(0, 0))
	stuck.End()
	stuck.Start(at(1, 1))
	stuck.End()
	if n := len(stuck.Paths()); n != 2 {
		t.Fatalf("got %d paths want 2", n)
	}
}

func TestTextIDsAreUnique(t *testing.T) {
	s, _ := newSession(t, 1, nil)
	s.SetTexts([]domain.CanvasText{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}})
	if id, _ := s.AddText(domain.CanvasText{Text: "c"}); id != 3 {
		t.Fatalf("assigned id got %d want 3", id)
	}
}

func TestGestureFollowsCurrentMode(t *testing.T) {
	s, rec := newSession(t, 1, nil)
	s.Start(at(1, 1))
	s.SetDrawMode(domain.Rect)
	rec.Reset()
	if evs := s.Move(domain.Point{X: 5, Y: 5}); evs != nil || len(rec.Commands) != 0 {
		t.Fatalf("stroke should not advance in a shape mode, got %v %v", evs, rec.Names())
	}
	if evs := s.End(); evs != nil || len(s.Paths()) != 0 {
		t.Fatalf("stroke should not commit in a shape mode, got %v", evs)
	}
	s.SetDrawMode(domain.Draw)
	if evs := s.End(); len(evs) != 1 || len(s.Paths()[0].Path.Data) != 1 {
		t.Fatalf("stroke should commit once the mode matches, got %v", evs)
	}

	s.SetDrawMode(domain.Circle)
	s.Start(at(0, 0))
	s.SetDrawMode(domain.Draw)
	if evs := s.Move(domain.Point{X: 9, Y: 9}); evs != nil {
		t.Fatalf("shape should not advance in draw mode, got %v", evs)
	}
	if sh, ok := s.CurrentShape(); !ok || sh.Shape.EndPoint != (domain.Point{}) {
		t.Fatalf("shape should be untouched, got %+v %v", sh, ok)
	}
}

func TestCurrentPathAndToggleFilled(t *testing.T) {
	s, _ := newSession(t, 1, nil)
	if _, ok := s.CurrentPath(); ok {
		t.Fatalf("no stroke should be active")
	}
	s.Start(at(1, 1))
	s.Move(domain.Point{X: 2, Y: 2})
	p, ok := s.CurrentPath()
	if !ok || !reflect.DeepEqual(p.Data, []string{"1.00,1.00", "2.00,2.00"}) {
		t.Fatalf("current path got %+v %v", p, ok)
	}
	p.Data[0] = "changed"
	if again, _ := s.CurrentPath(); again.Data[0] != "1.00,1.00" {
		t.Fatalf("CurrentPath should return a copy")
	}
	s.End()

	if !s.ToggleFilled() || !s.Filled() {
		t.Fatalf("first toggle should enable fill")
	}
	if s.ToggleFilled() {
		t.Fatalf("second toggle should disable fill")
	}
}
