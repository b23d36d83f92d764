package event

import (
	"testing"

	"github.com/vango-dev/sortable/pkg/dom"
)

func TestNormalize(t *testing.T) {
	p := Normalize(Start, nil)
	if p.Type != Start {
		t.Errorf("Type = %q, want start", p.Type)
	}
	if p.OldIndex != -1 || p.NewIndex != -1 {
		t.Errorf("fresh indices = %d/%d, want -1/-1", p.OldIndex, p.NewIndex)
	}
	if p.WillInsertAfter {
		t.Error("WillInsertAfter default should be false")
	}

	in := &Event{OldIndex: 2, NewIndex: 0, Extra: map[string]any{"origin": "board"}}
	out := Normalize(Update, in)
	if out != in {
		t.Fatal("Normalize should return the payload it was given")
	}
	if out.Type != Update || out.OldIndex != 2 || out.NewIndex != 0 {
		t.Errorf("Normalize clobbered fields: %+v", out)
	}
	if out.Extra["origin"] != "board" {
		t.Error("Extra not preserved")
	}
}

func TestBuildDefaults(t *testing.T) {
	d := dom.NewDocument()
	list := d.CreateElement("ul")
	item := d.CreateElement("li")
	d.Root().AppendChild(list)
	list.AppendChild(item)

	ev := Build(Start, nil, list)
	if !ev.Bubbles || !ev.Cancelable {
		t.Error("lifecycle events must bubble and be cancelable")
	}
	p := FromDOM(ev)
	if p == nil {
		t.Fatal("Detail is not an *Event")
	}
	if p.Item != list || p.To != list || p.From != list {
		t.Error("Item/To/From should default to the target")
	}

	ev = Build(Update, &Event{Item: item}, list)
	p = FromDOM(ev)
	if p.Item != item {
		t.Error("explicit Item overridden")
	}
	if p.To != list || p.From != list {
		t.Error("unset To/From should still default")
	}
}

func TestCallbackName(t *testing.T) {
	tests := []struct{ typ, want string }{
		{Choose, "OnChoose"},
		{Start, "OnStart"},
		{Move, "OnMove"},
		{Update, "OnUpdate"},
		{Add, "OnAdd"},
		{Remove, "OnRemove"},
		{Unchoose, "OnUnchoose"},
		{End, "OnEnd"},
		{Filter, "OnFilter"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CallbackName(tt.typ); got != tt.want {
			t.Errorf("CallbackName(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestExtraAccessors(t *testing.T) {
	e := &Event{Extra: map[string]any{
		"name":  "board",
		"count": float64(3), // decoded JSON shape
		"level": 7,
		"ratio": 1.5,
		"live":  true,
		"flag":  "true",
	}}

	if got := e.ExtraString("name"); got != "board" {
		t.Errorf("ExtraString = %q", got)
	}
	if got := e.ExtraString("missing"); got != "" {
		t.Errorf("ExtraString(missing) = %q, want empty", got)
	}
	if got := e.ExtraInt("count"); got != 3 {
		t.Errorf("ExtraInt(float64) = %d, want 3", got)
	}
	if got := e.ExtraInt("level"); got != 7 {
		t.Errorf("ExtraInt(int) = %d, want 7", got)
	}
	if got := e.ExtraFloat("ratio"); got != 1.5 {
		t.Errorf("ExtraFloat = %v, want 1.5", got)
	}
	if got := e.ExtraFloat("level"); got != 7 {
		t.Errorf("ExtraFloat(int) = %v, want 7", got)
	}
	if !e.ExtraBool("live") || !e.ExtraBool("flag") {
		t.Error("ExtraBool should accept bools and boolish strings")
	}
	if e.ExtraBool("missing") {
		t.Error("ExtraBool(missing) = true")
	}
	if got := e.ExtraRaw("ratio"); got != any(1.5) {
		t.Errorf("ExtraRaw = %v", got)
	}

	var empty Event
	if empty.ExtraString("x") != "" || empty.ExtraInt("x") != 0 || empty.ExtraBool("x") {
		t.Error("accessors on nil Extra should return zero values")
	}
}
