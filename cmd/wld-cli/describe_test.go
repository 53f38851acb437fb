package main

import (
	"strings"
	"testing"

	"github.com/logicossoftware/go-wld"
)

func TestDescribeFragment_Header(t *testing.T) {
	doc := sampleDocument(t)

	out := describeFragment(doc, 1)
	for _, want := range []string{"Fragment #1", "0x03 TextureImages", "GRASS.BMP"} {
		if !strings.Contains(out, want) {
			t.Errorf("description missing %q:\n%s", want, out)
		}
	}

	// Named fragments show their name.
	out = describeFragment(doc, 2)
	if !strings.Contains(out, "GRASS_SPRITE") {
		t.Errorf("texture description missing name:\n%s", out)
	}
}

func TestDescribeFragment_Material(t *testing.T) {
	doc := sampleDocument(t)

	out := describeFragment(doc, 4)
	for _, want := range []string{
		"0x30 Material",
		"GRASS_MDF",
		"Visible",
		"true",
		"#3 TextureReference",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("description missing %q:\n%s", want, out)
		}
	}
}

func TestDescribeFragment_Mesh(t *testing.T) {
	doc := sampleDocument(t)

	out := describeFragment(doc, 5)
	for _, want := range []string{
		"0x36 Mesh",
		"R1_DMSPRITEDEF",
		"Vertices",
		"3",
		"Triangles",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("description missing %q:\n%s", want, out)
		}
	}
}

func TestDescribeFragment_OutOfRange(t *testing.T) {
	doc := sampleDocument(t)
	if out := describeFragment(doc, 0); out != "no fragment selected" {
		t.Errorf("index 0 = %q", out)
	}
	if out := describeFragment(doc, 99); out != "no fragment selected" {
		t.Errorf("index 99 = %q", out)
	}
}

func TestRefString(t *testing.T) {
	doc := sampleDocument(t)

	if got := refString(doc, 0); got != "none" {
		t.Errorf("zero ref = %q, want none", got)
	}

	got := refString(doc, 2)
	if !strings.Contains(got, "#2 Texture") || !strings.Contains(got, "GRASS_SPRITE") {
		t.Errorf("positional ref = %q", got)
	}

	if got := refString(doc, 99); !strings.Contains(got, "dangling") {
		t.Errorf("dangling ref = %q", got)
	}

	nameRef := wld.NameRef(doc.Fragments[1])
	if got := refString(doc, nameRef); !strings.Contains(got, `"GRASS_SPRITE"`) {
		t.Errorf("name ref = %q", got)
	}

	if got := refString(doc, -9999); !strings.Contains(got, "dangling") {
		t.Errorf("dangling name ref = %q", got)
	}
}
