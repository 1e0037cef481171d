package printer

import (
	"bytes"
	"strings"
	"testing"
)

func TestDocumentStartsWithInit(t *testing.T) {
	d := NewDocument(Width58mm)
	if !bytes.HasPrefix(d.Bytes(), []byte{ESC, '@'}) {
		t.Fatalf("expected ESC @ prefix, got % x", d.Bytes())
	}
	d.SetBold(true).Text("HI").PartialCut()
	if !bytes.HasSuffix(d.Bytes(), []byte{GS, 'V', 0x01}) {
		t.Fatalf("expected partial cut at end, got % x", d.Bytes())
	}
	if !bytes.Contains(d.Bytes(), []byte{ESC, 'E', 1}) {
		t.Fatal("expected bold on command")
	}
}

func TestTextDocumentHasNoControlBytes(t *testing.T) {
	d := NewTextDocument(20)
	d.SetAlign(AlignCenter).SetBold(true).SetFontSize(FontDouble).Text("SHOP").
		SetAlign(AlignLeft).KeyValue("Total", "1,000").Cut()

	out := d.String()
	for _, b := range []byte{ESC, GS} {
		if strings.IndexByte(out, b) >= 0 {
			t.Fatalf("plain document contains control byte %#x: %q", b, out)
		}
	}
	want := "        SHOP\nTotal          1,000\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestKeyValueOverflow(t *testing.T) {
	d := NewTextDocument(10)
	d.KeyValue("Customer", "Muhammad")
	want := "Customer\n  Muhammad\n"
	if d.String() != want {
		t.Fatalf("got %q, want %q", d.String(), want)
	}
}

func TestWrap(t *testing.T) {
	got := wrap("Samsung Galaxy A15 Awesome Black", 12)
	want := []string{"Samsung", "Galaxy A15", "Awesome", "Black"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("wrap = %q, want %q", got, want)
	}

	got = wrap("ABCDEFGHIJ", 4)
	if strings.Join(got, "|") != "ABCD|EFGH|IJ" {
		t.Fatalf("hard split = %q", got)
	}
}

func TestSeparatorWidth(t *testing.T) {
	d := NewTextDocument(0)
	d.Separator('-')
	if d.String() != strings.Repeat("-", Width58mm)+"\n" {
		t.Fatalf("unexpected separator %q", d.String())
	}
}
