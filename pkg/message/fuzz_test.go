package message

import "testing"

func FuzzParse(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello [MT:at,qq=123] world")
	f.Add("a[MT:face,id=1]b[MT:face,id=2]")
	f.Add("[MT:at,qq=123&#44;456]")
	f.Add("[MT:x,flag]")
	f.Add("[MT:a,b=c,]")
	f.Add("[MT:text,text=x]y")
	f.Add("[MT:text,text=x,extra=1]")
	f.Add("[MT:text]")
	f.Add("[MT:a b]")
	f.Add("&#91;&#93;&amp;")
	f.Add("&amp;amp;")
	f.Add("[MT:")
	f.Add(",,,")
	f.Add("[MT:x,k=a[b]")
	f.Add("[MT:x,a=1,a=2]")

	f.Fuzz(func(t *testing.T, in string) {
		m := Parse(in)

		for i := 1; i < len(m); i++ {
			if m[i-1].Type == TypeText && m[i].Type == TypeText {
				t.Fatalf("Parse(%q): adjacent text segments at %d", in, i)
			}
		}

		// Rendering canonicalizes: one render/parse cycle reaches a wire
		// fixed point.
		wire := m.String()
		again := Parse(wire)
		if rewire := again.String(); rewire != wire {
			t.Errorf("Parse(%q): render not stable, %q then %q", in, wire, rewire)
		}

		// Reduce is idempotent.
		reduced := m.Clone()
		reduced.Reduce()
		twice := reduced.Clone()
		twice.Reduce()
		if !twice.Equal(reduced) {
			t.Errorf("Parse(%q): second Reduce = %#v, want %#v", in, twice, reduced)
		}

		// Structural round trip. Parse folds text tokens to their text
		// parameter, so every parsed segment survives rendering intact.
		again.Reduce()
		if !again.Equal(reduced) {
			t.Errorf("Parse(%q): reparse = %#v, want %#v", in, again, reduced)
		}
	})
}

func FuzzEscape(f *testing.F) {
	f.Add("")
	f.Add("plain")
	f.Add("&[],")
	f.Add("&amp;")
	f.Add("&#91;")
	f.Add("&#44;&#93;")
	f.Add("héllo, wörld & [friends]")

	f.Fuzz(func(t *testing.T, in string) {
		if got := Unescape(Escape(in)); got != in {
			t.Errorf("Unescape(Escape(%q)) = %q", in, got)
		}
		if got := Unescape(EscapeText(in)); got != in {
			t.Errorf("Unescape(EscapeText(%q)) = %q", in, got)
		}
	})
}
