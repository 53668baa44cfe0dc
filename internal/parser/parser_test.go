package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const overlayDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2" xmlns:gx="http://www.google.com/kml/ext/2.2">
  <Document>
    <GroundOverlay id="go1">
      <name> Lake </name>
      <Icon><href>a.png</href></Icon>
      <LatLonBox>
        <north>10</north><south>0</south><east>10</east><west>0</west>
      </LatLonBox>
      <gx:LatLonQuad>
        <coordinates>0,0 10,0 10,10 0,10</coordinates>
      </gx:LatLonQuad>
    </GroundOverlay>
  </Document>
</kml>`

func mustParse(t *testing.T, doc string) *Node {
	t.Helper()
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return root
}

func TestParseTree(t *testing.T) {
	root := mustParse(t, overlayDoc)

	if root.Tag != "kml" {
		t.Errorf("Expected root tag kml, got %s", root.Tag)
	}
	if root.Parent() != nil {
		t.Error("Expected root to have no parent")
	}

	overlay := root.Child("Document").Child("GroundOverlay")
	if overlay == nil {
		t.Fatal("Expected GroundOverlay under Document")
	}
	if id, ok := overlay.Attr("id"); !ok || id != "go1" {
		t.Errorf("Expected id=go1, got %q (%v)", id, ok)
	}
	if got := overlay.Child("name").Text; got != "Lake" {
		t.Errorf("Expected trimmed name 'Lake', got %q", got)
	}

	// Namespace prefix is dropped
	if overlay.Child("LatLonQuad") == nil {
		t.Error("Expected gx:LatLonQuad to be reachable as LatLonQuad")
	}

	if got := overlay.Child("LatLonBox").Child("north").Path(); got != "/kml/Document/GroundOverlay/LatLonBox/north" {
		t.Errorf("Unexpected path %s", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unclosed", "<kml><Document>"},
		{"mismatched", "<kml></Document>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func TestChildOnNilNode(t *testing.T) {
	var n *Node
	if n.Child("x") != nil {
		t.Error("Expected nil child of nil node")
	}
	if n.ChildrenNamed("x") != nil {
		t.Error("Expected no children of nil node")
	}
}

func TestTransformers(t *testing.T) {
	tests := []struct {
		name    string
		t       Transformer
		text    string
		want    interface{}
		wantErr bool
	}{
		{"string", String, "abc", "abc", false},
		{"number", Number, "10.5", 10.5, false},
		{"number negative", Number, "-71.05", -71.05, false},
		{"number malformed", Number, "ten", nil, true},
		{"integer", Integer, "7", 7, false},
		{"integer malformed", Integer, "7.5", nil, true},
		{"boolean 1", Boolean, "1", true, false},
		{"boolean false", Boolean, "false", false, false},
		{"boolean malformed", Boolean, "yes", nil, true},
		{"coordinates", Coordinates, "0,0 10,0,5", [][]float64{{0, 0}, {10, 0, 5}}, false},
		{"coordinates empty", Coordinates, "", [][]float64{}, false},
		{"coordinates arity", Coordinates, "0", nil, true},
		{"coordinates text", Coordinates, "0,a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.t(&Node{Tag: "v", Text: tt.text})
			if tt.wantErr {
				var malformed *ErrMalformedValue
				if !errors.As(err, &malformed) {
					t.Fatalf("Expected ErrMalformedValue, got %v", err)
				}
				if got != nil {
					t.Errorf("Expected nil value alongside error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

type testElement struct {
	node *Node
}

func (e *testElement) Node() *Node { return e.node }

func TestRegistryLastRegistrationWins(t *testing.T) {
	reg := NewRegistry()

	first := func(n *Node, f *Factory) Element { return &testElement{node: n} }
	second := func(n *Node, f *Factory) Element { return &testElement{node: &Node{Tag: "second"}} }

	if replaced := reg.Register("GroundOverlay", first); replaced {
		t.Error("Expected first registration to report no replacement")
	}
	if replaced := reg.Register("GroundOverlay", second); !replaced {
		t.Error("Expected second registration to report replacement")
	}

	el, err := NewFactory(reg).Build(&Node{Tag: "GroundOverlay"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if el.Node().Tag != "second" {
		t.Errorf("Expected last registered constructor, got node tag %s", el.Node().Tag)
	}

	if tags := reg.Tags(); !reflect.DeepEqual(tags, []string{"GroundOverlay"}) {
		t.Errorf("Expected single tag, got %v", tags)
	}
}

func TestRegistryClone(t *testing.T) {
	reg := NewRegistry()
	reg.Register("a", func(n *Node, f *Factory) Element { return &testElement{node: n} })

	c := reg.Clone()
	c.Register("b", func(n *Node, f *Factory) Element { return &testElement{node: n} })

	if _, ok := reg.Lookup("b"); ok {
		t.Error("Expected clone registration not to leak into original")
	}
	if _, ok := c.Lookup("a"); !ok {
		t.Error("Expected clone to keep original registrations")
	}
}

func TestFactory(t *testing.T) {
	reg := NewRegistry()
	built := 0
	reg.Register("LatLonBox", func(n *Node, f *Factory) Element {
		built++
		return &testElement{node: n}
	})
	f := NewFactory(reg)

	overlay := mustParse(t, overlayDoc).Child("Document").Child("GroundOverlay")

	v, found, err := f.Specific(overlay, "name", String)
	if err != nil || !found || v != "Lake" {
		t.Errorf("Expected name Lake, got %v found=%v err=%v", v, found, err)
	}

	v, found, err = f.Specific(overlay, "altitude", String)
	if err != nil || found || v != nil {
		t.Errorf("Expected absent altitude, got %v found=%v err=%v", v, found, err)
	}

	box := overlay.Child("LatLonBox")
	_, found, err = f.Specific(box, "north", Number)
	if err != nil || !found {
		t.Errorf("Expected north to parse, found=%v err=%v", found, err)
	}

	el, ok := f.Any(overlay, []string{"LatLonBox"})
	if !ok || el.Node() != box {
		t.Errorf("Expected LatLonBox element, got %v ok=%v", el, ok)
	}

	// Unregistered tags are treated as absent
	if _, ok := f.Any(overlay, []string{"LatLonQuad"}); ok {
		t.Error("Expected unregistered LatLonQuad to be absent")
	}

	if got := f.All(overlay, []string{"LatLonBox", "Icon"}); len(got) != 1 {
		t.Errorf("Expected 1 built element, got %d", len(got))
	}
	if built != 2 {
		t.Errorf("Expected constructor called twice (stateless factory), got %d", built)
	}

	_, err = f.Build(&Node{Tag: "Nope"})
	var unknown *ErrUnknownTag
	if !errors.As(err, &unknown) || unknown.Tag != "Nope" {
		t.Errorf("Expected ErrUnknownTag, got %v", err)
	}
}

func TestNewFactoryDefaultsRegistry(t *testing.T) {
	if NewFactory(nil).Registry != DefaultRegistry {
		t.Error("Expected nil registry to fall back to DefaultRegistry")
	}
}

func TestFactoryOnBuild(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Icon", func(n *Node, f *Factory) Element { return &testElement{node: n} })

	var seen []string
	f := NewFactory(reg)
	f.OnBuild = func(el Element) { seen = append(seen, el.Node().Tag) }

	root := mustParse(t, `<GroundOverlay><Icon><href>a.png</href></Icon><Icon/></GroundOverlay>`)
	f.All(root, []string{"Icon"})

	if len(seen) != 2 {
		t.Errorf("Expected OnBuild called for 2 elements, got %v", seen)
	}
}

func TestParseIndentedNesting(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<kml>
  <Document>
    <Folder>
      <Folder>
        <Folder>
          <Folder>
            <GroundOverlay>
              <name>
                Deep
              </name>
              <LatLonBox>
                <north> 10 </north>
                <south>0</south>
              </LatLonBox>
            </GroundOverlay>
          </Folder>
        </Folder>
      </Folder>
    </Folder>
  </Document>
</kml>`

	root := mustParse(t, doc)
	overlay := root.Child("Document").Child("Folder").Child("Folder").Child("Folder").Child("Folder").Child("GroundOverlay")
	if overlay == nil {
		t.Fatal("Expected GroundOverlay five levels down")
	}
	if got := overlay.Child("name").Text; got != "Deep" {
		t.Errorf("Expected name 'Deep', got %q", got)
	}
	if got := overlay.Child("LatLonBox").Child("north").Text; got != "10" {
		t.Errorf("Expected north '10', got %q", got)
	}
	if got := root.Child("Document").Text; got != "" {
		t.Errorf("Expected whitespace-only text to trim to empty, got %q", got)
	}
}

func TestParseLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<kml><Document><name>Caf\xe9</name></Document></kml>"

	root := mustParse(t, doc)
	if got := root.Child("Document").Child("name").Text; got != "Café" {
		t.Errorf("Expected latin-1 name decoded to 'Café', got %q", got)
	}
}

func TestParseUnknownEncoding(t *testing.T) {
	doc := `<?xml version="1.0" encoding="x-made-up"?><kml/>`
	if _, err := Parse(strings.NewReader(doc)); err == nil {
		t.Error("Expected error for unknown encoding")
	}
}

func TestParseMultipleRoots(t *testing.T) {
	if _, err := Parse(strings.NewReader(`<kml/><kml/>`)); err == nil {
		t.Error("Expected error for a second root element")
	}
}
