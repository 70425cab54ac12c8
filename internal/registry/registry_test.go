package registry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "functions": [
    {"name": "$ping", "description": "latency", "brackets": null, "output": "Number"},
    {"name": "sum", "brackets": true, "args": [
      {"name": "numbers", "type": ["Number", "String"], "required": true, "rest": true}
    ]},
    {"name": "$c", "brackets": true, "args": [
      {"name": "a", "type": "String", "required": true},
      {"name": "b", "type": "String", "required": true}
    ]},
    {"name": "$color", "brackets": false, "args": [
      {"name": "hex", "type": "Color", "enumName": "Colors"},
      {"name": "mode", "type": "String", "enum": ["fg", "bg"]}
    ]}
  ],
  "enums": {"Colors": ["Red", "Green"]}
}`

func TestDecodeJSONObject(t *testing.T) {
	r, err := Decode([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"$c", "$color", "$ping", "$sum"}, r.Names())

	ping, ok := r.Lookup("PING")
	require.True(t, ok)
	assert.Equal(t, "$ping", ping.Name)
	assert.Equal(t, BracketsForbidden, ping.Brackets)
	assert.Equal(t, Single("Number"), ping.Output)

	sum, ok := r.Lookup("$Sum")
	require.True(t, ok)
	assert.Equal(t, BracketsRequired, sum.Brackets)
	assert.Equal(t, TypeUnion, sum.Args[0].Type.Kind)
	assert.True(t, sum.Args[0].Type.Has("string"))
	assert.Equal(t, "Number | String", sum.Args[0].Type.String())

	color, ok := r.Lookup("$color")
	require.True(t, ok)
	assert.Equal(t, BracketsOptional, color.Brackets)
	assert.Equal(t, []string{"Red", "Green"}, r.EnumValues(&color.Args[0]))
	assert.Equal(t, []string{"fg", "bg"}, r.EnumValues(&color.Args[1]))

	_, ok = r.Lookup("$nope")
	assert.False(t, ok)
}

func TestDecodeJSONArrayAndEmpty(t *testing.T) {
	r, err := Decode([]byte(`[{"name":"$a","brackets":true}]`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	r, err = Decode([]byte("  \n"), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := Decode([]byte(`[{"name":"$a","brackets":"sometimes"}]`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode([]byte(`[{"name":"$a","args":[{"name":"x","type":7}]}]`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode([]byte(`[{"name":"$a"},{"name":"$A"}]`), FormatJSON)
	assert.ErrorIs(t, err, ErrDuplicateFunction)

	_, err = Decode([]byte(`[{"name":"$"}]`), FormatJSON)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = Decode(nil, FormatUnknown)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeYAML(t *testing.T) {
	src := `
functions:
  - name: $sendMessage
    brackets: true
    args:
      - name: content
        type: String
        required: true
      - name: returnId
        type: Boolean
  - name: $ping
enums:
  Bool: ["true", "false"]
`
	r, err := Decode([]byte(src), FormatYAML)
	require.NoError(t, err)
	sig, ok := r.Lookup("sendmessage")
	require.True(t, ok)
	assert.Equal(t, 1, sig.MinArgs())
	max, unbounded := sig.MaxArgs()
	assert.Equal(t, 2, max)
	assert.False(t, unbounded)
	vals, ok := r.LookupEnum("bool")
	require.True(t, ok)
	assert.Equal(t, []string{"true", "false"}, vals)
}

func TestBracketsJSONRoundTrip(t *testing.T) {
	for _, b := range []Brackets{BracketsForbidden, BracketsOptional, BracketsRequired} {
		data, err := json.Marshal(b)
		require.NoError(t, err)
		var got Brackets
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, b, got, string(data))
	}
	var b Brackets
	require.NoError(t, json.Unmarshal([]byte(`"Required"`), &b))
	assert.Equal(t, BracketsRequired, b)
}

func TestSignatureArity(t *testing.T) {
	sig := &Signature{Name: "$r", Brackets: BracketsRequired, Args: []Arg{
		{Name: "a", Required: true},
		{Name: "b"},
		{Name: "rest", Rest: true},
	}}
	assert.Equal(t, 1, sig.MinArgs())
	max, unbounded := sig.MaxArgs()
	assert.Equal(t, 3, max)
	assert.True(t, unbounded)

	a, ok := sig.ArgAt(7)
	require.True(t, ok)
	assert.Equal(t, "rest", a.Name)
	_, ok = sig.ArgAt(-1)
	assert.False(t, ok)
	assert.Equal(t, "$r[a;b?;rest...]", sig.Usage())

	plain := &Signature{Name: "$p", Args: []Arg{{Name: "x"}}}
	_, ok = plain.ArgAt(1)
	assert.False(t, ok)
	assert.Equal(t, "$p", plain.Usage())
}

func TestPutOverwrites(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(Signature{Name: "ping", Description: "old"}))
	r.Put(Signature{Name: "$PING", Description: "new"})
	assert.Equal(t, 1, r.Len())
	sig, ok := r.Lookup("$ping")
	require.True(t, ok)
	assert.Equal(t, "new", sig.Description)
	assert.Equal(t, []string{"$PING"}, r.Names())
}

func TestMerge(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(Signature{Name: "$x"}))
	b := New()
	require.NoError(t, b.Add(Signature{Name: "$x", Description: "b"}))
	require.NoError(t, b.Add(Signature{Name: "$y"}))

	assert.ErrorIs(t, a.Merge(b, false), ErrDuplicateFunction)

	c := New()
	require.NoError(t, c.Add(Signature{Name: "$x"}))
	require.NoError(t, c.Merge(b, true))
	sig, _ := c.Lookup("$x")
	assert.Equal(t, "b", sig.Description)
	assert.Equal(t, 2, c.Len())
}

func TestSuggest(t *testing.T) {
	r := New()
	for _, n := range []string{"$sendMessage", "$send", "$ping", "$sum"} {
		require.NoError(t, r.Add(Signature{Name: n}))
	}
	got := r.Suggest("$sendMesage", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "$sendMessage", got[0])

	assert.Empty(t, r.Suggest("$zzz", 3))
	assert.Empty(t, r.Suggest("$", 3))
	assert.Empty(t, New().Suggest("$ping", 3))
}

func TestSnapshotRoundTrip(t *testing.T) {
	r, err := Decode([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteSnapshot(&buf))
	back, err := Decode(buf.Bytes(), FormatSnapshot)
	require.NoError(t, err)

	assert.Equal(t, r.Names(), back.Names())
	for _, sig := range r.Functions() {
		got, ok := back.Lookup(sig.Name)
		require.True(t, ok, sig.Name)
		assert.Equal(t, sig.Brackets, got.Brackets, sig.Name)
		assert.Equal(t, sig.MinArgs(), got.MinArgs(), sig.Name)
		assert.Equal(t, sig.Output, got.Output, sig.Name)
	}
	vals, ok := back.LookupEnum("colors")
	require.True(t, ok)
	assert.Equal(t, []string{"Red", "Green"}, vals)
}

func TestSnapshotRejectsGarbage(t *testing.T) {
	_, err := ReadSnapshot(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "core.json")
	yamlPath := filepath.Join(dir, "extra.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"name":"$a","brackets":true}]`), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("- name: $b\n"), 0o600))

	r, err := LoadFiles([]string{jsonPath, yamlPath}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"$a", "$b"}, r.Names())
	a, _ := r.Lookup("$a")
	assert.Equal(t, jsonPath, a.Source)

	snap := filepath.Join(dir, "out", "registry.mp")
	require.NoError(t, r.SaveSnapshot(snap))
	back, err := LoadFile(snap)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Len())

	_, err = LoadFile(filepath.Join(dir, "registry.txt"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	s := NewStore(nil)
	require.NotNil(t, s.Snapshot())
	assert.Equal(t, 0, s.Snapshot().Len())

	r := New()
	require.NoError(t, r.Add(Signature{Name: "$x"}))
	old := s.Replace(r)
	assert.Equal(t, 0, old.Len())
	assert.Same(t, r, s.Snapshot())
}

func TestFingerprint(t *testing.T) {
	a, err := Decode([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	b, err := Decode([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	b.AddEnum("Extra", []string{"x"})
	fc, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}
