package callsite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgelsp/internal/registry"
)

// at splits src on "|" and returns the text and the cursor offset.
func at(src string) (string, int) {
	i := strings.Index(src, "|")
	return src[:i] + src[i+1:], i
}

func TestFind(t *testing.T) {
	tests := []struct {
		src    string
		name   string
		index  int
		marker int
	}{
		{"$a[|", "a", 0, 0},
		{"$a[x;|", "a", 1, 0},
		{"$a[x,y;|z]", "a", 2, 0},
		{"hi $send[one;$b[1;2];|", "send", 2, 3},
		{"$a[x;$b[1;|", "b", 1, 5},
		{"$a[x;$b[1];|", "a", 2, 0},
		{`$a["x;y";|`, "a", 1, 0},
		{`$a['it;s';|`, "a", 1, 0},
		{`$a[x\;y;|`, "a", 1, 0},
		{"$a[[x;y];|", "a", 1, 0},
		{"$!s[x;|", "s", 1, 0},
		{"$a[x;[|", "a", 1, 0},
		{"$café[x;|", "café", 1, 0},
		{`$a[x\\[y;|`, "a", 0, 0},
	}
	for _, tt := range tests {
		text, cur := at(tt.src)
		call, ok := Find(text, cur)
		require.True(t, ok, tt.src)
		assert.Equal(t, tt.name, call.Name, tt.src)
		assert.Equal(t, tt.index, call.ArgIndex, tt.src)
		assert.Equal(t, tt.marker, call.Marker, tt.src)
	}
}

func TestFindModifiers(t *testing.T) {
	call, ok := Find("$#check[a", 9)
	require.True(t, ok)
	assert.True(t, call.Negated)
	assert.False(t, call.Silent)
	assert.Equal(t, 7, call.Open)
}

func TestFindNone(t *testing.T) {
	for _, src := range []string{
		"plain text|",
		"$a[1] done|",
		`\$a[|`,
		"[x;|",
		"$[|",
		`$a["[|`,
		"|$a[",
	} {
		text, cur := at(src)
		_, ok := Find(text, cur)
		assert.False(t, ok, src)
	}
	_, ok := Find("$a[", -1)
	assert.False(t, ok)
}

func TestFindClampsCursor(t *testing.T) {
	call, ok := Find("$a[x;y", 100)
	require.True(t, ok)
	assert.Equal(t, 1, call.ArgIndex)
}

func TestResolve(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Add(registry.Signature{
		Name:     "$color",
		Brackets: registry.BracketsRequired,
		Args: []registry.Arg{
			{Name: "mode", Enum: []string{"fg", "bg"}},
			{Name: "value", EnumName: "Colors", Rest: true},
		},
	}))
	reg.AddEnum("Colors", []string{"Red", "Blue"})

	text, cur := at("$color[fg;Red;|")
	call, ok := Find(text, cur)
	require.True(t, ok)
	info, ok := Resolve(reg, call)
	require.True(t, ok)
	require.NotNil(t, info.Param)
	assert.Equal(t, "value", info.Param.Name)
	assert.Equal(t, []string{"Red", "Blue"}, info.Enum)

	info, ok = Resolve(reg, Call{Name: "color"})
	require.True(t, ok)
	assert.Equal(t, []string{"fg", "bg"}, info.Enum)

	_, ok = Resolve(reg, Call{Name: "nope"})
	assert.False(t, ok)
}

func TestFindLongBackslashRun(t *testing.T) {
	text := "$a[x;" + strings.Repeat(`\\`, 200000) + "y"
	call, ok := Find(text, len(text))
	require.True(t, ok)
	assert.Equal(t, "a", call.Name)
	assert.Equal(t, 1, call.ArgIndex)

	// odd run escapes the bracket
	_, ok = Find(`$a\[x`, len(`$a\[x`))
	assert.False(t, ok)
}
