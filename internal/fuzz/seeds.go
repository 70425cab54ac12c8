package fuzztests

import "testing"

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 64 << 10
)

var languageSeeds = []string{
	"",
	"hello $ping world",
	"$sendMessage[hi;$get[name]]",
	"$if[$a[1]==1;yes;no]",
	"$!silent[x] $#neg[y]",
	"$esc[$raw [nested] stuff] $escapeCode[a]",
	"$esc no brackets",
	"${ return 1 + {a: 1}.a } after",
	"${ unclosed",
	"$a[unclosed",
	`\$a[x] \; \] \[`,
	`$a[\$b[x];\;;]`,
	"$a[]",
	"$a[ ]",
	"$a[user;]",
	"$a[$b[$c[$d[$e[deep]]]]]",
	"$ $! $!# $1abc",
	"module.exports = { name: 'x', code: `$ping $send[a]` }",
	"code: `first` other code:`second $b[x]`",
	"code:\t`unterminated $a[x]",
	"a\r\nb $c[\r\n]",
	"$naïve[ü] $a[ x ]",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
