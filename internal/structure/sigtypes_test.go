package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genvmlint/internal/errors"
)

func TestSizedIntegerCatalog(t *testing.T) {
	assert.True(t, isSizedInteger("u8"))
	assert.True(t, isSizedInteger("u256"))
	assert.True(t, isSizedInteger("i24"))
	assert.True(t, isSizedInteger("bigint"))
	assert.False(t, isSizedInteger("int"))
	assert.False(t, isSizedInteger("u7"))
	assert.False(t, isSizedInteger("u264"))
}

func TestSizedIntParameters(t *testing.T) {
	findings := CheckSignatureTypes(parse(t, `
class C(gl.Contract):
    @gl.public.write
    def transfer(self, amount: u256, memo: str):
        pass

    def ok(self, amount: int, big: bigint):
        pass
`))
	params := byRule(findings, errors.ErrSizedIntParam)
	require.Len(t, params, 1)
	assert.Contains(t, params[0].Message, "'amount'")
	assert.Contains(t, params[0].Message, "'u256'")
	assert.Contains(t, params[0].Suggestion, "'int'")
}

func TestSizedIntReturns(t *testing.T) {
	findings := CheckSignatureTypes(parse(t, `
class C(gl.Contract):
    @gl.public.view
    def balance(self) -> u64:
        return 0

    @gl.public.view
    def name(self) -> str:
        return ""
`))
	returns := byRule(findings, errors.ErrSizedIntReturn)
	require.Len(t, returns, 1)
	assert.Contains(t, returns[0].Message, "'balance'")
	assert.Contains(t, returns[0].Message, "'u64'")
}

func TestDataclassSizedIntWarning(t *testing.T) {
	findings := CheckSignatureTypes(parse(t, `
@dataclass
class Holding:
    amount: u256

@allow_storage
@dataclass
class Covered:
    amount: u256

@dataclass
class PlainFields:
    name: str

class C(gl.Contract):
    holdings: DynArray[Holding]
`))
	warned := byRule(findings, errors.WarnDataclassSizedInt)
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0].Message, "'Holding'")
	assert.Equal(t, errors.SeverityWarning, warned[0].Severity)
}

func TestHeaderMissing(t *testing.T) {
	findings := CheckHeader("from genlayer import *\n")
	require.Len(t, findings, 1)
	assert.Equal(t, errors.WarnMissingHeader, findings[0].RuleID)
	assert.Equal(t, 1, findings[0].Line)
}

func TestHeaderPresent(t *testing.T) {
	source := `# { "Depends": "py-genlayer:test" }` + "\nfrom genlayer import *\n"
	assert.Empty(t, CheckHeader(source))
}

func TestHeaderSeqSpanningLines(t *testing.T) {
	source := `# { "Seq": [
#   { "Depends": "py-genlayer:test" }
# ] }
from genlayer import *
`
	assert.Empty(t, CheckHeader(source))
}

func TestHeaderWithoutPlatformSDK(t *testing.T) {
	source := `# { "Seq": [{ "Depends": "py-lib:1.0.0" }] }` + "\n"
	findings := CheckHeader(source)
	require.Len(t, findings, 1)
	assert.Equal(t, errors.WarnMissingSDKDep, findings[0].RuleID)
}
