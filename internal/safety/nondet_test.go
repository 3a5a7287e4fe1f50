package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genvmlint/internal/errors"
)

func TestNondetInsideBoundaryPasses(t *testing.T) {
	findings := CheckNondet(parse(t, `
class Oracle(gl.Contract):
    @gl.public.write
    def resolve(self, url: str):
        def leader():
            return gl.nondet.web.get(url)

        def validator(result):
            return gl.nondet.web.get(url) == result

        return gl.vm.run_nondet(leader, validator)
`))
	assert.Empty(t, findings)
}

func TestNondetInUnreachableHelper(t *testing.T) {
	findings := CheckNondet(parse(t, `
def helper():
    return gl.nondet.web.get("https://example.com")

class Oracle(gl.Contract):
    @gl.public.write
    def resolve(self):
        return 1
`))
	require.Len(t, findings, 1)
	assert.Equal(t, errors.ErrUnsafeNondet, findings[0].RuleID)
	assert.Contains(t, findings[0].Message, "'helper'")
	assert.Contains(t, findings[0].Message, "not reachable")
}

func TestNondetAtModuleLevel(t *testing.T) {
	findings := CheckNondet(parse(t, `
value = gl.nondet.web.get("https://example.com")
`))
	require.Len(t, findings, 1)
	assert.Equal(t, errors.ErrUnsafeNondet, findings[0].RuleID)
	assert.Contains(t, findings[0].Message, "module level")
}

func TestNondetThroughLambdaBoundary(t *testing.T) {
	findings := CheckNondet(parse(t, `
class Oracle(gl.Contract):
    @gl.public.write
    def fetch(self, url: str):
        return gl.eq_principle.strict_eq(lambda: gl.nondet.web.get(url))
`))
	assert.Empty(t, findings, "lambda argument makes the enclosing function safe")
}

func TestNondetThroughTransitiveCall(t *testing.T) {
	findings := CheckNondet(parse(t, `
class Oracle(gl.Contract):
    @gl.public.write
    def fetch(self, url: str):
        def leader():
            return self.download(url)
        return gl.eq_principle.strict_eq(leader)

    def download(self, url: str):
        return gl.nondet.web.get(url)
`))
	assert.Empty(t, findings, "nondet reachable from the safe root via the call graph")
}

func TestNondetWithMethodReferenceRoot(t *testing.T) {
	findings := CheckNondet(parse(t, `
class Oracle(gl.Contract):
    def leader(self):
        return gl.nondet.web.get("https://example.com")

    @gl.public.write
    def fetch(self):
        return gl.eq_principle.prompt_comparative(self.leader, "same result")
`))
	assert.Empty(t, findings, "self.leader marks Oracle.leader as a safe root")
}

func TestNondetValidatorPositionIsSafe(t *testing.T) {
	findings := CheckNondet(parse(t, `
def fetch(url):
    def leader():
        return 1

    def validator(prev):
        return gl.nondet.web.get(url) == prev

    return gl.vm.run_nondet(leader, validator)
`))
	assert.Empty(t, findings, "run_nondet treats both argument positions as boundaries")
}

func TestNondetNestedClosureUnreachable(t *testing.T) {
	findings := CheckNondet(parse(t, `
def fetch(url):
    def stray():
        return gl.nondet.web.get(url)

    def leader():
        return 1

    return gl.eq_principle.strict_eq(leader)
`))
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "fetch.<locals>.stray")
}

func TestNondetSecondPositionNotSafeForEqPrinciple(t *testing.T) {
	findings := CheckNondet(parse(t, `
def fetch(url):
    def principle():
        return gl.nondet.web.get(url)

    return gl.eq_principle.prompt_comparative(other, principle)
`))
	require.Len(t, findings, 1, "only position 0 is a boundary for eq_principle calls")
}

func TestFindSafeEntryPointsBareNameFallback(t *testing.T) {
	safe := findSafeEntryPoints(parse(t, `
def fetch():
    return gl.vm.run_nondet(leader, validator)
`))
	assert.True(t, safe["leader"], "bare name recorded for globals")
	assert.True(t, safe["fetch.<locals>.leader"], "scope-qualified name recorded too")
	assert.True(t, safe["validator"])
}
