package match

import (
	"fmt"
	"testing"

	"crm-matcher/core/normalize"

	"github.com/stretchr/testify/assert"
)

func buildSet(lines ...string) *normalize.NameSet {
	return normalize.BuildNameSet(lines, normalize.DefaultOptions)
}

func TestReconcile_Basic(t *testing.T) {
	a := buildSet("Acme Inc", "Acme Inc", "Globex")
	b := buildSet("acme inc", "Initech")

	r := Reconcile(a, b)

	assert.Equal(t, []string{"acme inc"}, r.Matches)
	assert.Equal(t, []string{"globex"}, r.OnlyA)
	assert.Equal(t, []string{"initech"}, r.OnlyB)

	s := r.Summarize()
	assert.Equal(t, 3, s.SideATotal)
	assert.Equal(t, 2, s.SideAUnique)
	assert.Equal(t, 2, s.SideBTotal)
	assert.Equal(t, 2, s.SideBUnique)
	assert.Equal(t, 1, s.MatchCount)
	assert.Equal(t, 1, s.OnlyACount)
	assert.Equal(t, 1, s.OnlyBCount)
	assert.InDelta(t, 50.0, s.MatchPercentage, 0.001)
	assert.InDelta(t, 50.0, s.SideBCoverage, 0.001)
}

func TestReconcile_PartitionInvariants(t *testing.T) {
	a := buildSet("one", "two", "three", "four")
	b := buildSet("three", "four", "five")

	r := Reconcile(a, b)

	// matches + onlyA == keys(A), matches + onlyB == keys(B)
	assert.Equal(t, a.UniqueCount(), len(r.Matches)+len(r.OnlyA))
	assert.Equal(t, b.UniqueCount(), len(r.Matches)+len(r.OnlyB))

	// Partitions are disjoint
	inMatches := make(map[string]bool)
	for _, k := range r.Matches {
		inMatches[k] = true
	}
	for _, k := range r.OnlyA {
		assert.False(t, inMatches[k], "key %q in both matches and onlyA", k)
	}
	for _, k := range r.OnlyB {
		assert.False(t, inMatches[k], "key %q in both matches and onlyB", k)
	}
}

func TestReconcile_SymmetricUnderSwap(t *testing.T) {
	a := buildSet("alpha", "beta", "gamma")
	b := buildSet("beta", "delta")

	ab := Reconcile(a, b)
	ba := Reconcile(b, a)

	assert.Equal(t, ab.Matches, ba.Matches)
	assert.Equal(t, ab.OnlyA, ba.OnlyB)
	assert.Equal(t, ab.OnlyB, ba.OnlyA)
}

func TestReconcile_EmptySides(t *testing.T) {
	empty := buildSet()
	full := buildSet("acme")

	r := Reconcile(empty, full)
	assert.Empty(t, r.Matches)
	assert.Empty(t, r.OnlyA)
	assert.Equal(t, []string{"acme"}, r.OnlyB)

	s := r.Summarize()
	assert.Equal(t, 0.0, s.MatchPercentage)
	assert.Equal(t, 0.0, s.SideBCoverage)

	both := Reconcile(empty, buildSet())
	assert.Empty(t, both.Matches)
	assert.Equal(t, 0.0, both.Summarize().MatchPercentage)
}

func TestReconcile_IteratesSmallerSide(t *testing.T) {
	// Large A, tiny B — behavior must be identical regardless of which side is
	// iterated internally.
	lines := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		lines = append(lines, fmt.Sprintf("org-%04d", i))
	}
	a := buildSet(lines...)
	b := buildSet("org-0007", "org-0500", "not-there")

	r := Reconcile(a, b)
	assert.Equal(t, []string{"org-0007", "org-0500"}, r.Matches)
	assert.Equal(t, []string{"not-there"}, r.OnlyB)
	assert.Len(t, r.OnlyA, 998)
}

func TestRepresentativeOriginal(t *testing.T) {
	a := buildSet("ACME Inc")
	b := buildSet("acme inc", "Initech")

	r := Reconcile(a, b)

	// Side A original wins for matched keys
	assert.Equal(t, "ACME Inc", r.RepresentativeOriginal("acme inc"))
	// Side B fallback for keys only on B
	assert.Equal(t, "Initech", r.RepresentativeOriginal("initech"))
	// Key itself when no original survives
	assert.Equal(t, "ghost", r.RepresentativeOriginal("ghost"))
}
