package g2p

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/kurdg2p/internal/resources"
)

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	tables, err := resources.NewLoader(nil).Load()
	require.NoError(t, err)
	return NewGenerator(tables)
}

func TestGenerate_Order(t *testing.T) {
	gen := testGenerator(t)
	assert.Equal(t, []string{"ˈgirft", "ˈgirˈfit", "ˈgiˈrift", "ˈgiˈriˈfit"}, gen.Generate("گرفت"))
}

func TestGenerate_PrunedCandidatesNeverSurvive(t *testing.T) {
	gen := testGenerator(t)

	for _, w := range []string{"گرفت", "کوردستان", "درێژیی", "ووووووو", "هەڵگرت", "ستران"} {
		cands := gen.Generate(w)
		if len(cands) <= 1 {
			continue
		}
		for _, c := range cands {
			assert.False(t, reNoNucleus.MatchString(c), "%s: vowel-less syllable in %q", w, c)
			assert.False(t, reLongCoda.MatchString(c), "%s: long coda in %q", w, c)
		}
	}
}

func TestGenerate_LoneCandidateIsKept(t *testing.T) {
	gen := testGenerator(t)
	assert.Equal(t, []string{"ˈb"}, gen.Generate("ب"))

	conv := newTestConverter(t)
	got, err := conv.Word("ب", false)
	require.NoError(t, err)
	assert.Equal(t, "ˈb", got)
}

func TestExpand_RejectsHiatusAndStrayWW(t *testing.T) {
	got := expand("bوو")
	// "ww" directly after a consonant is never admitted
	assert.Equal(t, []string{"bwu", "buw", "bû"}, got)

	got = expand("aو")
	// a vowel cannot follow a vowel
	assert.Equal(t, []string{"aw"}, got)
}

func TestEpenthesize(t *testing.T) {
	assert.Equal(t, []string{"brd", "brid", "bird", "birid"}, epenthesize([]string{"brd"}))
	assert.Equal(t, []string{"ba"}, epenthesize([]string{"ba"}))
	assert.Equal(t, []string{""}, epenthesize([]string{""}))
}

func TestSyllabify(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"dexom", []string{"ˈdeˈxom"}},
		{"grtin", []string{"ˈgrˈtin"}},
		{"besye", []string{"ˈbeˈsye", "ˈbesˈye"}},
		{"şew", []string{"ˈşew"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Syllabify(tt.input), "input %q", tt.input)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		cand string
		want int
	}{
		{"ˈgiˈrift", 4},
		{"ˈgiˈriˈfit", 6},
		{"ˈgirˈfit", 7},
		{"ˈgirft", 12},
		{"ˈpoynt", 0},
		{"ˈbesˈtiˈyan", 2},
		{"ˈbuwn", 0},
		{"ˈbûn", 0},
		{"ˈdiyˈwaˈreˈkey", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Score(tt.cand).Penalty, "candidate %q", tt.cand)
	}
}

func TestCodaSonorityRises(t *testing.T) {
	assert.Equal(t, 0, codaSonorityRises("ˈgirft"))
	assert.Equal(t, 1, codaSonorityRises("ˈbefr")) // f < r
	assert.Equal(t, 0, codaSonorityRises("ˈpft"))  // no vowel before the run
	assert.Equal(t, 2, codaSonorityRises("ˈaktr")) // k=t, t<r
}

func TestEvaluate_SelectionBand(t *testing.T) {
	gen := testGenerator(t)

	for _, w := range []string{"گرفت", "کوردستان", "درێژیی", "بووین", "ڕەنجەڕۆیی"} {
		scored := Evaluate(gen.Generate(w))
		require.NotEmpty(t, scored, w)

		best := scored[0].Penalty
		assert.True(t, scored[0].Selected, "%s: best candidate must be selected", w)
		for _, sc := range scored {
			assert.GreaterOrEqual(t, sc.Penalty, 0)
			assert.GreaterOrEqual(t, sc.Penalty, best)
			assert.Equal(t, sc.Penalty < best+tolerance, sc.Selected, "%s: %q", w, sc.Phonemes)
		}
	}
}

func TestEvaluate_CollapsesDuplicates(t *testing.T) {
	scored := Evaluate([]string{"ˈmin", "ˈmin", "ˈmiˈni"})
	require.Len(t, scored, 2)
	assert.Equal(t, "ˈmin", scored[0].Phonemes)
}

func TestSelect_EmptyReturnsWord(t *testing.T) {
	assert.Equal(t, "وشە", Select("وشە", nil))
}
