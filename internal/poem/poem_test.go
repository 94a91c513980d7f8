package poem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/kurdg2p/internal/g2p"
	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/resources"
)

const hajiQadir = "گەرچی تووشی ڕەنجەڕۆیی و حەسرەت و دەردم ئەمن\n" +
	"قەت لەدەس ئەم چەرخە سپڵە نابەزم مەردم ئەمن\n" +
	"من لە زنجیر و تەناف و دار و بەند باکم نییە\n" +
	"لەت لەتم کەن، بمکوژن، هێشتا دەڵێم کوردم ئەمن"

func newTestClassifier() *Classifier {
	loader := resources.NewLoader(nil)
	return NewClassifier(g2p.NewConverter(loader, nil, nil), loader)
}

func TestClassify_Quantitative(t *testing.T) {
	c := newTestClassifier()

	res, err := c.Classify(hajiQadir)
	require.NoError(t, err)

	assert.Equal(t, model.MeterQuantitative, res.OveralMeterType)
	assert.Equal(t, "فاعلاتن فاعلاتن فاعلاتن فاعلن", res.OveralPattern)
	assert.Equal(t, "فاعلاتن فاعلاتن فاعلاتن فاعلن", res.Quantitative)
	assert.InDelta(t, 43.75, res.QuantitativeConfidence, 1e-9)
	assert.Equal(t, 15, res.Syllabic)
	assert.InDelta(t, 100.0, res.SyllabicConfidence, 1e-9)
	assert.False(t, res.Undetermined)

	want := []model.ScannedHemistich{
		{LineNo: 0, Scanned: "–––∪–––∪––∪–", MeterID: 1, Dist: 3, Matched: true},
		{LineNo: 1, Scanned: "–∪–––––∪–––∪–", MeterID: 1, Dist: 2, Matched: true},
		{LineNo: 2},
		{LineNo: 3, Scanned: "–∪–––∪–––∪–––∪–", MeterID: 1, Dist: 0, Matched: true},
	}
	assert.Equal(t, want, res.Details)
}

func TestSyllabify(t *testing.T) {
	c := newTestClassifier()

	lines, err := c.Syllabify(hajiQadir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ˈgerˈçî ˈtûˈşî ˈřenˈceˈřoˈyîw ˈḧesˈreˈtû ˈderˈdim ˈʔeˈmin",
		"ˈqet ˈleˈdes ˈʔem ˈçerˈxe ˈsipˈłe ˈnaˈbeˈzim ˈmerˈdim ˈʔeˈmin",
		"ˈmin ˈle ˈzinˈcîˈrû ˈteˈnaˈfû ˈdaˈrû ˈbend ˈbaˈkim ˈnîˈye",
		"ˈlet ˈleˈtim ˈken, ˈbimˈkuˈjin, ˈhêşˈta ˈdeˈłêm ˈkurˈdim ˈʔeˈmin",
	}, lines)
}

func TestClassify_Syllabic(t *testing.T) {
	c := newTestClassifier()

	res, err := c.Classify("شەو و ڕۆژ\nشەو و ڕۆژ\nشەو و ڕۆژ")
	require.NoError(t, err)

	assert.Equal(t, model.MeterSyllabic, res.OveralMeterType)
	assert.Equal(t, "3Syllabic", res.OveralPattern)
	assert.Equal(t, 3, res.Syllabic)
	assert.Zero(t, res.QuantitativeConfidence)
	assert.Len(t, res.Details, 3)
}

func TestClassify_FreeVerse(t *testing.T) {
	c := newTestClassifier()

	res, err := c.Classify("من\nئەو ڕۆژانە هەموو دەڕۆن بۆ شار و دێ و کێو و دەشت و دەریا\nتۆ")
	require.NoError(t, err)

	assert.Equal(t, model.MeterFreeVerse, res.OveralMeterType)
	assert.Empty(t, res.OveralPattern)
	assert.Equal(t, 1, res.Syllabic)
	assert.InDelta(t, 200.0/3, res.SyllabicConfidence, 1e-9)
	assert.Equal(t, "مفعول مفاعیلن مفعول مفاعیلن", res.Quantitative)

	require.Len(t, res.Details, 3)
	assert.Equal(t, model.ScannedHemistich{LineNo: 1, Scanned: "–––∪∪––––––––", MeterID: 11, Dist: 3, Matched: true}, res.Details[1])
	assert.False(t, res.Details[0].Matched)
}

func TestClassify_Undetermined(t *testing.T) {
	c := newTestClassifier()

	for _, poem := range []string{"", "   ", "?!\n..."} {
		res, err := c.Classify(poem)
		require.NoError(t, err, "poem %q", poem)
		assert.True(t, res.Undetermined, "poem %q", poem)
		assert.Empty(t, res.OveralMeterType)
	}
}

func TestClassifyHemistichs_SkipsEmptyLines(t *testing.T) {
	c := newTestClassifier()

	res, err := c.ClassifyHemistichs([]string{"ˈşeˈwû ˈřoj", "", "x", "ˈşeˈwû ˈřoj"})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Syllabic)
	assert.InDelta(t, 100.0, res.SyllabicConfidence, 1e-9)
	assert.Len(t, res.Details, 4)
}

func TestClassify_MissingCatalog(t *testing.T) {
	loader := resources.NewLoader(emptyFS{})
	c := NewClassifier(g2p.NewConverter(loader, nil, nil), loader)

	_, err := c.Classify(hajiQadir)
	assert.ErrorIs(t, err, resources.ErrMissingReferenceData)
}

func TestWeights(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"ˈgerˈçî ˈtûˈşî ˈřenˈceˈřoˈyîw ˈḧesˈreˈtû ˈderˈdim ˈʔeˈmin", []string{"–––∪–––∪––∪–", "∪––∪–––∪––∪–"}},
		{"ˈqet ˈleˈdes ˈʔem ˈçerˈxe ˈsipˈłe ˈnaˈbeˈzim ˈmerˈdim ˈʔeˈmin", []string{"–∪–––––∪–––∪–", "∪∪–––––∪–––∪–"}},
		{"ˈmin ˈle ˈzinˈcîˈrû ˈteˈnaˈfû ˈdaˈrû ˈbend ˈbaˈkim ˈnîˈye", []string{"––∪–––––∪", "∪–∪–––––∪"}},
		{"ˈxwa", []string{"∪–", "–"}},
		{"ˈgyan ˈbe", []string{"∪–", "–"}},
		{"[ˈke] «ˈmin»", []string{"–", "∪"}},
		{"", []string{""}},
		{strings.Repeat("ˈa", 60), []string{""}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Weights(tt.input), "hemistich %q", tt.input)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"–∪–", "∪–∪", 2},
		{"", "–∪", 2},
		{"–∪", "", 2},
		{"––", "∪∪", 4},
		{"–––∪–––∪––∪–", "–∪–––∪–––∪–––∪–", 3},
		{"–∪–––∪–––∪–––∪–", "–∪–––∪–––∪–––∪–", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.want, Distance(tt.b, tt.a), "%q vs %q", tt.b, tt.a)
	}
}

func TestMode(t *testing.T) {
	v, n := mode([]int{15, 14, 15, 13})
	assert.Equal(t, 15, v)
	assert.Equal(t, 2, n)

	v, n = mode([]int{12, 11, 11, 12})
	assert.Equal(t, 11, v, "ties go to the smaller count")
	assert.Equal(t, 2, n)
}

func TestStdDev(t *testing.T) {
	assert.Zero(t, stdDev(nil))
	assert.Zero(t, stdDev([]int{7, 7, 7}))
	assert.InDelta(t, 2.0, stdDev([]int{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}
