// Demo program that scans a few well-known Central Kurdish poems and prints
// each hemistich's heavy/light skeleton next to the meter verdict.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/kurdg2p/internal/g2p"
	"github.com/ppiankov/kurdg2p/internal/poem"
	"github.com/ppiankov/kurdg2p/internal/resources"
)

var poems = []struct {
	title string
	text  string
}{
	{
		"Haji Qadir Koyi",
		"گەرچی تووشی ڕەنجەڕۆیی و حەسرەت و دەردم ئەمن\n" +
			"قەت لەدەس ئەم چەرخە سپڵە نابەزم مەردم ئەمن\n" +
			"من لە زنجیر و تەناف و دار و بەند باکم نییە\n" +
			"لەت لەتم کەن، بمکوژن، هێشتا دەڵێم کوردم ئەمن",
	},
	{
		"Refrain",
		"شەو و ڕۆژ\nشەو و ڕۆژ\nشەو و ڕۆژ",
	},
	{
		"Free lines",
		"من\nئەو ڕۆژانە هەموو دەڕۆن بۆ شار و دێ و کێو و دەشت و دەریا\nتۆ",
	},
}

func main() {
	fmt.Println("=== Poem Meter Demo ===")
	fmt.Println()

	loader := resources.NewLoader(nil)
	classifier := poem.NewClassifier(g2p.NewConverter(loader, nil, nil), loader)

	for _, p := range poems {
		fmt.Printf("%s\n", p.title)
		fmt.Println(strings.Repeat("-", 60))

		lines, err := classifier.Syllabify(p.text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "syllabify: %v\n", err)
			os.Exit(1)
		}
		for _, line := range lines {
			fmt.Printf("  %s\n", line)
			for _, w := range poem.Weights(line) {
				fmt.Printf("      %s\n", w)
			}
		}

		res, err := classifier.ClassifyHemistichs(lines)
		if err != nil {
			fmt.Fprintf(os.Stderr, "classify: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		switch {
		case res.Undetermined:
			fmt.Println("  Verdict: undetermined")
		case res.OveralPattern != "":
			fmt.Printf("  Verdict: %s, %s\n", res.OveralMeterType, res.OveralPattern)
		default:
			fmt.Printf("  Verdict: %s\n", res.OveralMeterType)
		}
		fmt.Printf("  Syllabic: %d (%.2f%%)  Quantitative: %s (%.2f%%)\n",
			res.Syllabic, res.SyllabicConfidence, res.Quantitative, res.QuantitativeConfidence)
		fmt.Println()
	}

	fmt.Println("=== Demo Complete ===")
}
